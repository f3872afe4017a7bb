package db

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/catraca/eventos/internal/models"
)

var conn *gorm.DB

func Init(path string) error {
	var err error
	conn, err = gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		return err
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.AutoMigrate(
		&models.Event{},
		&models.Participant{},
		&models.Organizer{},
	); err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}

	// Composite unique indexes that GORM doesn't auto-create from struct
	// tags. A CPF and a QR payload may appear at most once per event, so
	// check-in lookups can never hit an ambiguous first-match.
	conn.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_participant_event_cpf ON participants(event_id, cpf)")
	conn.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_participant_event_qr  ON participants(event_id, qr_code)")

	log.Println("database ready (sqlite)")
	return nil
}

func Conn() *gorm.DB {
	return conn
}
