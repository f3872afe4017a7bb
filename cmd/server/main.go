package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/catraca/eventos/internal/auth"
	"github.com/catraca/eventos/internal/config"
	"github.com/catraca/eventos/internal/db"
	"github.com/catraca/eventos/internal/models"
	"github.com/catraca/eventos/internal/web"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if err := db.Init(cfg.DBPath); err != nil {
		log.Fatalf("db init: %v", err)
	}
	if err := seedAdmin(cfg); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	r := web.Router(cfg.UploadDir)

	log.Printf("catraca listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin creates the first admin account so the system is usable on a
// fresh database. Does nothing once any admin exists.
func seedAdmin(cfg config.Config) error {
	var count int64
	if err := db.Conn().Model(&models.Organizer{}).
		Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.Organizer{
		FullName:     cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.Conn().Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("admin account created: %s", cfg.AdminEmail)
	return nil
}
