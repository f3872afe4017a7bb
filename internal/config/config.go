package config

import "os"

// Config holds the values main needs at startup. Everything has a dev
// default so the binary runs with no environment at all.
type Config struct {
	Addr          string
	DBPath        string
	UploadDir     string
	BaseURL       string // used to build invite links
	AdminEmail    string // seed admin created on first boot
	AdminPassword string
	AdminName     string
}

func Load() Config {
	return Config{
		Addr:          getEnv("ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "eventos.db"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"), // change in production
		AdminName:     getEnv("ADMIN_NAME", "Administrador"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
