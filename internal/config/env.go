package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret      string
	JWTExpiryHours int
}

// LoadEnv reads .env (when present) then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	expiry := 24
	if v := strings.TrimSpace(os.Getenv("JWT_EXPIRY_HOURS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			expiry = n
		}
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:         getEnv("DB_USER", "root"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         getEnv("DB_HOST", "127.0.0.1:3306"),
		DBName:         getEnv("DB_NAME", "pilgrimage_backoffice"),
		JWTSecret:      getEnv("JWT_SECRET", "super-secret-key-change-me"),
		JWTExpiryHours: expiry,
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
