// Package config loads server configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds server settings.
type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	AuthDisabled bool
	CORSOrigin   string
	LogLevel     string
}

// Load reads configuration from the environment. JWT_SECRET is required
// unless authentication is disabled.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := Config{
		Port:         getenv("PORT", "8080"),
		DBPath:       getenv("DB_PATH", "expenses.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AuthDisabled: strings.EqualFold(os.Getenv("AUTH_DISABLED"), "true"),
		CORSOrigin:   getenv("CORS_ORIGIN", "*"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
	}

	if !cfg.AuthDisabled && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
