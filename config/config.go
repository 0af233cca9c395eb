// config.go - Handles configuration for the project

package config

import (
	"fmt"
	"log"
	"os"
)

// Config holds all configuration values, read once at startup.
type Config struct {
	Port      string
	Env       string // "development" or "production"
	JWTSecret string

	DBHost string
	DBUser string
	DBPass string
	DBName string
	DBPort string

	// Optional bootstrap admin account. Registration always produces
	// STUDENT users, so the first ADMIN has to come from somewhere.
	CreateAdmin   bool
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Known weakness: anyone who reads this source can forge tokens.
		secret = "defaultsecret"
		log.Println("⚠️ JWT_SECRET not set, falling back to insecure default")
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("APP_ENV", "development"),
		JWTSecret: secret,

		DBHost: getEnv("DB_HOST", "localhost"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", ""),
		DBName: getEnv("DB_NAME", "usj_events"),
		DBPort: getEnv("DB_PORT", "5432"),

		CreateAdmin:   os.Getenv("CREATE_ADMIN") == "true",
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// DSN builds the postgres connection string from the DB_* variables.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}

// IsProduction reports whether the app runs with production settings
// (secure cookies, release-mode gin).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
