package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration values.
type Config struct {
	Secret        string
	DatabaseDSN   string
	HTTPPort      string
	TokenTTL      time.Duration
	SeedAdmin     bool
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	secret := os.Getenv("SECRET")
	if secret == "" {
		secret = "dev_secret"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "taskmanager.db"
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	ttlHours := 24
	if raw := os.Getenv("TOKEN_TTL_HOURS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Printf("invalid TOKEN_TTL_HOURS value %q, defaulting to 24", raw)
		} else {
			ttlHours = parsed
		}
	}

	seedAdmin := false
	switch os.Getenv("SEED_ADMIN") {
	case "true", "1", "yes":
		seedAdmin = true
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}

	return Config{
		Secret:        secret,
		DatabaseDSN:   dsn,
		HTTPPort:      port,
		TokenTTL:      time.Duration(ttlHours) * time.Hour,
		SeedAdmin:     seedAdmin,
		AdminUsername: adminUsername,
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}
