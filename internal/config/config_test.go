package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SECRET", "HTTP_PORT", "DATABASE_DSN", "TOKEN_TTL_HOURS", "SEED_ADMIN", "ADMIN_USERNAME", "ADMIN_PASSWORD"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Secret != "dev_secret" {
		t.Errorf("Secret = %q", cfg.Secret)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.DatabaseDSN != "taskmanager.db" {
		t.Errorf("DatabaseDSN = %q", cfg.DatabaseDSN)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if cfg.SeedAdmin {
		t.Error("SeedAdmin must default to false")
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %q", cfg.AdminUsername)
	}
}

func TestLoadOverridesAndValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "notaport")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("SEED_ADMIN", "1")
	t.Setenv("ADMIN_USERNAME", "root")

	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Errorf("invalid port must fall back to 8080, got %q", cfg.HTTPPort)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v, want 2h", cfg.TokenTTL)
	}
	if !cfg.SeedAdmin {
		t.Error("SEED_ADMIN=1 must enable seeding")
	}
	if cfg.AdminUsername != "root" {
		t.Errorf("AdminUsername = %q", cfg.AdminUsername)
	}
}
