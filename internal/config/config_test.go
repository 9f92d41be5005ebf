package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_EXPIRES_IN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreDriver != StoreDriverSQLite {
		t.Errorf("expected sqlite driver, got %s", cfg.StoreDriver)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected 24h expiry, got %s", cfg.JWTExpirationDur)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreDriver != StoreDriverMemory {
		t.Errorf("expected memory driver, got %s", cfg.StoreDriver)
	}
	if cfg.JWTExpirationDur != 90*time.Minute {
		t.Errorf("expected 90m expiry, got %s", cfg.JWTExpirationDur)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
}

func TestLoadFallbacks(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("JWT_EXPIRES_IN", "tomorrow")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreDriver != StoreDriverSQLite {
		t.Errorf("expected fallback to sqlite, got %s", cfg.StoreDriver)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected fallback to 24h, got %s", cfg.JWTExpirationDur)
	}
}
