package config

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// TestLoad_Defaults verifies every setting falls back to its default when the
// environment is empty.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PROFILE_CACHE_TTL", "")

	cfg := Load()

	if cfg.JWTSecret != "" {
		t.Errorf("expected empty JWT secret, got %q", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected default token TTL 24h, got %v", cfg.TokenTTL)
	}
	if cfg.BcryptCost != bcrypt.DefaultCost {
		t.Errorf("expected default bcrypt cost %d, got %d", bcrypt.DefaultCost, cfg.BcryptCost)
	}
	if cfg.ProfileCacheTTL != time.Minute {
		t.Errorf("expected default cache TTL 1m, got %v", cfg.ProfileCacheTTL)
	}
}

// TestLoad_FromEnvironment verifies values are read from the environment.
func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("PROFILE_CACHE_TTL", "5s")

	cfg := Load()

	if cfg.JWTSecret != "super-secret" {
		t.Errorf("expected JWT secret from env, got %q", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("expected token TTL 30m, got %v", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.ProfileCacheTTL != 5*time.Second {
		t.Errorf("expected cache TTL 5s, got %v", cfg.ProfileCacheTTL)
	}
}

// TestLoad_Unparsable verifies garbage values fall back to defaults instead
// of failing startup.
func TestLoad_Unparsable(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("BCRYPT_COST", "many")
	t.Setenv("PROFILE_CACHE_TTL", "-10s")

	cfg := Load()

	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected fallback token TTL, got %v", cfg.TokenTTL)
	}
	if cfg.BcryptCost != bcrypt.DefaultCost {
		t.Errorf("expected fallback bcrypt cost, got %d", cfg.BcryptCost)
	}
	if cfg.ProfileCacheTTL != time.Minute {
		t.Errorf("expected fallback cache TTL, got %v", cfg.ProfileCacheTTL)
	}
}
