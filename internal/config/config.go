// Package config loads process-wide configuration from environment variables.
// It is read exactly once in main and injected into constructors; no other
// package consults the environment for these values.
package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds the immutable process-wide settings for the messaging backend.
type Config struct {
	// JWTSecret signs and verifies issued tokens. Empty means the server
	// cannot authenticate anyone; main logs a warning in that case.
	JWTSecret string

	// TokenTTL is the fixed validity window of issued tokens.
	TokenTTL time.Duration

	// BcryptCost is the work factor applied when hashing passwords.
	BcryptCost int

	// ProfileCacheTTL bounds staleness of cached user profiles.
	ProfileCacheTTL time.Duration
}

// Load reads configuration from environment variables, applying defaults for
// anything unset or unparsable.
func Load() Config {
	return Config{
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        durationEnv("TOKEN_TTL", 24*time.Hour),
		BcryptCost:      intEnv("BCRYPT_COST", bcrypt.DefaultCost),
		ProfileCacheTTL: durationEnv("PROFILE_CACHE_TTL", time.Minute),
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
