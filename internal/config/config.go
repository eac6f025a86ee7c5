// Package config loads server configuration from the environment. The JWT
// signing secret has no default on purpose: the process refuses to start
// without one instead of falling back to a compiled-in constant.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dkovalev/bazaar/internal/server/token"
)

const minSecretLen = 32

// Config is the server configuration.
type Config struct {
	Addr         string
	DatabasePath string
	JWTSecret    string
	TokenTTL     time.Duration
	LogLevel     slog.Level
}

// Load reads configuration from BAZAAR_* environment variables and
// validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:         envOr("BAZAAR_ADDR", ":8080"),
		DatabasePath: envOr("BAZAAR_DB", "bazaar.db"),
		JWTSecret:    os.Getenv("BAZAAR_JWT_SECRET"),
		TokenTTL:     token.DefaultTTL,
		LogLevel:     slog.LevelInfo,
	}

	if raw := os.Getenv("BAZAAR_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BAZAAR_TOKEN_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("BAZAAR_TOKEN_TTL must be positive")
		}
		cfg.TokenTTL = ttl
	}

	if raw := os.Getenv("BAZAAR_LOG_LEVEL"); raw != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid BAZAAR_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("BAZAAR_JWT_SECRET is required")
	}
	if len(c.JWTSecret) < minSecretLen {
		return fmt.Errorf("BAZAAR_JWT_SECRET must be at least %d bytes", minSecretLen)
	}
	return nil
}

// TokenConfig builds the token codec configuration.
func (c *Config) TokenConfig() token.Config {
	return token.Config{
		Secret: []byte(c.JWTSecret),
		TTL:    c.TokenTTL,
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
