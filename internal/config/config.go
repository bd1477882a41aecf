// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// minAdminTokenLen is the shortest admin token accepted in production.
const minAdminTokenLen = 16

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// AdminToken guards the rule-table write and rebuild endpoints. Empty
	// disables them.
	AdminToken string

	// SuggestCacheTTL is how long an encoded suggestion stays in Valkey;
	// zero disables the response cache.
	SuggestCacheTTL time.Duration
	// SuggestRateLimit is the number of suggestion requests allowed per
	// client IP per minute.
	SuggestRateLimit int

	// SeedFile overrides the embedded seed fixture.
	SeedFile string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if a value does not
// parse or critical values are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "weddingplanner"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "weddingplanner"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AdminToken: os.Getenv("ADMIN_TOKEN"),
		SeedFile:   os.Getenv("SEED_FILE"),
	}

	var errs []error

	db, err := strconv.Atoi(envOrDefault("VALKEY_DB", "0"))
	if err != nil || db < 0 {
		errs = append(errs, fmt.Errorf("VALKEY_DB must be a non-negative integer"))
	}
	cfg.ValkeyDB = db

	ttl, err := time.ParseDuration(envOrDefault("SUGGEST_CACHE_TTL", "10m"))
	if err != nil || ttl < 0 {
		errs = append(errs, fmt.Errorf("SUGGEST_CACHE_TTL must be a duration such as 10m"))
	}
	cfg.SuggestCacheTTL = ttl

	limit, err := strconv.Atoi(envOrDefault("SUGGEST_RATE_LIMIT", "60"))
	if err != nil || limit < 1 {
		errs = append(errs, fmt.Errorf("SUGGEST_RATE_LIMIT must be a positive integer"))
	}
	cfg.SuggestRateLimit = limit

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			errs = append(errs, fmt.Errorf("POSTGRES_PASSWORD must be set in production"))
		}
		if cfg.AdminToken != "" && len(cfg.AdminToken) < minAdminTokenLen {
			errs = append(errs, fmt.Errorf("ADMIN_TOKEN must be at least %d characters in production", minAdminTokenLen))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SuggestCacheEnabled reports whether suggestion responses are cached in
// Valkey.
func (c *Config) SuggestCacheEnabled() bool {
	return c.SuggestCacheTTL > 0
}

// AdminEnabled reports whether the admin endpoints are mounted.
func (c *Config) AdminEnabled() bool {
	return c.AdminToken != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
