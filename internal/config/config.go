// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

// Package config loads Refeed configuration.
//
// Loading order (koanf):
//  1. Built-in defaults
//  2. Optional YAML file (config.yaml, or the path in CONFIG_PATH)
//  3. Environment variables
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Security    SecurityConfig    `koanf:"security"`
	Store       StoreConfig       `koanf:"store"`
	Bootstrap   BootstrapConfig   `koanf:"bootstrap"`
	ObjectStore ObjectStoreConfig `koanf:"objectstore"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Timeout applies to http.Server read and write.
	Timeout time.Duration `koanf:"timeout"`

	// RequestTimeout bounds store work done by a single handler.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	Environment string `koanf:"environment"`
}

// SecurityConfig configures login, tokens, CORS and rate limits.
type SecurityConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`

	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
	// AdminPasswordHash is a bcrypt hash; it takes precedence over AdminPassword.
	AdminPasswordHash string `koanf:"admin_password_hash"`

	// LoginFailureDelay is slept before answering a failed login.
	LoginFailureDelay time.Duration `koanf:"login_failure_delay"`
	// LoginMaxFailures failed logins per username are tolerated per LoginFailureWindow.
	LoginMaxFailures   int           `koanf:"login_max_failures"`
	LoginFailureWindow time.Duration `koanf:"login_failure_window"`

	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`

	// SessionStore is "memory" or "badger".
	SessionStore           string        `koanf:"session_store"`
	SessionStorePath       string        `koanf:"session_store_path"`
	SessionCleanupInterval time.Duration `koanf:"session_cleanup_interval"`
}

// StoreConfig selects and tunes the meal store backend.
type StoreConfig struct {
	// Backend is "memory", "badger" or "dynamodb".
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`
	Table   string `koanf:"table"`

	ReadRetries      int           `koanf:"read_retries"`
	ReadRetryBackoff time.Duration `koanf:"read_retry_backoff"`

	BreakerEnabled bool `koanf:"breaker_enabled"`

	DynamoDB DynamoDBConfig `koanf:"dynamodb"`
}

// DynamoDBConfig configures the dynamodb backend. Endpoint is optional and
// points at DynamoDB Local during development.
type DynamoDBConfig struct {
	Endpoint string `koanf:"endpoint"`
	Region   string `koanf:"region"`
}

// BootstrapConfig controls the table readiness loop and seeding.
type BootstrapConfig struct {
	MaxAttempts int           `koanf:"max_attempts"`
	RetryDelay  time.Duration `koanf:"retry_delay"`
	Seed        bool          `koanf:"seed"`
}

// ObjectStoreConfig configures the S3 bucket checked at startup.
type ObjectStoreConfig struct {
	Enabled      bool   `koanf:"enabled"`
	Bucket       string `koanf:"bucket"`
	Endpoint     string `koanf:"endpoint"`
	Region       string `koanf:"region"`
	UsePathStyle bool   `koanf:"use_path_style"`
}

// LoggingConfig configures internal/logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
