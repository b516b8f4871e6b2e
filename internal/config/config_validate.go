// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// minJWTSecretLength is the HS256 key size in bytes.
const minJWTSecretLength = 32

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateBootstrap(); err != nil {
		return err
	}
	if err := c.validateObjectStore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	s := &c.Security
	if len(s.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET is required and must be at least %d characters", minJWTSecretLength)
	}
	if s.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if s.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME is required")
	}
	if s.AdminPassword == "" && s.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if s.AdminPasswordHash != "" && !strings.HasPrefix(s.AdminPasswordHash, "$2") {
		return fmt.Errorf("ADMIN_PASSWORD_HASH must be a bcrypt hash")
	}
	if s.LoginFailureDelay < 0 {
		return fmt.Errorf("LOGIN_FAILURE_DELAY must not be negative")
	}
	if s.LoginMaxFailures < 1 {
		return fmt.Errorf("LOGIN_MAX_FAILURES must be at least 1")
	}
	if !s.RateLimitDisabled && (s.RateLimitReqs < 1 || s.RateLimitWindow <= 0) {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	if err := c.validateCORS(); err != nil {
		return err
	}

	switch s.SessionStore {
	case "memory":
	case "badger":
		if s.SessionStorePath == "" {
			return fmt.Errorf("SESSION_STORE_PATH is required when SESSION_STORE=badger")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be memory or badger, got %q", s.SessionStore)
	}
	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			if c.IsProduction() {
				return fmt.Errorf("CORS_ORIGINS=* is not allowed in production")
			}
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS entry %q must be an http(s) origin", origin)
		}
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.Table == "" {
		return fmt.Errorf("STORE_TABLE is required")
	}
	if c.Store.ReadRetries < 0 {
		return fmt.Errorf("STORE_READ_RETRIES must not be negative")
	}
	switch c.Store.Backend {
	case "memory":
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("STORE_PATH is required when STORE_BACKEND=badger")
		}
	case "dynamodb":
		if c.Store.DynamoDB.Region == "" {
			return fmt.Errorf("AWS_REGION is required when STORE_BACKEND=dynamodb")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be memory, badger or dynamodb, got %q", c.Store.Backend)
	}
	return nil
}

func (c *Config) validateBootstrap() error {
	if c.Bootstrap.MaxAttempts < 1 {
		return fmt.Errorf("BOOTSTRAP_MAX_ATTEMPTS must be at least 1")
	}
	if c.Bootstrap.RetryDelay < 0 {
		return fmt.Errorf("BOOTSTRAP_RETRY_DELAY must not be negative")
	}
	return nil
}

func (c *Config) validateObjectStore() error {
	if !c.ObjectStore.Enabled {
		return nil
	}
	if c.ObjectStore.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when OBJECTSTORE_ENABLED=true")
	}
	if c.ObjectStore.Region == "" {
		return fmt.Errorf("S3_REGION is required when OBJECTSTORE_ENABLED=true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
