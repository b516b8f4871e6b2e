// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/refeed/config.yaml",
	"/etc/refeed/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultTokenTTL matches the lifetime the frontend has always been issued.
const DefaultTokenTTL = 10_000_000 * time.Second

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           3030,
			Timeout:        30 * time.Second,
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   16 * 1024,
			Environment:    "development",
		},
		Security: SecurityConfig{
			JWTSecret:          "",
			TokenTTL:           DefaultTokenTTL,
			AdminUsername:      "matthew",
			LoginFailureDelay:  time.Second,
			LoginMaxFailures:   10,
			LoginFailureWindow: 15 * time.Minute,
			RateLimitReqs:      100,
			RateLimitWindow:    time.Minute,
			CORSOrigins: []string{
				"http://localhost:8080",
				"http://127.0.0.1:8080",
				"http://refeed.local:8080",
				"https://rampage.screaming3d.com",
			},
			SessionStore:           "memory",
			SessionStorePath:       "/data/sessions",
			SessionCleanupInterval: 10 * time.Minute,
		},
		Store: StoreConfig{
			Backend:          "memory",
			Path:             "/data/meals",
			Table:            "meals",
			ReadRetries:      3,
			ReadRetryBackoff: 100 * time.Millisecond,
			BreakerEnabled:   true,
			DynamoDB: DynamoDBConfig{
				Region: "us-east-1",
			},
		},
		Bootstrap: BootstrapConfig{
			MaxAttempts: 10,
			RetryDelay:  5 * time.Second,
			Seed:        true,
		},
		ObjectStore: ObjectStoreConfig{
			Enabled: false,
			Bucket:  "refeed-rampage",
			Region:  "us-east-1",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf layers defaults, the optional YAML file and the environment,
// then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values into string slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"http_host":       "server.host",
	"http_port":       "server.port",
	"http_timeout":    "server.timeout",
	"request_timeout": "server.request_timeout",
	"max_body_bytes":  "server.max_body_bytes",
	"environment":     "server.environment",

	"jwt_secret":               "security.jwt_secret",
	"token_ttl":                "security.token_ttl",
	"admin_username":           "security.admin_username",
	"admin_password":           "security.admin_password",
	"admin_password_hash":      "security.admin_password_hash",
	"login_failure_delay":      "security.login_failure_delay",
	"login_max_failures":       "security.login_max_failures",
	"login_failure_window":     "security.login_failure_window",
	"rate_limit_requests":      "security.rate_limit_requests",
	"rate_limit_window":        "security.rate_limit_window",
	"disable_rate_limit":       "security.rate_limit_disabled",
	"cors_origins":             "security.cors_origins",
	"session_store":            "security.session_store",
	"session_store_path":       "security.session_store_path",
	"session_cleanup_interval": "security.session_cleanup_interval",

	"store_backend":            "store.backend",
	"store_path":               "store.path",
	"store_table":              "store.table",
	"store_read_retries":       "store.read_retries",
	"store_read_retry_backoff": "store.read_retry_backoff",
	"store_breaker_enabled":    "store.breaker_enabled",
	"dynamodb_endpoint":        "store.dynamodb.endpoint",
	"aws_region":               "store.dynamodb.region",

	"bootstrap_max_attempts": "bootstrap.max_attempts",
	"bootstrap_retry_delay":  "bootstrap.retry_delay",
	"seed_enabled":           "bootstrap.seed",

	"objectstore_enabled": "objectstore.enabled",
	"s3_bucket":           "objectstore.bucket",
	"s3_endpoint":         "objectstore.endpoint",
	"s3_region":           "objectstore.region",
	"s3_use_path_style":   "objectstore.use_path_style",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its config key.
// Unknown variables map to "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
