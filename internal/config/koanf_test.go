// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// TestDefaultConfig verifies that defaultConfig() returns the documented defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 3030 {
		t.Errorf("Server.Port = %d, want 3030", cfg.Server.Port)
	}
	if cfg.Server.MaxBodyBytes != 16*1024 {
		t.Errorf("Server.MaxBodyBytes = %d, want 16384", cfg.Server.MaxBodyBytes)
	}
	if cfg.Security.TokenTTL != 10_000_000*time.Second {
		t.Errorf("Security.TokenTTL = %v, want 10000000s", cfg.Security.TokenTTL)
	}
	if cfg.Security.AdminUsername != "matthew" {
		t.Errorf("Security.AdminUsername = %q, want matthew", cfg.Security.AdminUsername)
	}
	if cfg.Security.LoginFailureDelay != time.Second {
		t.Errorf("Security.LoginFailureDelay = %v, want 1s", cfg.Security.LoginFailureDelay)
	}
	if len(cfg.Security.CORSOrigins) != 4 {
		t.Errorf("Security.CORSOrigins = %v, want 4 origins", cfg.Security.CORSOrigins)
	}
	if cfg.Store.Backend != "memory" || cfg.Store.Table != "meals" {
		t.Errorf("Store = %+v, want memory backend on table meals", cfg.Store)
	}
	if cfg.Bootstrap.MaxAttempts != 10 || cfg.Bootstrap.RetryDelay != 5*time.Second {
		t.Errorf("Bootstrap = %+v, want 10 attempts every 5s", cfg.Bootstrap)
	}
	if cfg.ObjectStore.Bucket != "refeed-rampage" {
		t.Errorf("ObjectStore.Bucket = %q, want refeed-rampage", cfg.ObjectStore.Bucket)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"HTTP_PORT":         "server.port",
		"JWT_SECRET":        "security.jwt_secret",
		"cors_origins":      "security.cors_origins",
		"STORE_BACKEND":     "store.backend",
		"DYNAMODB_ENDPOINT": "store.dynamodb.endpoint",
		"S3_BUCKET":         "objectstore.bucket",
		"LOG_LEVEL":         "logging.level",
		"PATH":              "",
		"HOME":              "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(ConfigPathEnvVar, path)

		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("missing CONFIG_PATH is ignored", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ADMIN_PASSWORD", "thisisfortesting")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE_BACKEND", "badger")
	t.Setenv("STORE_PATH", "/tmp/refeed-meals")
	t.Setenv("BOOTSTRAP_RETRY_DELAY", "250ms")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Store.Backend != "badger" || cfg.Store.Path != "/tmp/refeed-meals" {
		t.Errorf("Store = %+v, want badger at /tmp/refeed-meals", cfg.Store)
	}
	if cfg.Bootstrap.RetryDelay != 250*time.Millisecond {
		t.Errorf("Bootstrap.RetryDelay = %v, want 250ms", cfg.Bootstrap.RetryDelay)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	// Untouched defaults survive
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 4000
security:
  jwt_secret: "` + testSecret + `"
  admin_password: "from-file"
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "4100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 4100 {
		t.Errorf("Server.Port = %d, want env override 4100", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn from file", cfg.Logging.Level)
	}
	if cfg.Security.AdminPassword != "from-file" {
		t.Errorf("Security.AdminPassword = %q, want from-file", cfg.Security.AdminPassword)
	}
}

func TestLoadWithKoanf_MissingSecret(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD", "pw")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}
