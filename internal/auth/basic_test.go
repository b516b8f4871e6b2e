// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/refeed/internal/config"
)

func TestCredentialChecker(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	plain, err := NewCredentialChecker(&config.SecurityConfig{AdminUsername: "matthew", AdminPassword: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	hashed, err := NewCredentialChecker(&config.SecurityConfig{
		AdminUsername:     "matthew",
		AdminPassword:     "ignored",
		AdminPasswordHash: string(hash),
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		checker *CredentialChecker
		user    string
		pw      string
		wantErr bool
	}{
		{"plain ok", plain, "matthew", "pw", false},
		{"plain wrong password", plain, "matthew", "nope", true},
		{"plain wrong user", plain, "mark", "pw", true},
		{"plain empty", plain, "", "", true},
		{"hash ok", hashed, "matthew", "hashed-pw", false},
		{"hash wins over plaintext", hashed, "matthew", "ignored", true},
		{"hash wrong user", hashed, "mark", "hashed-pw", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.checker.Check(tt.user, tt.pw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("Check error = %v, want ErrInvalidCredentials", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Check: %v", err)
			}
		})
	}
}

func TestNewCredentialChecker_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.SecurityConfig
	}{
		{"no username", config.SecurityConfig{AdminPassword: "pw"}},
		{"no password", config.SecurityConfig{AdminUsername: "matthew"}},
		{"bad hash", config.SecurityConfig{AdminUsername: "matthew", AdminPasswordHash: "md5:abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewCredentialChecker(&tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}
