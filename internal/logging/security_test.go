// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSanitizeToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"short", "***"},
		{"exactlytwelv", "***"},
		{"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9", "eyJh...VCJ9"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.input); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeUsername(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":        "",
		"ab":      "**",
		"matthew": "ma***",
	}
	for in, want := range tests {
		if got := SanitizeUsername(in); got != want {
			t.Errorf("SanitizeUsername(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSecurityLogger_MasksSecrets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewSecurityLoggerWithLogger(NewTestLogger(&buf))

	token := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.payload.signature"
	l.LogTokenRejected(token, "10.0.0.1", "/meals", "not issued")
	l.LogLoginFailure("matthew", "10.0.0.1", "invalid credentials")

	out := buf.String()
	if strings.Contains(out, token) {
		t.Errorf("raw token leaked: %s", out)
	}
	if strings.Contains(out, "matthew") {
		t.Errorf("raw username leaked: %s", out)
	}
	if !strings.Contains(out, `"event":"token_rejected"`) || !strings.Contains(out, `"event":"login_failure"`) {
		t.Errorf("events missing: %s", out)
	}
	if !strings.Contains(out, `"component":"auth"`) {
		t.Errorf("component missing: %s", out)
	}
}
