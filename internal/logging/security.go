// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package logging

import (
	"github.com/rs/zerolog"
)

// SecurityLogger records login and token events with secrets masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger returns a SecurityLogger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger is used by tests to capture output.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogLoginSuccess records an accepted login.
func (l *SecurityLogger) LogLoginSuccess(username, ip string) {
	l.logger.Info().
		Str("event", "login_success").
		Str("username", SanitizeUsername(username)).
		Str("ip", ip).
		Msg("Login succeeded")
}

// LogLoginFailure records a rejected login.
func (l *SecurityLogger) LogLoginFailure(username, ip, reason string) {
	l.logger.Warn().
		Str("event", "login_failure").
		Str("username", SanitizeUsername(username)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Login failed")
}

// LogTokenRejected records a bearer token that failed authorization.
func (l *SecurityLogger) LogTokenRejected(token, ip, path, reason string) {
	l.logger.Warn().
		Str("event", "token_rejected").
		Str("token", SanitizeToken(token)).
		Str("ip", ip).
		Str("path", path).
		Str("reason", reason).
		Msg("Bearer token rejected")
}

// SanitizeToken keeps the first and last four characters of a token.
//
//	"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9" -> "eyJh...VCJ9"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeUsername keeps the first two characters of a username.
func SanitizeUsername(username string) string {
	switch {
	case username == "":
		return ""
	case len(username) <= 2:
		return "**"
	default:
		return username[:2] + "***"
	}
}
