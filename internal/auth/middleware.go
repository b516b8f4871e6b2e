// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/metrics"
)

// TokenCookieName is the cookie set on login and accepted in place of
// the Authorization header.
const TokenCookieName = "rtoken"

// unauthorizedBody is the fixed response for every rejected write.
var unauthorizedBody = []byte("{}")

// Middleware gates write routes on an issued, unexpired token whose
// subject holds the editor role.
type Middleware struct {
	tokens   *TokenManager
	sessions SessionStore
	enforcer *Enforcer
	security *logging.SecurityLogger
}

func NewMiddleware(tokens *TokenManager, sessions SessionStore, enforcer *Enforcer) *Middleware {
	return &Middleware{
		tokens:   tokens,
		sessions: sessions,
		enforcer: enforcer,
		security: logging.NewSecurityLogger(),
	}
}

// ExtractToken reads the bearer token from the Authorization header,
// accepting "bearer: <t>", "Bearer <t>" and "bearer <t>", then falls back
// to the rtoken cookie.
func ExtractToken(r *http.Request) (string, bool) {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		if scheme, rest, ok := strings.Cut(header, " "); ok {
			scheme = strings.TrimSuffix(scheme, ":")
			if strings.EqualFold(scheme, "bearer") {
				if token := strings.TrimSpace(rest); token != "" {
					return token, true
				}
			}
		}
	}

	if c, err := r.Cookie(TokenCookieName); err == nil {
		if token := strings.Trim(c.Value, "\""); token != "" {
			return token, true
		}
	}
	return "", false
}

// Authorize validates token and confirms this server issued it.
func (m *Middleware) Authorize(ctx context.Context, token string) (*Claims, error) {
	claims, err := m.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	issued, err := m.sessions.Contains(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if !issued {
		return nil, ErrTokenNotIssued
	}
	return claims, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrTokenNotIssued):
		return "not_issued"
	default:
		return "session_error"
	}
}

// RequireEditor is chi middleware for the meal write routes.
func (m *Middleware) RequireEditor(next http.Handler) http.Handler {
	return m.require(ActionWrite, next)
}

func (m *Middleware) require(action string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ExtractToken(r)
		if !ok {
			m.reject(w, r, "", "missing_token")
			return
		}

		claims, err := m.Authorize(r.Context(), token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token rejected")
			m.reject(w, r, token, rejectReason(err))
			return
		}

		allowed, err := m.enforcer.Enforce(claims.Subject, r.URL.Path, action)
		if err != nil || !allowed {
			m.reject(w, r, token, "forbidden")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, token, reason string) {
	metrics.AuthRejections.WithLabelValues(reason).Inc()
	m.security.LogTokenRejected(token, clientIP(r), r.URL.Path, reason)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write(unauthorizedBody)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
