// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/refeed/internal/auth"
	"github.com/tomtom215/refeed/internal/config"
	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/store"
)

// Handler serves the meal, login and health endpoints.
type Handler struct {
	store       store.MealStore
	sessions    auth.SessionStore
	tokens      *auth.TokenManager
	credentials *auth.CredentialChecker
	limiter     *auth.LoginLimiter
	security    *logging.SecurityLogger

	requestTimeout time.Duration
	failureDelay   time.Duration
	maxBodyBytes   int64
	version        string
}

// NewHandler creates a new API handler with all required dependencies.
//
// Dependencies:
//   - cfg: application configuration (timeouts, body limit, login policy)
//   - mealStore: the decorated meal store from store.Open
//   - sessions: the issued-token set shared with auth.Middleware
//   - tokens: signs login tokens
//   - credentials: the configured admin login
//   - version: reported by GET /health
//
// Example:
//
//	handler := api.NewHandler(cfg, mealStore, sessions, tokens, credentials, version)
//	router := api.NewRouter(handler, authMiddleware, &cfg.Security)
//	http.ListenAndServe(addr, router.SetupChi())
func NewHandler(
	cfg *config.Config,
	mealStore store.MealStore,
	sessions auth.SessionStore,
	tokens *auth.TokenManager,
	credentials *auth.CredentialChecker,
	version string,
) *Handler {
	if version == "" {
		version = "dev"
	}
	return &Handler{
		store:          mealStore,
		sessions:       sessions,
		tokens:         tokens,
		credentials:    credentials,
		limiter:        auth.NewLoginLimiter(cfg.Security.LoginMaxFailures, cfg.Security.LoginFailureWindow),
		security:       logging.NewSecurityLogger(),
		requestTimeout: cfg.Server.RequestTimeout,
		failureDelay:   cfg.Security.LoginFailureDelay,
		maxBodyBytes:   cfg.Server.MaxBodyBytes,
		version:        version,
	}
}

// LoginLimiter exposes the failed-login limiter for periodic pruning.
func (h *Handler) LoginLimiter() *auth.LoginLimiter {
	return h.limiter
}

// storeContext bounds store work for one request.
func (h *Handler) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.requestTimeout)
}
