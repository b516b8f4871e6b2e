// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package api

import (
	"github.com/tomtom215/refeed/internal/auth"
	"github.com/tomtom215/refeed/internal/config"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	middleware    *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a new router. A nil middleware config uses
// DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, security *config.SecurityConfig) *Router {
	var mwConfig *ChiMiddlewareConfig
	if security != nil {
		mwConfig = ChiMiddlewareConfigFromSecurity(security)
	}
	return &Router{
		handler:       handler,
		middleware:    authMiddleware,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}
