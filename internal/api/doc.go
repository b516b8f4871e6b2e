// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

/*
Package api provides the HTTP REST API layer for Refeed.

Endpoints:

  - GET /health: liveness and build version
  - GET /meals, GET /meals/{id}: public reads
  - POST /meals, PUT /meals/{id}, DELETE /meals/{id}: require an editor token
  - POST /login: exchanges the admin credentials for a token
  - GET /metrics, GET /swagger/*: observability

Tokens are accepted from the Authorization header (Bearer, bearer or the
legacy "bearer:" form) or the rtoken cookie set by a successful login. See
package auth for the checks applied.

Usage Example:

	handler := api.NewHandler(cfg, mealStore, sessions, tokens, credentials, version)
	authMiddleware := auth.NewMiddleware(tokens, sessions, enforcer)
	router := api.NewRouter(handler, authMiddleware, &cfg.Security)

	srv := &http.Server{Addr: addr, Handler: router.SetupChi()}

Error responses are {"error": "..."} except where clients expect an empty
body: 404 from GET /meals/{id}, 401 from POST /login, and 401 ({}) from
token checks and unknown routes.
*/
package api
