// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

/*
Package auth guards the meal write routes.

Key Components:

  - TokenManager: HS256 login tokens carrying sub and exp claims
  - SessionStore: the set of tokens this server issued (memory or Badger)
  - CredentialChecker: the configured admin login, bcrypt or constant-time plaintext
  - LoginLimiter: per-username token bucket for failed logins
  - Enforcer: Casbin RBAC; writes on /meals* need the editor role
  - Middleware: chi middleware tying the above together

A write request is authorized only when its token verifies against the
signing secret, has not expired, appears in the SessionStore, and its
subject holds the editor role. Every rejection is a 401 with the body {}.

Tokens are read from the Authorization header in any of these forms:

	Authorization: bearer: <token>
	Authorization: Bearer <token>
	Authorization: bearer <token>

or, failing that, from the rtoken cookie set by a successful login.

Usage Example:

	tokens, _ := auth.NewTokenManager(&cfg.Security)
	sessions, _ := auth.NewSessionStore(&cfg.Security)
	enforcer, _ := auth.NewEnforcer(cfg.Security.AdminUsername)
	mw := auth.NewMiddleware(tokens, sessions, enforcer)

	r.With(mw.RequireEditor).Post("/meals", h.CreateMeal)
*/
package auth
