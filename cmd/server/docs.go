// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

// @title Refeed API
// @version 1.0
// @description Meal tracking REST API.
// @description
// @description ## Authentication
// @description
// @description Writes require a token from POST /login, sent as "Authorization: Bearer <token>"
// @description (the legacy "bearer: <token>" form is accepted) or via the rtoken cookie.
// @description
// @description ## Errors
// @description
// @description Error bodies are {"error": "message"}. A missing meal is 404 with an empty body,
// @description a failed login is 401 with an empty body and a rejected token is 401 with {}.
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token from POST /login. The legacy "bearer: <token>" form is also accepted.
//
// @tag.name Meals
// @tag.description Meal records
//
// @tag.name Auth
// @tag.description Admin login
//
// @tag.name Health
// @tag.description Liveness
package main
