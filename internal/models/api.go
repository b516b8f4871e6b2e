// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package models

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Healthy bool   `json:"healthy"`
	Version string `json:"version"`
}

// LoginRequest is the POST /login body.
type LoginRequest struct {
	User string `json:"user" validate:"required,max=128"`
	Pw   string `json:"pw" validate:"required,max=256"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	JWT string `json:"jwt"`
}

// ErrorResponse is the body of every non-empty error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
