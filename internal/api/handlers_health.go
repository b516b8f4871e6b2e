// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package api

import (
	"net/http"

	"github.com/tomtom215/refeed/internal/models"
)

// Health reports liveness.
//
// @Summary Health check
// @Description Always returns healthy while the process is serving
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.HealthResponse{
		Healthy: true,
		Version: h.version,
	})
}
