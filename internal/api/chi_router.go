// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/refeed/internal/middleware"
)

// SetupChi builds the HTTP handler.
//
// Route layout:
//
//	GET    /health         never rate limited
//	GET    /meals
//	GET    /meals/{id}
//	POST   /meals          editor token
//	PUT    /meals/{id}     editor token
//	DELETE /meals/{id}     editor token
//	POST   /login          rate limited per IP
//	GET    /metrics
//	GET    /swagger/*
//
// Any other path answers 401 with an empty JSON object.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global middleware
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(APISecurityHeaders())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(unmatchedRoute)

	// ========================
	// Unthrottled
	// ========================
	r.Get("/health", router.handler.Health)

	// ========================
	// API (per-IP rate limited)
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Route("/meals", func(r chi.Router) {
			r.Get("/", router.handler.ListMeals)
			r.Get("/{id}", router.handler.GetMeal)

			r.Group(func(r chi.Router) {
				r.Use(router.middleware.RequireEditor)
				r.Post("/", router.handler.CreateMeal)
				r.Put("/{id}", router.handler.UpdateMeal)
				r.Delete("/{id}", router.handler.DeleteMeal)
			})
		})

		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}

// unmatchedRoute rejects unknown paths the same way as a failed token check.
func unmatchedRoute(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte("{}"))
}
