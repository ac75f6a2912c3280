// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/showgrid/internal/config"
	"github.com/tomtom215/showgrid/internal/middleware"
	"github.com/tomtom215/showgrid/internal/models"
)

// NewRouter builds the HTTP handler tree. CORS is global so OPTIONS
// preflight works on every route; the trigger endpoint is open to any
// origin because the warehouse runs behind the operator's own network.
func NewRouter(handler *Handler, cfg config.APIConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         cfg.CORSMaxAge,
	}))

	if !cfg.RateLimitDisabled {
		window := cfg.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		r.Use(httprate.LimitByIP(cfg.RateLimitReqs, window))
	}

	r.Use(middleware.PrometheusMetrics)

	r.MethodNotAllowed(methodNotAllowed)
	r.NotFound(notFound)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/pipeline/run", handler.RunPipeline)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/show-runtimes", handler.ShowRuntimes)
			r.Get("/shows-by-genre", handler.ShowsByGenre)
			r.Get("/show-domains", handler.ShowDomains)
		})

		r.Get("/health", handler.Health)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusMethodNotAllowed, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "Method " + r.Method + " is not allowed on this resource",
		},
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    "NOT_FOUND",
			Message: "Resource not found",
		},
	})
}
