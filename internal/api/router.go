// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zzangoobrother/ddalkkak-date/internal/config"
)

// NewRouter builds the HTTP routing tree.
//
// Middleware order matters: request id and real IP extraction come
// first so every later stage (including panic recovery logs) sees
// them, CORS is global to handle OPTIONS preflight, rate limiting and
// metrics apply per route group.
func NewRouter(h *Handler, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", userIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}
		r.Use(prometheusMetrics)

		r.Get("/regions", h.handleListRegions)
		r.Get("/activity-types", h.handleListActivityTypes)
		r.Get("/budget-presets", h.handleListBudgetPresets)

		r.Route("/courses", func(r chi.Router) {
			r.Post("/", h.handleGenerate)
			r.Get("/", h.handleList)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGet)
				r.Delete("/", h.handleDelete)
				r.Post("/save", h.handleSave)
				r.Post("/confirm", h.handleConfirm)
				r.Put("/stops", h.handleEdit)
				r.Post("/copy", h.handleCopy)
				r.Post("/rating", h.handleRate)
				r.Post("/share", h.handleShare)
			})
		})

		r.Get("/shared/{shareID}", h.handleGetShared)
	})

	return r
}
