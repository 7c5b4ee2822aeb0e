// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zzangoobrother/ddalkkak-date/internal/metrics"
)

// prometheusMetrics records request counts, durations and in-flight
// gauge per routed pattern.
func prometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// The route pattern is only known after routing, so the labels
		// are resolved post-hoc. Unrouted requests fall back to the
		// raw path.
		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, endpoint, strconv.Itoa(ww.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, endpoint).
			Observe(time.Since(start).Seconds())
	})
}
