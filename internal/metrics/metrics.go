// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

// Package metrics provides Prometheus instrumentation for the
// generation pipeline, the HTTP surface and the itinerary store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Generation Pipeline Metrics
	GenerationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_attempts_total",
			Help: "Total generation attempts per provider",
		},
		[]string{"provider"}, // "openai", "anthropic", "template"
	)

	GenerationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_outcomes_total",
			Help: "Generation attempt outcomes per provider",
		},
		[]string{"provider", "outcome"}, // outcome: "success", "error", "invalid", "timeout"
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Duration of generation attempts in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"provider"},
	)

	TemplateFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_template_fallbacks_total",
			Help: "Total itineraries served from the fallback template table",
		},
	)

	ValidationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_validation_rejections_total",
			Help: "Provider responses rejected by response validation",
		},
		[]string{"provider", "reason"}, // reason: "stop_count", "unknown_venue", "budget"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of itinerary store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "save", "get", "list", "delete"
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total itinerary store operation failures",
		},
		[]string{"operation"},
	)

	ItinerariesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itineraries_created_total",
			Help: "Total itineraries created, by generation source",
		},
		[]string{"source"}, // "openai", "anthropic", "template"
	)
)

// RecordGeneration records one provider attempt with its outcome and
// latency.
func RecordGeneration(provider, outcome string, duration time.Duration) {
	GenerationAttempts.WithLabelValues(provider).Inc()
	GenerationOutcomes.WithLabelValues(provider, outcome).Inc()
	GenerationDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordValidationRejection records a provider response rejected during
// validation.
func RecordValidationRejection(provider, reason string) {
	ValidationRejections.WithLabelValues(provider, reason).Inc()
}

// RecordTemplateFallback records an itinerary served from the template
// table after all providers failed.
func RecordTemplateFallback() {
	TemplateFallbacks.Inc()
}

// RecordStoreOperation records a store operation with its latency.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// SetCircuitBreakerState updates the breaker state gauge.
// state: 0=closed, 1=open, 2=half-open.
func SetCircuitBreakerState(name string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
}
