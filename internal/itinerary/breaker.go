// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/zzangoobrother/ddalkkak-date/internal/logging"
	"github.com/zzangoobrother/ddalkkak-date/internal/metrics"
)

// newProviderBreaker builds the circuit breaker shared by all provider
// adapters. A tripped breaker makes the provider decline instantly,
// which the orchestrator treats like any other provider failure.
//
// The breaker uses real time for its interval and timeout; tests
// exercise providers directly rather than mocking the breaker.
func newProviderBreaker(name string) *gobreaker.CircuitBreaker[*chatCompletion] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed

	return gobreaker.NewCircuitBreaker[*chatCompletion](gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		// Open after >=60% failures with at least 5 requests observed.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", breakerStateString(from)).
				Str("to", breakerStateString(to)).
				Msg("circuit breaker state transition")
			metrics.SetCircuitBreakerState(name, breakerStateFloat(to))
		},
	})
}

// chatCompletion is the provider-agnostic result passed through the
// breaker: the raw text a backend generated.
type chatCompletion struct {
	text string
}

func breakerStateString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateOpen:
		return "open"
	case gobreaker.StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

func breakerStateFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
