// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zzangoobrother/ddalkkak-date/internal/geo"
	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

const (
	minEditStops = 2
	maxEditStops = 5

	// editBudgetTolerance bounds how far an edit may drift from the
	// pre-edit total budget.
	editBudgetTolerance = 0.2

	// maxStopDistanceKm caps the great-circle distance between
	// adjacent stops. Stands in for a ~30 minute transit bound at an
	// assumed 20 km/h.
	maxStopDistanceKm = 10.0
)

// Edit validation failures, surfaced to the caller with the computed
// bounds; the itinerary is left unmodified on rejection.
var (
	ErrEditStopCount   = errors.New("stop count out of range")
	ErrEditSequence    = errors.New("stop sequences must form 1..n")
	ErrEditBudgetDrift = errors.New("budget outside allowed range")
	ErrEditDistance    = errors.New("adjacent stops too far apart")
)

// ValidateEdit checks a resubmitted stop list against the stored
// itinerary. Pure function; callers replace the stops wholesale only
// after it passes.
func ValidateEdit(original *models.Itinerary, stops []models.Stop) error {
	if len(stops) < minEditStops || len(stops) > maxEditStops {
		return fmt.Errorf("%w: got %d, want %d-%d",
			ErrEditStopCount, len(stops), minEditStops, maxEditStops)
	}

	// Sequence values must be a contiguous 1-based permutation;
	// duplicates or gaps would corrupt the stored visit order.
	ordered := sortedBySequence(stops)
	for i, s := range ordered {
		if s.Sequence != i+1 {
			return fmt.Errorf("%w: got sequence %d at position %d of %d",
				ErrEditSequence, s.Sequence, i+1, len(stops))
		}
	}

	newBudget := 0
	for _, s := range stops {
		newBudget += s.Cost
	}

	minAllowed := int(float64(original.TotalBudget) * (1 - editBudgetTolerance))
	maxAllowed := int(float64(original.TotalBudget) * (1 + editBudgetTolerance))
	if newBudget < minAllowed || newBudget > maxAllowed {
		return fmt.Errorf("%w: original %d원, new %d원, allowed [%d,%d]원",
			ErrEditBudgetDrift, original.TotalBudget, newBudget, minAllowed, maxAllowed)
	}

	// Adjacency follows the visit order, not the submission order.
	for i := 0; i < len(ordered)-1; i++ {
		cur, next := ordered[i], ordered[i+1]
		distance := geo.Distance(cur.Latitude, cur.Longitude, next.Latitude, next.Longitude)
		if distance > maxStopDistanceKm {
			return fmt.Errorf("%w: %s → %s is %.1fkm, limit %.0fkm",
				ErrEditDistance, cur.Name, next.Name, distance, maxStopDistanceKm)
		}
	}

	return nil
}

// sortedBySequence returns a copy of the stops ordered by their
// sequence numbers.
func sortedBySequence(stops []models.Stop) []models.Stop {
	ordered := make([]models.Stop, len(stops))
	copy(ordered, stops)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Sequence < ordered[j].Sequence })
	return ordered
}
