// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

// Hongdae-area coordinates, all within walking distance.
func nearbyStop(seq, cost int) models.Stop {
	return models.Stop{
		VenueID:         int64(seq),
		Sequence:        seq,
		DurationMinutes: 60,
		Cost:            cost,
		Name:            "장소",
		Latitude:        37.5563,
		Longitude:       126.9236,
	}
}

func originalItinerary(budget int) *models.Itinerary {
	return &models.Itinerary{
		ID:          "it-1",
		TotalBudget: budget,
		Status:      models.StatusSaved,
	}
}

func TestValidateEditStopCount(t *testing.T) {
	it := originalItinerary(60000)

	err := ValidateEdit(it, []models.Stop{nearbyStop(1, 60000)})
	assert.ErrorIs(t, err, ErrEditStopCount)

	six := make([]models.Stop, 6)
	for i := range six {
		six[i] = nearbyStop(i+1, 10000)
	}
	assert.ErrorIs(t, ValidateEdit(it, six), ErrEditStopCount)

	five := six[:5]
	// 5 stops x 12000 = 60000, within bounds.
	for i := range five {
		five[i].Cost = 12000
	}
	assert.NoError(t, ValidateEdit(it, five))
}

func TestValidateEditSequencePermutation(t *testing.T) {
	it := originalItinerary(60000)

	// Duplicate sequence numbers are rejected.
	dupA := nearbyStop(1, 30000)
	dupA.Sequence = 7
	dupB := nearbyStop(2, 30000)
	dupB.Sequence = 7
	assert.ErrorIs(t, ValidateEdit(it, []models.Stop{dupA, dupB}), ErrEditSequence)

	// Gaps are rejected too.
	gapped := []models.Stop{nearbyStop(1, 30000), nearbyStop(3, 30000)}
	assert.ErrorIs(t, ValidateEdit(it, gapped), ErrEditSequence)

	// Submission order does not matter as long as the sequences form
	// a contiguous 1-based run.
	shuffled := []models.Stop{nearbyStop(2, 30000), nearbyStop(1, 30000)}
	assert.NoError(t, ValidateEdit(it, shuffled))
}

func TestValidateEditDistanceFollowsVisitOrder(t *testing.T) {
	it := originalItinerary(60000)

	// Visit order 1 → 2 → 3 with ~8 km hops, submitted as 1, 3, 2.
	// Submission-order adjacency would pair stops 1 and 3 (~16 km);
	// only the sequence-ordered walk accepts this list.
	first := nearbyStop(1, 20000)
	second := nearbyStop(2, 20000)
	second.Latitude = first.Latitude + 0.0719
	third := nearbyStop(3, 20000)
	third.Latitude = first.Latitude + 0.1438

	assert.NoError(t, ValidateEdit(it, []models.Stop{first, third, second}))
}

func TestValidateEditBudgetDrift(t *testing.T) {
	it := originalItinerary(60000)

	// 80000 > 60000*1.2 = 72000: rejected with the computed bounds.
	err := ValidateEdit(it, []models.Stop{nearbyStop(1, 40000), nearbyStop(2, 40000)})
	require.ErrorIs(t, err, ErrEditBudgetDrift)
	assert.Contains(t, err.Error(), "48000")
	assert.Contains(t, err.Error(), "72000")

	// 45000 < 48000: under the lower bound.
	assert.ErrorIs(t,
		ValidateEdit(it, []models.Stop{nearbyStop(1, 20000), nearbyStop(2, 25000)}),
		ErrEditBudgetDrift)

	// Exactly at the bounds passes.
	assert.NoError(t, ValidateEdit(it, []models.Stop{nearbyStop(1, 36000), nearbyStop(2, 36000)}))
	assert.NoError(t, ValidateEdit(it, []models.Stop{nearbyStop(1, 24000), nearbyStop(2, 24000)}))
}

func TestValidateEditDistanceBound(t *testing.T) {
	it := originalItinerary(60000)

	near := nearbyStop(1, 30000)
	near.Name = "첫번째 장소"

	// ~12 km north: rejected, the pair and distance are named.
	far := nearbyStop(2, 30000)
	far.Name = "두번째 장소"
	far.Latitude = near.Latitude + 0.1079

	err := ValidateEdit(it, []models.Stop{near, far})
	require.ErrorIs(t, err, ErrEditDistance)
	assert.Contains(t, err.Error(), "첫번째 장소")
	assert.Contains(t, err.Error(), "두번째 장소")

	// ~8 km north: accepted.
	ok := far
	ok.Latitude = near.Latitude + 0.0719
	assert.NoError(t, ValidateEdit(it, []models.Stop{near, ok}))
}
