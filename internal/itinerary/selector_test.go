// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

func ratingPtr(f float64) *float64 { return &f }
func reviewsPtr(i int) *int        { return &i }
func scorePtr(i int) *int          { return &i }

func cafeVenue(id int64, score int) models.Venue {
	return models.Venue{
		ID:          id,
		Name:        fmt.Sprintf("카페 %d", id),
		Category:    "음식점 > 카페",
		RegionID:    "mapo",
		Rating:      ratingPtr(4.5),
		ReviewCount: reviewsPtr(200),
		Score:       scorePtr(score),
	}
}

func TestSelectCandidatesExcludesMissingRatingOrReviews(t *testing.T) {
	window := models.BudgetWindow{Min: 0, Max: 50000}

	noRating := cafeVenue(1, 9)
	noRating.Rating = nil
	noReviews := cafeVenue(2, 9)
	noReviews.ReviewCount = nil
	lowRating := cafeVenue(3, 9)
	lowRating.Rating = ratingPtr(3.9)
	fewReviews := cafeVenue(4, 9)
	fewReviews.ReviewCount = reviewsPtr(49)
	good := cafeVenue(5, 5)

	got := SelectCandidates(
		[]models.Venue{noRating, noReviews, lowRating, fewReviews, good},
		models.ActivityCafe, window)

	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].ID)
}

func TestSelectCandidatesCategoryFilter(t *testing.T) {
	window := models.BudgetWindow{Min: 0, Max: 50000}

	cafe := cafeVenue(1, 5)
	gallery := cafeVenue(2, 5)
	gallery.Category = "문화,예술 > 갤러리"
	uncategorized := cafeVenue(3, 5)
	uncategorized.Category = ""

	cafes := SelectCandidates([]models.Venue{cafe, gallery, uncategorized}, models.ActivityCafe, window)
	require.Len(t, cafes, 1)
	assert.Equal(t, int64(1), cafes[0].ID)

	culture := SelectCandidates([]models.Venue{cafe, gallery, uncategorized}, models.ActivityCulture, window)
	require.Len(t, culture, 1)
	assert.Equal(t, int64(2), culture[0].ID)

	// Special occasions accept every category, including empty ones.
	special := SelectCandidates([]models.Venue{cafe, gallery, uncategorized}, models.ActivitySpecial, window)
	assert.Len(t, special, 3)
}

func TestSelectCandidatesBudgetOverlap(t *testing.T) {
	window := models.BudgetWindow{Min: 30000, Max: 50000}
	// Widened window is [24000, 60000].

	within := cafeVenue(1, 5)
	within.PriceRange = "20,000-30,000원"
	tooExpensive := cafeVenue(2, 5)
	tooExpensive.PriceRange = "70,000원 이상"
	noInfo := cafeVenue(3, 5)
	noInfo.PriceRange = ""
	unparseable := cafeVenue(4, 5)
	unparseable.PriceRange = "적당한 가격"

	got := SelectCandidates(
		[]models.Venue{within, tooExpensive, noInfo, unparseable},
		models.ActivityCafe, window)

	ids := make([]int64, len(got))
	for i, v := range got {
		ids[i] = v.ID
	}
	assert.ElementsMatch(t, []int64{1, 3, 4}, ids)
}

func TestSelectCandidatesRankingAndTruncation(t *testing.T) {
	window := models.BudgetWindow{Min: 0, Max: 50000}

	venues := make([]models.Venue, 0, 25)
	for i := int64(1); i <= 25; i++ {
		venues = append(venues, cafeVenue(i, int(i%10)))
	}
	uncurated := cafeVenue(26, 0)
	uncurated.Score = nil
	venues = append(venues, uncurated)

	got := SelectCandidates(venues, models.ActivityCafe, window)

	require.Len(t, got, maxCandidates)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].ScoreOrZero(), got[i].ScoreOrZero())
	}
}

func TestSelectCandidatesEmptyPool(t *testing.T) {
	got := SelectCandidates(nil, models.ActivityCafe, models.BudgetWindow{Min: 0, Max: 50000})
	assert.Empty(t, got)
}
