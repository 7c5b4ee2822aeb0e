// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzangoobrother/ddalkkak-date/internal/catalog"
	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

func TestAssembleProposal(t *testing.T) {
	region, err := catalog.RegionByID("mapo")
	require.NoError(t, err)

	venues := map[int64]models.Venue{
		1: cafeVenue(1, 9),
		2: cafeVenue(2, 8),
	}
	proposal := twoStopProposal(1, 2, 40000)
	proposal.DurationMinutes = 180
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	it, err := AssembleProposal(proposal, region, models.ActivityCafe, venues, now)
	require.NoError(t, err)

	assert.True(t, len(it.ID) > len("course-"))
	assert.Equal(t, models.StatusDraft, it.Status)
	assert.Equal(t, "마포·홍대", it.RegionName)
	assert.Equal(t, 40000, it.TotalBudget)
	assert.Equal(t, now, it.CreatedAt)
	require.Len(t, it.Stops, 2)
	assert.Equal(t, "카페 1", it.Stops[0].Name)
	assert.NotNil(t, it.Stops[0].Rating)
	assert.Len(t, it.Stops[0].ImageURLs, 3)
	assert.Contains(t, it.Stops[0].ImageURLs[0], "cafe,coffee,dessert")
}

func TestAssembleProposalUnknownVenue(t *testing.T) {
	region, err := catalog.RegionByID("mapo")
	require.NoError(t, err)

	_, err = AssembleProposal(twoStopProposal(1, 2, 40000), region, models.ActivityCafe,
		map[int64]models.Venue{1: cafeVenue(1, 9)}, time.Now())
	assert.ErrorIs(t, err, models.ErrVenueNotFound)
}

func TestImageQueryByCategory(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"음식점 > 카페", "cafe,coffee,dessert"},
		{"음식점 > 한식", "korean,food,restaurant"},
		{"음식점 > 양식 > 이탈리안", "italian,pasta,restaurant"},
		{"술집 > 바", "bar,pub,drinks"},
		{"문화,예술 > 박물관", "gallery,museum,art"},
		{"", "restaurant,cafe,seoul"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, imageQuery(tt.category), tt.category)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	region, err := catalog.RegionByID("mapo")
	require.NoError(t, err)

	noPriceInfo := cafeVenue(2, 8)
	noPriceInfo.PriceRange = ""

	prompt, err := BuildUserPrompt(&Request{
		Region:     region,
		Activity:   models.ActivityCafe,
		Window:     models.BudgetWindow{Min: 30000, Max: 50000},
		Candidates: []models.Venue{cafeVenue(1, 9), noPriceInfo},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "마포·홍대")
	assert.Contains(t, prompt, "30000원 - 50000원")
	assert.Contains(t, prompt, "후보 장소 목록 (2곳)")
	assert.Contains(t, prompt, `"id": 1`)
	assert.Contains(t, prompt, "정보 없음")
	assert.Contains(t, prompt, "course_name")
}

func TestExtractJSON(t *testing.T) {
	wrapped := "알겠습니다. 다음은 추천 코스입니다:\n```json\n{\"course_name\":\"코스\"}\n```"
	assert.Equal(t, `{"course_name":"코스"}`, extractJSON(wrapped))

	plain := `{"a":1}`
	assert.Equal(t, plain, extractJSON(plain))

	assert.Equal(t, "no json here", extractJSON("no json here"))
}
