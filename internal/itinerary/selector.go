// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

// Package itinerary implements the itinerary-generation pipeline:
// candidate selection, provider-chain orchestration with validation,
// template fallback, assembly, edit validation and lifecycle
// operations.
package itinerary

import (
	"sort"
	"strings"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

const (
	// Venues below these thresholds never enter the candidate list.
	minCandidateRating  = 4.0
	minCandidateReviews = 50

	// maxCandidates caps the ranked candidate list.
	maxCandidates = 20

	// budgetOverlapLow/High widen the budget window before checking
	// price-range overlap.
	budgetOverlapLow  = 0.8
	budgetOverlapHigh = 1.2
)

// categoryKeywords maps each activity type to the category substrings
// that qualify a venue. ActivitySpecial matches every category.
var categoryKeywords = map[models.ActivityType][]string{
	models.ActivityDinner: {
		"음식점", "레스토랑", "한식", "양식", "일식", "중식", "이탈리안", "프렌치",
	},
	models.ActivityCafe: {
		"카페", "디저트", "베이커리", "커피",
	},
	models.ActivityCulture: {
		"문화", "예술", "갤러리", "박물관", "전시", "공연", "극장", "영화",
	},
	models.ActivityActivity: {
		"레저", "체험", "액티비티", "스포츠", "방탈출", "놀이",
	},
	models.ActivityNight: {
		"바", "펍", "루프탑", "전망", "야경", "공원",
	},
}

// SelectCandidates narrows a region's venue pool to a ranked candidate
// list of at most 20 entries. Pure function, no side effects. An empty
// result is a degraded-but-valid outcome the pipeline handles
// downstream.
func SelectCandidates(venues []models.Venue, activity models.ActivityType, window models.BudgetWindow) []models.Venue {
	adjustedMin := int(float64(window.Min) * budgetOverlapLow)
	adjustedMax := int(float64(window.Max) * budgetOverlapHigh)

	candidates := make([]models.Venue, 0, len(venues))
	for _, v := range venues {
		if v.Rating == nil || *v.Rating < minCandidateRating {
			continue
		}
		if v.ReviewCount == nil || *v.ReviewCount < minCandidateReviews {
			continue
		}
		if !matchesCategory(v.Category, activity) {
			continue
		}
		if !matchesBudget(v.PriceRange, adjustedMin, adjustedMax) {
			continue
		}
		candidates = append(candidates, v)
	}

	// Curation score descending; uncurated venues rank last. Stable so
	// ties keep input order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ScoreOrZero() > candidates[j].ScoreOrZero()
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// matchesCategory reports whether the venue category qualifies for the
// activity type.
func matchesCategory(category string, activity models.ActivityType) bool {
	if activity == models.ActivitySpecial {
		return true
	}
	if category == "" {
		return false
	}

	keywords, ok := categoryKeywords[activity]
	if !ok {
		return true
	}
	lower := strings.ToLower(category)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// matchesBudget reports whether the venue's price descriptor overlaps
// the widened budget window. Missing or unparseable descriptors pass.
func matchesBudget(priceRange string, adjustedMin, adjustedMax int) bool {
	if priceRange == "" {
		return true
	}
	parsed, err := ParsePriceRange(priceRange)
	if err != nil {
		return true
	}
	return parsed.Overlaps(adjustedMin, adjustedMax)
}
