// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

// Package models defines the domain types shared across the itinerary
// pipeline, the venue catalog and the persistence layer.
package models

// Venue is a place eligible to become an itinerary stop.
// Venues are collected by the ingestion workflow and are read-only to
// the generation pipeline; only the curation fields (Score, MoodTags,
// PriceRange, BestTime, Recommendation) may be back-filled later.
type Venue struct {
	// ID is the venue's primary identifier.
	ID int64 `json:"id"`

	// Name is the display name of the venue.
	Name string `json:"name"`

	// Category is the free-text category path from the map provider,
	// e.g. "음식점 > 카페" or "문화,예술 > 영화관".
	Category string `json:"category"`

	// Address is the lot-number address of the venue.
	Address string `json:"address"`

	// Latitude and Longitude are WGS84 coordinates.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// RegionID references the region the venue belongs to.
	RegionID string `json:"region_id"`

	// Rating is the average user rating. Nil when the map provider
	// returned no rating; such venues never pass candidate selection.
	Rating *float64 `json:"rating,omitempty"`

	// ReviewCount is the number of user reviews. Nil when unknown.
	ReviewCount *int `json:"review_count,omitempty"`

	// PriceRange is the free-text per-person price descriptor,
	// e.g. "10,000-20,000원" or "30,000원 이상". Empty when unknown.
	PriceRange string `json:"price_range,omitempty"`

	// Score is the curation score (1-10) assigned by the curation
	// workflow. Nil when the venue has not been curated yet.
	Score *int `json:"score,omitempty"`

	// MoodTags are up to three curated mood hashtags.
	MoodTags []string `json:"mood_tags,omitempty"`

	// BestTime is the curated recommended time of day.
	BestTime string `json:"best_time,omitempty"`

	// Recommendation is the curated one-line recommendation reason.
	Recommendation string `json:"recommendation,omitempty"`
}

// ScoreOrZero returns the curation score, treating an uncurated venue
// as score 0 for ranking purposes.
func (v *Venue) ScoreOrZero() int {
	if v.Score == nil {
		return 0
	}
	return *v.Score
}

// Region is one entry of the closed set of supported regions.
type Region struct {
	// ID is the region identifier, e.g. "hongdae".
	ID string `json:"id"`

	// Name is the display name, e.g. "마포·홍대".
	Name string `json:"name"`

	// Emoji is the display emoji for region selection.
	Emoji string `json:"emoji,omitempty"`

	// Tagline is the short marketing line for the region.
	Tagline string `json:"tagline,omitempty"`
}
