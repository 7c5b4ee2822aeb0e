// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

const placeImageCount = 3

// NewItineraryID mints a short itinerary identifier.
func NewItineraryID() string {
	return "course-" + uuid.NewString()[:8]
}

// AssembleProposal binds an accepted proposal to its venues and maps
// it into a draft itinerary with presentational metadata filled in.
// Every stop's venue must be present in venuesByID; the validator
// guarantees that for provider proposals and the template resolver for
// synthesized ones.
func AssembleProposal(
	proposal *models.Proposal,
	region models.Region,
	activity models.ActivityType,
	venuesByID map[int64]models.Venue,
	now time.Time,
) (*models.Itinerary, error) {
	stops := make([]models.Stop, 0, len(proposal.Stops))
	for _, ps := range proposal.Stops {
		venue, ok := venuesByID[ps.VenueID]
		if !ok {
			return nil, fmt.Errorf("%w: %d", models.ErrVenueNotFound, ps.VenueID)
		}
		stops = append(stops, bindStop(ps, venue))
	}

	return &models.Itinerary{
		ID:              NewItineraryID(),
		Name:            proposal.Name,
		RegionID:        region.ID,
		RegionName:      region.Name,
		ActivityType:    activity,
		Description:     proposal.Description,
		DurationMinutes: proposal.DurationMinutes,
		TotalBudget:     proposal.TotalBudget,
		Stops:           stops,
		Status:          models.StatusDraft,
		CreatedAt:       now,
	}, nil
}

// bindStop carries venue attributes onto a proposal stop.
func bindStop(ps models.ProposalStop, venue models.Venue) models.Stop {
	return models.Stop{
		VenueID:         venue.ID,
		Sequence:        ps.Sequence,
		DurationMinutes: ps.DurationMinutes,
		Cost:            ps.Cost,
		Note:            ps.Note,
		TransitHint:     ps.TransitHint,
		Name:            venue.Name,
		Category:        venue.Category,
		Address:         venue.Address,
		Latitude:        venue.Latitude,
		Longitude:       venue.Longitude,
		Rating:          venue.Rating,
		Reviews:         venue.ReviewCount,
		ImageURLs:       PlaceImageURLs(venue.Category),
	}
}

// PlaceImageURLs generates stock image URLs for a venue category until
// a real image source is wired in.
func PlaceImageURLs(category string) []string {
	query := imageQuery(category)
	urls := make([]string, 0, placeImageCount)
	for i := 1; i <= placeImageCount; i++ {
		urls = append(urls, fmt.Sprintf("https://source.unsplash.com/800x600/?%s&sig=%d", query, i))
	}
	return urls
}

// imageQuery maps a category to an image search query.
func imageQuery(category string) string {
	lower := strings.ToLower(category)
	switch {
	case strings.Contains(lower, "카페"), strings.Contains(lower, "커피"):
		return "cafe,coffee,dessert"
	case strings.Contains(lower, "한식"):
		return "korean,food,restaurant"
	case strings.Contains(lower, "양식"), strings.Contains(lower, "이탈리안"):
		return "italian,pasta,restaurant"
	case strings.Contains(lower, "일식"):
		return "japanese,sushi,restaurant"
	case strings.Contains(lower, "중식"):
		return "chinese,food,restaurant"
	case strings.Contains(lower, "음식점"), strings.Contains(lower, "레스토랑"):
		return "restaurant,food,dining"
	case strings.Contains(lower, "바"), strings.Contains(lower, "펍"):
		return "bar,pub,drinks"
	case strings.Contains(lower, "갤러리"), strings.Contains(lower, "박물관"):
		return "gallery,museum,art"
	case strings.Contains(lower, "공원"), strings.Contains(lower, "야경"):
		return "park,night,view,seoul"
	default:
		return "restaurant,cafe,seoul"
	}
}
