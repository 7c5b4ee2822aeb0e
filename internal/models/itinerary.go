// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package models

import "time"

// ItineraryStatus is the lifecycle state of a persisted itinerary.
type ItineraryStatus string

const (
	// StatusDraft is a freshly generated itinerary with no owner.
	StatusDraft ItineraryStatus = "DRAFT"

	// StatusSaved is an itinerary claimed by a user.
	StatusSaved ItineraryStatus = "SAVED"

	// StatusConfirmed is a finalized itinerary.
	StatusConfirmed ItineraryStatus = "CONFIRMED"
)

// Proposal is an unvalidated itinerary produced by a generation
// provider or synthesized from a template. It only carries venue
// references; assembly resolves them against the catalog.
type Proposal struct {
	Name            string         `json:"course_name"`
	Description     string         `json:"description"`
	DurationMinutes int            `json:"total_duration_minutes"`
	TotalBudget     int            `json:"total_budget"`
	Stops           []ProposalStop `json:"places"`
}

// ProposalStop is one slot of a proposal.
type ProposalStop struct {
	// VenueID must reference a venue from the candidate list the
	// proposal was generated from; fabricated ids are rejected.
	VenueID int64 `json:"place_id"`

	// Sequence is the 1-based visit order.
	Sequence int `json:"sequence"`

	DurationMinutes int    `json:"duration_minutes"`
	Cost            int    `json:"estimated_cost"`
	Note            string `json:"recommended_menu"`
	Reason          string `json:"recommendation_reason,omitempty"`
	TransitHint     string `json:"transport_to_next,omitempty"`
}

// Stop is one validated, venue-bound stop of a persisted itinerary.
type Stop struct {
	VenueID         int64  `json:"venue_id"`
	Sequence        int    `json:"sequence"`
	DurationMinutes int    `json:"duration_minutes"`
	Cost            int    `json:"cost"`
	Note            string `json:"note,omitempty"`
	TransitHint     string `json:"transit_hint,omitempty"`

	// Presentational fields carried over from the venue at assembly.
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Address   string   `json:"address"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Rating    *float64 `json:"rating,omitempty"`
	Reviews   *int     `json:"review_count,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

// Itinerary is a validated, persisted ordered sequence of stops.
// Mutation happens only through the transition functions below and the
// edit path; the storage layer serializes concurrent writers per id.
type Itinerary struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	RegionID        string          `json:"region_id"`
	RegionName      string          `json:"region_name,omitempty"`
	ActivityType    ActivityType    `json:"activity_type"`
	Description     string          `json:"description,omitempty"`
	DurationMinutes int             `json:"total_duration_minutes"`
	TotalBudget     int             `json:"total_budget"`
	Stops           []Stop          `json:"stops"`
	Status          ItineraryStatus `json:"status"`
	OwnerID         string          `json:"owner_id,omitempty"`
	Rating          *float64        `json:"rating,omitempty"`
	ShareID         string          `json:"share_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	ConfirmedAt     *time.Time      `json:"confirmed_at,omitempty"`
}

// Claimed returns a copy of the itinerary owned by userID in SAVED
// state. Callers must only use this for unowned or same-owner
// itineraries; claiming another user's itinerary goes through Clone.
func (it Itinerary) Claimed(userID string) Itinerary {
	it.OwnerID = userID
	it.Status = StatusSaved
	return it
}

// Confirmed returns a copy of the itinerary in CONFIRMED state,
// claiming it for userID first when it has no owner.
func (it Itinerary) Confirmed(userID string, now time.Time) Itinerary {
	if it.OwnerID == "" {
		it.OwnerID = userID
	}
	it.Status = StatusConfirmed
	it.ConfirmedAt = &now
	return it
}

// Clone returns a copy of the itinerary under a fresh id, owned by
// userID with the given status. The original is left untouched; this
// implements clone-on-conflict for claims on foreign itineraries.
func (it Itinerary) Clone(newID, userID string, status ItineraryStatus, now time.Time) Itinerary {
	stops := make([]Stop, len(it.Stops))
	copy(stops, it.Stops)

	clone := it
	clone.ID = newID
	clone.Stops = stops
	clone.OwnerID = userID
	clone.Status = status
	clone.Rating = nil
	clone.ShareID = ""
	clone.CreatedAt = now
	clone.ConfirmedAt = nil
	if status == StatusConfirmed {
		clone.ConfirmedAt = &now
	}
	return clone
}

// WithStops returns a copy with the stop list replaced wholesale and
// the totals recomputed from the new stops.
func (it Itinerary) WithStops(stops []Stop) Itinerary {
	budget := 0
	duration := 0
	for _, s := range stops {
		budget += s.Cost
		duration += s.DurationMinutes
	}

	it.Stops = stops
	it.TotalBudget = budget
	it.DurationMinutes = duration
	return it
}
