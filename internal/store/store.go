// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

// Package store persists itineraries.
//
// Two implementations exist: a BadgerDB-backed store for production
// and an in-memory store for tests. Both serialize writes so that
// lifecycle transitions on the same itinerary never interleave.
package store

import (
	"context"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

// Store persists itineraries.
type Store interface {
	// Save inserts or replaces an itinerary, keeping the owner and
	// share indexes in sync.
	Save(ctx context.Context, it *models.Itinerary) error

	// Get returns an itinerary or models.ErrItineraryNotFound.
	Get(ctx context.Context, id string) (*models.Itinerary, error)

	// GetByShareID resolves a share id or returns
	// models.ErrItineraryNotFound.
	GetByShareID(ctx context.Context, shareID string) (*models.Itinerary, error)

	// ListByOwner returns the itineraries owned by ownerID, newest
	// first. A non-empty status narrows the listing.
	ListByOwner(ctx context.Context, ownerID string, status models.ItineraryStatus) ([]models.Itinerary, error)

	// CountSavedByOwner counts the owner's non-draft itineraries, used
	// to enforce the per-user saved limit.
	CountSavedByOwner(ctx context.Context, ownerID string) (int, error)

	// Delete removes an itinerary and its index entries. Deleting an
	// unknown id returns models.ErrItineraryNotFound.
	Delete(ctx context.Context, id string) error
}
