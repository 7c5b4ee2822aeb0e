// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package catalog

import (
	"context"
	"sync"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

// MemorySource is an in-memory Source for tests and local development.
type MemorySource struct {
	mu       sync.RWMutex
	byID     map[int64]models.Venue
	byRegion map[string][]int64
}

// NewMemorySource builds a MemorySource pre-loaded with the given
// venues.
func NewMemorySource(venues ...models.Venue) *MemorySource {
	s := &MemorySource{
		byID:     make(map[int64]models.Venue),
		byRegion: make(map[string][]int64),
	}
	for _, v := range venues {
		s.Put(v)
	}
	return s
}

// Put inserts or replaces a venue.
func (s *MemorySource) Put(v models.Venue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, existed := s.byID[v.ID]
	if !existed || old.RegionID != v.RegionID {
		if existed {
			ids := s.byRegion[old.RegionID]
			for i, id := range ids {
				if id == v.ID {
					s.byRegion[old.RegionID] = append(ids[:i], ids[i+1:]...)
					break
				}
			}
		}
		s.byRegion[v.RegionID] = append(s.byRegion[v.RegionID], v.ID)
	}
	s.byID[v.ID] = v
}

// VenuesByRegion implements Source.
func (s *MemorySource) VenuesByRegion(_ context.Context, regionID string) ([]models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byRegion[regionID]
	out := make([]models.Venue, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// VenueByID implements Source.
func (s *MemorySource) VenueByID(_ context.Context, id int64) (*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byID[id]
	if !ok {
		return nil, models.ErrVenueNotFound
	}
	return &v, nil
}

// VenuesByIDs implements Source.
func (s *MemorySource) VenuesByIDs(ctx context.Context, ids []int64) ([]models.Venue, error) {
	out := make([]models.Venue, 0, len(ids))
	for _, id := range ids {
		v, err := s.VenueByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}
