// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]models.Itinerary
	byShare map[string]string
}

// NewMemoryStore creates an empty in-memory itinerary store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]models.Itinerary),
		byShare: make(map[string]string),
	}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, it *models.Itinerary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byID[it.ID]; ok && prev.ShareID != "" && prev.ShareID != it.ShareID {
		delete(s.byShare, prev.ShareID)
	}
	s.byID[it.ID] = *it
	if it.ShareID != "" {
		s.byShare[it.ShareID] = it.ID
	}
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*models.Itinerary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.byID[id]
	if !ok {
		return nil, models.ErrItineraryNotFound
	}
	return &it, nil
}

// GetByShareID implements Store.
func (s *MemoryStore) GetByShareID(ctx context.Context, shareID string) (*models.Itinerary, error) {
	s.mu.RLock()
	id, ok := s.byShare[shareID]
	s.mu.RUnlock()
	if !ok {
		return nil, models.ErrItineraryNotFound
	}
	return s.Get(ctx, id)
}

// ListByOwner implements Store.
func (s *MemoryStore) ListByOwner(_ context.Context, ownerID string, status models.ItineraryStatus) ([]models.Itinerary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Itinerary
	for _, it := range s.byID {
		if it.OwnerID != ownerID {
			continue
		}
		if status != "" && it.Status != status {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// CountSavedByOwner implements Store.
func (s *MemoryStore) CountSavedByOwner(_ context.Context, ownerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, it := range s.byID {
		if it.OwnerID == ownerID && it.Status != models.StatusDraft {
			count++
		}
	}
	return count, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.byID[id]
	if !ok {
		return models.ErrItineraryNotFound
	}
	if it.ShareID != "" {
		delete(s.byShare, it.ShareID)
	}
	delete(s.byID, id)
	return nil
}
