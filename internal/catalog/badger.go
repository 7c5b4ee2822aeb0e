// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

// Key prefixes for BadgerDB storage
const (
	venueKeyPrefix       = "venue:"
	venueRegionKeyPrefix = "venue_region:"
)

// BadgerSource implements Source using BadgerDB for durable storage.
// The ingestion workflow writes venues through Put; the generation
// pipeline only reads.
type BadgerSource struct {
	db *badger.DB
}

// NewBadgerSource creates a BadgerDB-backed venue source.
func NewBadgerSource(db *badger.DB) *BadgerSource {
	return &BadgerSource{db: db}
}

func venueKey(id int64) []byte {
	return []byte(venueKeyPrefix + strconv.FormatInt(id, 10))
}

func venueRegionKey(regionID string, id int64) []byte {
	return []byte(venueRegionKeyPrefix + regionID + ":" + strconv.FormatInt(id, 10))
}

// Put inserts or replaces a venue along with its region index entry.
func (s *BadgerSource) Put(ctx context.Context, v models.Venue) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal venue: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(venueKey(v.ID), data); err != nil {
			return fmt.Errorf("set venue: %w", err)
		}
		if err := txn.Set(venueRegionKey(v.RegionID, v.ID), nil); err != nil {
			return fmt.Errorf("set region index: %w", err)
		}
		return nil
	})
}

// VenueByID implements Source.
func (s *BadgerSource) VenueByID(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(venueKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return models.ErrVenueNotFound
		}
		if err != nil {
			return fmt.Errorf("get venue: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &venue)
		})
	})
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// VenuesByIDs implements Source.
func (s *BadgerSource) VenuesByIDs(ctx context.Context, ids []int64) ([]models.Venue, error) {
	out := make([]models.Venue, 0, len(ids))

	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			item, err := txn.Get(venueKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return models.ErrVenueNotFound
			}
			if err != nil {
				return fmt.Errorf("get venue %d: %w", id, err)
			}
			var venue models.Venue
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &venue)
			}); err != nil {
				return err
			}
			out = append(out, venue)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VenuesByRegion implements Source. It walks the region index and
// resolves each venue record in the same transaction.
func (s *BadgerSource) VenuesByRegion(ctx context.Context, regionID string) ([]models.Venue, error) {
	var out []models.Venue

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(venueRegionKeyPrefix + regionID + ":")
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			idStr := string(it.Item().Key()[len(prefix):])
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return fmt.Errorf("corrupt region index key %q: %w", it.Item().Key(), err)
			}

			item, err := txn.Get(venueKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				// Index entry without a venue record; skip.
				continue
			}
			if err != nil {
				return fmt.Errorf("get venue %d: %w", id, err)
			}

			var venue models.Venue
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &venue)
			}); err != nil {
				return err
			}
			out = append(out, venue)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
