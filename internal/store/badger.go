// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/zzangoobrother/ddalkkak-date/internal/metrics"
	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

// Key prefixes for BadgerDB storage
const (
	itineraryKeyPrefix = "itinerary:"
	ownerKeyPrefix     = "itinerary_owner:"
	shareKeyPrefix     = "itinerary_share:"
)

// BadgerStore implements Store using BadgerDB for durable storage.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a BadgerDB-backed itinerary store.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func itineraryKey(id string) []byte {
	return []byte(itineraryKeyPrefix + id)
}

func ownerKey(ownerID, id string) []byte {
	return []byte(ownerKeyPrefix + ownerID + ":" + id)
}

func shareKey(shareID string) []byte {
	return []byte(shareKeyPrefix + shareID)
}

// Save implements Store. The previous record, if any, is read inside
// the same transaction so owner and share index entries can be moved
// atomically with the record update.
func (s *BadgerStore) Save(ctx context.Context, it *models.Itinerary) error {
	start := time.Now()

	data, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("marshal itinerary: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		var prev models.Itinerary
		item, err := txn.Get(itineraryKey(it.ID))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			// Fresh record.
		case err != nil:
			return fmt.Errorf("get previous: %w", err)
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &prev)
			}); err != nil {
				return err
			}
			if prev.OwnerID != "" && prev.OwnerID != it.OwnerID {
				if err := txn.Delete(ownerKey(prev.OwnerID, it.ID)); err != nil {
					return fmt.Errorf("delete stale owner index: %w", err)
				}
			}
			if prev.ShareID != "" && prev.ShareID != it.ShareID {
				if err := txn.Delete(shareKey(prev.ShareID)); err != nil {
					return fmt.Errorf("delete stale share index: %w", err)
				}
			}
		}

		if err := txn.Set(itineraryKey(it.ID), data); err != nil {
			return fmt.Errorf("set itinerary: %w", err)
		}
		if it.OwnerID != "" {
			if err := txn.Set(ownerKey(it.OwnerID, it.ID), nil); err != nil {
				return fmt.Errorf("set owner index: %w", err)
			}
		}
		if it.ShareID != "" {
			if err := txn.Set(shareKey(it.ShareID), []byte(it.ID)); err != nil {
				return fmt.Errorf("set share index: %w", err)
			}
		}
		return nil
	})

	metrics.RecordStoreOperation("save", time.Since(start), err)
	return err
}

// Get implements Store.
func (s *BadgerStore) Get(ctx context.Context, id string) (*models.Itinerary, error) {
	start := time.Now()
	var it models.Itinerary

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(itineraryKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return models.ErrItineraryNotFound
		}
		if err != nil {
			return fmt.Errorf("get itinerary: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &it)
		})
	})

	metrics.RecordStoreOperation("get", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByShareID implements Store.
func (s *BadgerStore) GetByShareID(ctx context.Context, shareID string) (*models.Itinerary, error) {
	var id string

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(shareKey(shareID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return models.ErrItineraryNotFound
		}
		if err != nil {
			return fmt.Errorf("get share index: %w", err)
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// ListByOwner implements Store.
func (s *BadgerStore) ListByOwner(ctx context.Context, ownerID string, status models.ItineraryStatus) ([]models.Itinerary, error) {
	start := time.Now()
	var out []models.Itinerary

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(ownerKeyPrefix + ownerID + ":")
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := string(it.Item().Key()[len(prefix):])

			item, err := txn.Get(itineraryKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get itinerary %s: %w", id, err)
			}

			var rec models.Itinerary
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			if status != "" && rec.Status != status {
				continue
			}
			out = append(out, rec)
		}
		return nil
	})

	metrics.RecordStoreOperation("list", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// CountSavedByOwner implements Store.
func (s *BadgerStore) CountSavedByOwner(ctx context.Context, ownerID string) (int, error) {
	all, err := s.ListByOwner(ctx, ownerID, "")
	if err != nil {
		return 0, err
	}
	count := 0
	for _, rec := range all {
		if rec.Status != models.StatusDraft {
			count++
		}
	}
	return count, nil
}

// Delete implements Store.
func (s *BadgerStore) Delete(ctx context.Context, id string) error {
	start := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(itineraryKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return models.ErrItineraryNotFound
		}
		if err != nil {
			return fmt.Errorf("get itinerary: %w", err)
		}

		var rec models.Itinerary
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return err
		}

		if rec.OwnerID != "" {
			if err := txn.Delete(ownerKey(rec.OwnerID, id)); err != nil {
				return fmt.Errorf("delete owner index: %w", err)
			}
		}
		if rec.ShareID != "" {
			if err := txn.Delete(shareKey(rec.ShareID)); err != nil {
				return fmt.Errorf("delete share index: %w", err)
			}
		}
		return txn.Delete(itineraryKey(id))
	})

	metrics.RecordStoreOperation("delete", time.Since(start), err)
	return err
}
