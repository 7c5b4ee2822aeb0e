// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzangoobrother/ddalkkak-date/internal/catalog"
	"github.com/zzangoobrother/ddalkkak-date/internal/models"
	"github.com/zzangoobrother/ddalkkak-date/internal/store"
)

func mapoVenue(id int64, score int) models.Venue {
	v := cafeVenue(id, score)
	v.Latitude = 37.5563 + float64(id)*0.001
	v.Longitude = 126.9236
	v.PriceRange = "20,000-40,000원"
	return v
}

// newTestService wires the pipeline with failing providers so every
// generation lands on the template path, which is deterministic.
func newTestService(t *testing.T, venues ...models.Venue) *Service {
	t.Helper()

	table, err := LoadTemplates("")
	require.NoError(t, err)

	orch := NewOrchestrator([]Provider{
		&stubProvider{name: "openai", err: errors.New("unavailable")},
		&stubProvider{name: "anthropic", err: errors.New("unavailable")},
	}, table)

	svc := NewService(catalog.NewMemorySource(venues...), store.NewMemoryStore(), orch)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC) }
	return svc
}

func generateDraft(t *testing.T, svc *Service) *models.Itinerary {
	t.Helper()
	it, err := svc.Generate(context.Background(), GenerateParams{
		RegionID:     "mapo",
		ActivityType: "cafe",
		BudgetPreset: "30k-50k",
	})
	require.NoError(t, err)
	return it
}

func TestGenerateProducesPersistedDraft(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8), mapoVenue(3, 7))
	ctx := context.Background()

	it := generateDraft(t, svc)

	assert.Equal(t, models.StatusDraft, it.Status)
	assert.Empty(t, it.OwnerID)
	assert.Equal(t, "mapo", it.RegionID)
	assert.Equal(t, "마포·홍대", it.RegionName)
	require.Len(t, it.Stops, 2)
	// Highest-scored venues are bound first.
	assert.Equal(t, int64(1), it.Stops[0].VenueID)
	assert.Equal(t, "카페 1", it.Stops[0].Name)
	assert.Len(t, it.Stops[0].ImageURLs, 3)

	stored, err := svc.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.ID, stored.ID)
}

func TestGenerateRejectsUnknownIdentifiers(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9))
	ctx := context.Background()

	_, err := svc.Generate(ctx, GenerateParams{RegionID: "busan", ActivityType: "cafe", BudgetPreset: "30k-50k"})
	assert.ErrorIs(t, err, models.ErrUnknownRegion)

	_, err = svc.Generate(ctx, GenerateParams{RegionID: "mapo", ActivityType: "picnic", BudgetPreset: "30k-50k"})
	assert.ErrorIs(t, err, models.ErrUnknownActivityType)

	_, err = svc.Generate(ctx, GenerateParams{RegionID: "mapo", ActivityType: "cafe", BudgetPreset: "luxury"})
	assert.ErrorIs(t, err, models.ErrUnknownBudgetPreset)
}

func TestGenerateDegradesWithEmptyPool(t *testing.T) {
	svc := newTestService(t)

	it := generateDraft(t, svc)
	assert.Empty(t, it.Stops)
	assert.Zero(t, it.TotalBudget)
}

func TestSaveForUserClaimsDraft(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8))
	ctx := context.Background()

	it := generateDraft(t, svc)
	saved, err := svc.SaveForUser(ctx, it.ID, "user-a")
	require.NoError(t, err)

	assert.Equal(t, it.ID, saved.ID)
	assert.Equal(t, models.StatusSaved, saved.Status)
	assert.Equal(t, "user-a", saved.OwnerID)
}

func TestSaveForUserClonesForeignItinerary(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8))
	ctx := context.Background()

	it := generateDraft(t, svc)
	_, err := svc.SaveForUser(ctx, it.ID, "user-a")
	require.NoError(t, err)

	clone, err := svc.SaveForUser(ctx, it.ID, "user-b")
	require.NoError(t, err)

	assert.NotEqual(t, it.ID, clone.ID)
	assert.Equal(t, "user-b", clone.OwnerID)
	assert.Equal(t, models.StatusSaved, clone.Status)

	// The original owner's copy is preserved.
	original, err := svc.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-a", original.OwnerID)
}

func TestConfirm(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8))
	ctx := context.Background()

	t.Run("unowned draft is claimed and confirmed", func(t *testing.T) {
		it := generateDraft(t, svc)
		confirmed, err := svc.Confirm(ctx, it.ID, "user-a")
		require.NoError(t, err)

		assert.Equal(t, models.StatusConfirmed, confirmed.Status)
		assert.Equal(t, "user-a", confirmed.OwnerID)
		require.NotNil(t, confirmed.ConfirmedAt)
	})

	t.Run("foreign itinerary is cloned on confirm", func(t *testing.T) {
		it := generateDraft(t, svc)
		_, err := svc.SaveForUser(ctx, it.ID, "user-a")
		require.NoError(t, err)

		clone, err := svc.Confirm(ctx, it.ID, "user-b")
		require.NoError(t, err)
		assert.NotEqual(t, it.ID, clone.ID)
		assert.Equal(t, models.StatusConfirmed, clone.Status)
		require.NotNil(t, clone.ConfirmedAt)
	})
}

func TestEditReplacesStopsWholesale(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8), mapoVenue(3, 7))
	ctx := context.Background()

	it := generateDraft(t, svc)
	budget := it.TotalBudget

	edits := []EditStop{
		{VenueID: 3, Sequence: 1, DurationMinutes: 60, Cost: budget / 2, Note: "브런치"},
		{VenueID: 1, Sequence: 2, DurationMinutes: 90, Cost: budget / 2, Note: "커피"},
	}
	updated, err := svc.Edit(ctx, it.ID, edits)
	require.NoError(t, err)

	require.Len(t, updated.Stops, 2)
	assert.Equal(t, int64(3), updated.Stops[0].VenueID)
	assert.Equal(t, "카페 3", updated.Stops[0].Name)
	assert.Equal(t, (budget/2)*2, updated.TotalBudget)
	assert.Equal(t, 150, updated.DurationMinutes)
}

func TestEditRejectionLeavesItineraryUnmodified(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8))
	ctx := context.Background()

	it := generateDraft(t, svc)

	_, err := svc.Edit(ctx, it.ID, []EditStop{
		{VenueID: 1, Sequence: 1, Cost: it.TotalBudget * 2},
		{VenueID: 2, Sequence: 2, Cost: it.TotalBudget},
	})
	require.ErrorIs(t, err, ErrEditBudgetDrift)

	stored, err := svc.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.TotalBudget, stored.TotalBudget)
	assert.Equal(t, len(it.Stops), len(stored.Stops))
}

func TestCopyAppendsSuffixAndResetsState(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8))
	ctx := context.Background()

	it := generateDraft(t, svc)
	confirmed, err := svc.Confirm(ctx, it.ID, "user-a")
	require.NoError(t, err)
	require.NoError(t, svc.Rate(ctx, confirmed.ID, "user-a", 4.5))

	copied, err := svc.Copy(ctx, confirmed.ID, "user-a")
	require.NoError(t, err)

	assert.Equal(t, confirmed.Name+" (복사)", copied.Name)
	assert.Equal(t, models.StatusSaved, copied.Status)
	assert.Nil(t, copied.Rating)
	assert.Empty(t, copied.ShareID)
	assert.Nil(t, copied.ConfirmedAt)
}

func TestRatePolicy(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8))
	ctx := context.Background()

	it := generateDraft(t, svc)
	saved, err := svc.SaveForUser(ctx, it.ID, "user-a")
	require.NoError(t, err)

	// Not confirmed yet.
	assert.ErrorIs(t, svc.Rate(ctx, saved.ID, "user-a", 5), models.ErrNotConfirmed)

	confirmed, err := svc.Confirm(ctx, saved.ID, "user-a")
	require.NoError(t, err)

	// Only the owner may rate.
	assert.ErrorIs(t, svc.Rate(ctx, confirmed.ID, "user-b", 5), models.ErrNotOwner)

	require.NoError(t, svc.Rate(ctx, confirmed.ID, "user-a", 4.5))
	stored, err := svc.Get(ctx, confirmed.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Rating)
	assert.InDelta(t, 4.5, *stored.Rating, 0.001)
}

func TestShareIsIdempotent(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8))
	ctx := context.Background()

	it := generateDraft(t, svc)

	first, err := svc.Share(ctx, it.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.Share(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	shared, err := svc.GetByShareID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, it.ID, shared.ID)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8))
	ctx := context.Background()

	it := generateDraft(t, svc)
	saved, err := svc.SaveForUser(ctx, it.ID, "user-a")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, saved.ID, "user-b"), models.ErrNotOwner)

	require.NoError(t, svc.Delete(ctx, saved.ID, "user-a"))
	_, err = svc.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, models.ErrItineraryNotFound)
}

func TestSavedLimit(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8))
	ctx := context.Background()

	// Fill the store with the maximum number of saved itineraries.
	for i := 0; i < maxSavedItineraries; i++ {
		it := generateDraft(t, svc)
		_, err := svc.SaveForUser(ctx, it.ID, "user-a")
		require.NoError(t, err)
	}

	extra := generateDraft(t, svc)
	_, err := svc.SaveForUser(ctx, extra.ID, "user-a")
	assert.ErrorIs(t, err, models.ErrSavedLimitExceeded)

	_, err = svc.Copy(ctx, extra.ID, "user-a")
	assert.ErrorIs(t, err, models.ErrSavedLimitExceeded)

	// Another user is unaffected.
	_, err = svc.SaveForUser(ctx, extra.ID, "user-b")
	require.NoError(t, err)
}

func TestListByOwner(t *testing.T) {
	svc := newTestService(t, mapoVenue(1, 9), mapoVenue(2, 8))
	ctx := context.Background()

	first := generateDraft(t, svc)
	_, err := svc.SaveForUser(ctx, first.ID, "user-a")
	require.NoError(t, err)

	second := generateDraft(t, svc)
	_, err = svc.Confirm(ctx, second.ID, "user-a")
	require.NoError(t, err)

	all, err := svc.ListByOwner(ctx, "user-a", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	confirmed, err := svc.ListByOwner(ctx, "user-a", models.StatusConfirmed)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, second.ID, confirmed[0].ID)
}
