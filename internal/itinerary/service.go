// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zzangoobrother/ddalkkak-date/internal/catalog"
	"github.com/zzangoobrother/ddalkkak-date/internal/logging"
	"github.com/zzangoobrother/ddalkkak-date/internal/metrics"
	"github.com/zzangoobrother/ddalkkak-date/internal/models"
	"github.com/zzangoobrother/ddalkkak-date/internal/store"
)

// maxSavedItineraries caps a user's non-draft itineraries.
const maxSavedItineraries = 50

// Service ties the generation pipeline to the venue catalog and the
// itinerary store, and owns the lifecycle operations.
type Service struct {
	venues catalog.Source
	store  store.Store
	orch   *Orchestrator
	log    zerolog.Logger
	now    func() time.Time
}

// NewService constructs the itinerary service.
func NewService(venues catalog.Source, st store.Store, orch *Orchestrator) *Service {
	return &Service{
		venues: venues,
		store:  st,
		orch:   orch,
		log:    logging.With().Str("component", "itinerary").Logger(),
		now:    time.Now,
	}
}

// GenerateParams are the user-supplied inputs of one generation call.
// Identifiers are resolved against their closed enumerations; unknown
// values are a caller error.
type GenerateParams struct {
	RegionID     string
	ActivityType string
	BudgetPreset string

	// CustomAmount is only consulted for the custom budget preset.
	CustomAmount int
}

// Generate runs the full pipeline: candidate selection, the provider
// chain with validation, template fallback, assembly and persistence
// of the resulting draft. It fails only on lookup errors and storage
// failures, never on provider exhaustion.
func (s *Service) Generate(ctx context.Context, params GenerateParams) (*models.Itinerary, error) {
	region, err := catalog.RegionByID(params.RegionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownRegion, params.RegionID)
	}
	activity, err := models.ParseActivityType(params.ActivityType)
	if err != nil {
		return nil, err
	}
	preset, err := models.ParseBudgetPreset(params.BudgetPreset)
	if err != nil {
		return nil, err
	}
	window, err := preset.Window(params.CustomAmount)
	if err != nil {
		return nil, err
	}

	venues, err := s.venues.VenuesByRegion(ctx, region.ID)
	if err != nil {
		return nil, fmt.Errorf("load venues: %w", err)
	}

	candidates := SelectCandidates(venues, activity, window)
	s.log.Info().
		Str("region", region.ID).
		Str("activity", activity.String()).
		Int("pool", len(venues)).
		Int("candidates", len(candidates)).
		Msg("candidate selection done")

	req := &Request{
		Region:     region,
		Activity:   activity,
		Window:     window,
		Candidates: candidates,
	}
	proposal, source := s.orch.Generate(ctx, req, NewProposalValidator(candidates, window))

	byID := make(map[int64]models.Venue, len(candidates))
	for _, v := range candidates {
		byID[v.ID] = v
	}
	it, err := AssembleProposal(proposal, region, activity, byID, s.now())
	if err != nil {
		return nil, fmt.Errorf("assemble itinerary: %w", err)
	}

	if err := s.store.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("persist itinerary: %w", err)
	}
	metrics.ItinerariesCreated.WithLabelValues(source).Inc()

	s.log.Info().
		Str("itinerary", it.ID).
		Str("source", source).
		Int("stops", len(it.Stops)).
		Int("budget", it.TotalBudget).
		Msg("itinerary generated")
	return it, nil
}

// Get returns a stored itinerary.
func (s *Service) Get(ctx context.Context, id string) (*models.Itinerary, error) {
	return s.store.Get(ctx, id)
}

// GetByShareID resolves a shared itinerary; accessible without a user.
func (s *Service) GetByShareID(ctx context.Context, shareID string) (*models.Itinerary, error) {
	return s.store.GetByShareID(ctx, shareID)
}

// ListByOwner returns a user's itineraries, optionally narrowed by
// status.
func (s *Service) ListByOwner(ctx context.Context, userID string, status models.ItineraryStatus) ([]models.Itinerary, error) {
	return s.store.ListByOwner(ctx, userID, status)
}

// SaveForUser claims an itinerary for a user. Claiming another user's
// itinerary clones it instead of reassigning ownership, so the
// original owner keeps their copy.
func (s *Service) SaveForUser(ctx context.Context, id, userID string) (*models.Itinerary, error) {
	if err := s.checkSavedLimit(ctx, userID); err != nil {
		return nil, err
	}

	it, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if it.OwnerID != "" && it.OwnerID != userID {
		clone := it.Clone(NewItineraryID(), userID, models.StatusSaved, s.now())
		if err := s.store.Save(ctx, &clone); err != nil {
			return nil, err
		}
		s.log.Info().Str("original", id).Str("clone", clone.ID).Str("user", userID).Msg("itinerary cloned on claim")
		return &clone, nil
	}

	claimed := it.Claimed(userID)
	if err := s.store.Save(ctx, &claimed); err != nil {
		return nil, err
	}
	return &claimed, nil
}

// Confirm finalizes an itinerary, claiming it first when unowned and
// cloning when owned by someone else.
func (s *Service) Confirm(ctx context.Context, id, userID string) (*models.Itinerary, error) {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if it.OwnerID != "" && it.OwnerID != userID {
		clone := it.Clone(NewItineraryID(), userID, models.StatusConfirmed, s.now())
		if err := s.store.Save(ctx, &clone); err != nil {
			return nil, err
		}
		s.log.Info().Str("original", id).Str("clone", clone.ID).Str("user", userID).Msg("itinerary cloned on confirm")
		return &clone, nil
	}

	confirmed := it.Confirmed(userID, s.now())
	if err := s.store.Save(ctx, &confirmed); err != nil {
		return nil, err
	}
	return &confirmed, nil
}

// EditStop is one slot of a resubmitted stop list.
type EditStop struct {
	VenueID         int64  `json:"venue_id" validate:"required"`
	Sequence        int    `json:"sequence" validate:"required,gte=1"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
	Cost            int    `json:"cost" validate:"gte=0"`
	Note            string `json:"note"`
	TransitHint     string `json:"transit_hint"`
}

// Edit replaces an itinerary's stops wholesale after validating the
// resubmission. On rejection the stored itinerary is left unmodified.
func (s *Service) Edit(ctx context.Context, id string, edits []EditStop) (*models.Itinerary, error) {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(edits))
	for i, e := range edits {
		ids[i] = e.VenueID
	}
	venues, err := s.venues.VenuesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	stops := make([]models.Stop, len(edits))
	for i, e := range edits {
		stops[i] = bindStop(models.ProposalStop{
			VenueID:         e.VenueID,
			Sequence:        e.Sequence,
			DurationMinutes: e.DurationMinutes,
			Cost:            e.Cost,
			Note:            e.Note,
			TransitHint:     e.TransitHint,
		}, venues[i])
	}

	if err := ValidateEdit(it, stops); err != nil {
		return nil, err
	}

	// Persist in visit order so the stored slice matches the sequence
	// numbers.
	updated := it.WithStops(sortedBySequence(stops))
	if err := s.store.Save(ctx, &updated); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("itinerary", id).
		Int("stops", len(stops)).
		Int("budget", updated.TotalBudget).
		Msg("itinerary edited")
	return &updated, nil
}

// Copy duplicates an itinerary for reuse, marking the copy in its
// name.
func (s *Service) Copy(ctx context.Context, id, userID string) (*models.Itinerary, error) {
	if err := s.checkSavedLimit(ctx, userID); err != nil {
		return nil, err
	}

	it, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := it.Clone(NewItineraryID(), userID, models.StatusSaved, s.now())
	clone.Name = it.Name + " (복사)"
	if err := s.store.Save(ctx, &clone); err != nil {
		return nil, err
	}

	s.log.Info().Str("original", id).Str("clone", clone.ID).Str("user", userID).Msg("itinerary copied")
	return &clone, nil
}

// Rate stores a user's rating of a completed itinerary. Only the owner
// may rate, and only after confirmation.
func (s *Service) Rate(ctx context.Context, id, userID string, rating float64) error {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if it.OwnerID == "" || it.OwnerID != userID {
		return models.ErrNotOwner
	}
	if it.Status != models.StatusConfirmed {
		return models.ErrNotConfirmed
	}

	it.Rating = &rating
	return s.store.Save(ctx, it)
}

// Share returns the itinerary's share id, minting one on first use.
// Idempotent: subsequent calls return the same id.
func (s *Service) Share(ctx context.Context, id string) (string, error) {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if it.ShareID != "" {
		return it.ShareID, nil
	}

	it.ShareID = uuid.NewString()
	if err := s.store.Save(ctx, it); err != nil {
		return "", err
	}

	s.log.Info().Str("itinerary", id).Str("share", it.ShareID).Msg("share id minted")
	return it.ShareID, nil
}

// Delete removes a user's own itinerary.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	it, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if it.OwnerID == "" || it.OwnerID != userID {
		return models.ErrNotOwner
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) checkSavedLimit(ctx context.Context, userID string) error {
	count, err := s.store.CountSavedByOwner(ctx, userID)
	if err != nil {
		return err
	}
	if count >= maxSavedItineraries {
		return fmt.Errorf("%w: limit %d", models.ErrSavedLimitExceeded, maxSavedItineraries)
	}
	return nil
}
