// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"context"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

// Request carries everything one generation call needs. Ephemeral,
// created per call and discarded after use.
type Request struct {
	Region     models.Region
	Activity   models.ActivityType
	Window     models.BudgetWindow
	Candidates []models.Venue
}

// Provider is one external generative backend. Generate returns a
// proposal or an error; implementations map every transport failure,
// timeout and malformed response to an error rather than propagating
// partial state. The orchestrator absorbs all provider errors.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req *Request) (*models.Proposal, error)
}
