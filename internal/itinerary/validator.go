// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"fmt"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

// Proposals must carry between minProposalStops and maxProposalStops
// stops; total budget may exceed the window max by at most
// budgetAcceptTolerance.
const (
	minProposalStops      = 2
	maxProposalStops      = 3
	budgetAcceptTolerance = 1.2
)

// Rejection reasons, also used as metric labels.
const (
	RejectStopCount    = "stop_count"
	RejectUnknownVenue = "unknown_venue"
	RejectBudget       = "budget"
)

// ProposalRejection explains why a provider proposal was not accepted.
type ProposalRejection struct {
	Reason string
	Detail string
}

func (e *ProposalRejection) Error() string {
	return fmt.Sprintf("proposal rejected (%s): %s", e.Reason, e.Detail)
}

// ValidateFunc decides whether a proposal is acceptable. nil means
// accepted. The orchestrator applies it after every provider attempt.
type ValidateFunc func(p *models.Proposal) error

// NewProposalValidator binds the candidate list and budget window into
// a ValidateFunc. Acceptance is binary; a bad proposal is never
// repaired.
func NewProposalValidator(candidates []models.Venue, window models.BudgetWindow) ValidateFunc {
	known := make(map[int64]struct{}, len(candidates))
	for _, v := range candidates {
		known[v.ID] = struct{}{}
	}
	maxBudget := int(float64(window.Max) * budgetAcceptTolerance)

	return func(p *models.Proposal) error {
		if len(p.Stops) < minProposalStops || len(p.Stops) > maxProposalStops {
			return &ProposalRejection{
				Reason: RejectStopCount,
				Detail: fmt.Sprintf("got %d stops, want %d-%d", len(p.Stops), minProposalStops, maxProposalStops),
			}
		}

		for _, stop := range p.Stops {
			if _, ok := known[stop.VenueID]; !ok {
				return &ProposalRejection{
					Reason: RejectUnknownVenue,
					Detail: fmt.Sprintf("venue %d is not in the candidate list", stop.VenueID),
				}
			}
		}

		// Underspending is fine; only the upper bound is checked.
		if p.TotalBudget > maxBudget {
			return &ProposalRejection{
				Reason: RejectBudget,
				Detail: fmt.Sprintf("total budget %d exceeds limit %d", p.TotalBudget, maxBudget),
			}
		}

		return nil
	}
}
