// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/zzangoobrother/ddalkkak-date/internal/logging"
	"github.com/zzangoobrother/ddalkkak-date/internal/metrics"
	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

// TemplateSource is the terminal fallback stage of the chain.
const TemplateSource = "template"

// Orchestrator drives the provider chain in priority order, applying
// the validator after each attempt, and falls back to the template
// table when every provider declines or produces an invalid proposal.
// Stateless across calls; safe for concurrent use.
type Orchestrator struct {
	providers []Provider
	templates *TemplateTable
	log       zerolog.Logger
}

// NewOrchestrator builds an orchestrator over a fixed, ordered
// provider list. The template table must be non-nil: it is what makes
// generation infallible.
func NewOrchestrator(providers []Provider, templates *TemplateTable) *Orchestrator {
	return &Orchestrator{
		providers: providers,
		templates: templates,
		log:       logging.With().Str("component", "orchestrator").Logger(),
	}
}

// Generate runs the chain for one request and returns the accepted
// proposal together with the name of the stage that produced it.
// It never fails: provider errors, timeouts and validation rejections
// only advance the chain, and the template stage always yields a
// proposal.
func (o *Orchestrator) Generate(ctx context.Context, req *Request, validate ValidateFunc) (*models.Proposal, string) {
	for _, p := range o.providers {
		start := time.Now()

		proposal, err := p.Generate(ctx, req)
		if err != nil {
			// Providers time out on their own derived contexts, so
			// the classification must look at the returned error.
			outcome := "error"
			if errors.Is(err, context.DeadlineExceeded) {
				outcome = "timeout"
			}
			metrics.RecordGeneration(p.Name(), outcome, time.Since(start))
			o.log.Warn().Err(err).Str("provider", p.Name()).Msg("provider declined, advancing chain")
			continue
		}

		if err := validate(proposal); err != nil {
			metrics.RecordGeneration(p.Name(), "invalid", time.Since(start))
			if rej, ok := err.(*ProposalRejection); ok {
				metrics.RecordValidationRejection(p.Name(), rej.Reason)
			}
			o.log.Warn().Err(err).Str("provider", p.Name()).Msg("proposal rejected, advancing chain")
			continue
		}

		metrics.RecordGeneration(p.Name(), "success", time.Since(start))
		o.log.Info().Str("provider", p.Name()).Msg("proposal accepted")
		return proposal, p.Name()
	}

	metrics.RecordTemplateFallback()
	o.log.Info().
		Str("region", req.Region.ID).
		Str("activity", req.Activity.String()).
		Msg("all providers exhausted, using template")
	return o.templates.Resolve(req.Region.ID, req.Activity, req.Candidates), TemplateSource
}
