// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/zzangoobrother/ddalkkak-date/internal/models"
)

//go:embed templates.json
var embeddedTemplates []byte

// SkeletonStop is one venue-agnostic slot of a template skeleton.
type SkeletonStop struct {
	Sequence        int    `json:"sequence"`
	DurationMinutes int    `json:"duration_minutes"`
	Cost            int    `json:"cost"`
	Note            string `json:"note"`
	Reason          string `json:"reason,omitempty"`
	TransitHint     string `json:"transit_hint,omitempty"`
}

// Skeleton is a pre-authored itinerary shape for one
// (region, activity type) pair. Slots are bound to real venues at
// resolution time.
type Skeleton struct {
	RegionID     string              `json:"region_id"`
	ActivityType models.ActivityType `json:"activity_type"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Stops        []SkeletonStop      `json:"stops"`
}

type templateFile struct {
	Templates []Skeleton `json:"templates"`
}

type templateKey struct {
	regionID string
	activity models.ActivityType
}

// TemplateTable is the immutable fallback template lookup, loaded once
// at startup. Read-only after construction, safe for concurrent use.
type TemplateTable struct {
	byKey map[templateKey]Skeleton
}

// LoadTemplates builds the template table from the given JSON file, or
// from the embedded table when path is empty.
func LoadTemplates(path string) (*TemplateTable, error) {
	data := embeddedTemplates
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template file: %w", err)
		}
	}

	var tf templateFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	byKey := make(map[templateKey]Skeleton, len(tf.Templates))
	for _, t := range tf.Templates {
		byKey[templateKey{t.RegionID, t.ActivityType}] = t
	}
	return &TemplateTable{byKey: byKey}, nil
}

// defaultSkeleton is used when no regional template matches, so
// resolution can never fail.
func defaultSkeleton() Skeleton {
	return Skeleton{
		Name:        "추천 데이트 코스",
		Description: "선택하신 지역과 예산에 맞는 데이트 코스입니다.",
		Stops: []SkeletonStop{
			{
				Sequence:        1,
				DurationMinutes: 90,
				Cost:            30000,
				Note:            "추천 메뉴",
				Reason:          "분위기 좋은 장소",
				TransitHint:     "도보 5분",
			},
			{
				Sequence:        2,
				DurationMinutes: 90,
				Cost:            30000,
				Note:            "추천 메뉴",
				Reason:          "여유롭게 즐기기 좋은 장소",
			},
		},
	}
}

// Resolve deterministically synthesizes a proposal for the region and
// activity type by binding skeleton slots positionally to the top
// entries of the ranked candidate list. Trailing slots without a
// candidate are dropped; the result degrades rather than fails.
func (t *TemplateTable) Resolve(regionID string, activity models.ActivityType, candidates []models.Venue) *models.Proposal {
	skeleton, ok := t.byKey[templateKey{regionID, activity}]
	if !ok {
		skeleton = defaultSkeleton()
	}

	n := len(skeleton.Stops)
	if n > len(candidates) {
		n = len(candidates)
	}

	stops := make([]models.ProposalStop, 0, n)
	budget := 0
	duration := 0
	for i := 0; i < n; i++ {
		slot := skeleton.Stops[i]
		stops = append(stops, models.ProposalStop{
			VenueID:         candidates[i].ID,
			Sequence:        i + 1,
			DurationMinutes: slot.DurationMinutes,
			Cost:            slot.Cost,
			Note:            slot.Note,
			Reason:          slot.Reason,
			TransitHint:     slot.TransitHint,
		})
		budget += slot.Cost
		duration += slot.DurationMinutes
	}
	// The last bound stop has nowhere to transit to.
	if len(stops) > 0 {
		stops[len(stops)-1].TransitHint = ""
	}

	return &models.Proposal{
		Name:            skeleton.Name,
		Description:     skeleton.Description,
		DurationMinutes: duration,
		TotalBudget:     budget,
		Stops:           stops,
	}
}

// Len returns the number of loaded regional templates.
func (t *TemplateTable) Len() int { return len(t.byKey) }
