// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package models

import (
	"fmt"
	"math"
)

// BudgetPreset is a named spending bracket users pick from.
type BudgetPreset string

const (
	BudgetUnder30K   BudgetPreset = "under30k"
	Budget30KTo50K   BudgetPreset = "30k-50k"
	Budget50KTo100K  BudgetPreset = "50k-100k"
	Budget100KTo150K BudgetPreset = "100k-150k"
	BudgetCustom     BudgetPreset = "custom"
)

// presetInfo holds the bracket bounds and display metadata per preset.
type presetInfo struct {
	label   string
	tagline string
	min     int
	max     int
}

var presetInfos = map[BudgetPreset]presetInfo{
	BudgetUnder30K:   {"3만원 이하", "부담없이", 0, 30000},
	Budget30KTo50K:   {"3-5만원", "가볍게", 30000, 50000},
	Budget50KTo100K:  {"5-10만원", "여유롭게", 50000, 100000},
	Budget100KTo150K: {"10-15만원", "특별하게", 100000, 150000},
	BudgetCustom:     {"직접 입력", "원하는 만큼", 0, math.MaxInt32},
}

// ParseBudgetPreset resolves a budget preset identifier.
// Unknown identifiers return ErrUnknownBudgetPreset.
func ParseBudgetPreset(id string) (BudgetPreset, error) {
	bp := BudgetPreset(id)
	if _, ok := presetInfos[bp]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBudgetPreset, id)
	}
	return bp, nil
}

// BudgetPresets returns all presets in a stable display order.
func BudgetPresets() []BudgetPreset {
	return []BudgetPreset{
		BudgetUnder30K, Budget30KTo50K, Budget50KTo100K,
		Budget100KTo150K, BudgetCustom,
	}
}

// Label returns the display label of the preset.
func (p BudgetPreset) Label() string { return presetInfos[p].label }

// Tagline returns the short tagline of the preset.
func (p BudgetPreset) Tagline() string { return presetInfos[p].tagline }

// BudgetWindow is the [Min,Max] spending range an itinerary must
// respect. Invariant: 0 <= Min <= Max.
type BudgetWindow struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// customTolerance is the tolerance applied around a user-entered
// custom amount.
const customTolerance = 0.2

// Window resolves the preset into a concrete budget window.
// For the custom preset the window is amount ±20%; for named presets
// the amount is ignored.
func (p BudgetPreset) Window(customAmount int) (BudgetWindow, error) {
	info, ok := presetInfos[p]
	if !ok {
		return BudgetWindow{}, fmt.Errorf("%w: %q", ErrUnknownBudgetPreset, p)
	}

	if p == BudgetCustom {
		if customAmount < 0 {
			return BudgetWindow{}, fmt.Errorf("custom budget amount must be non-negative, got %d", customAmount)
		}
		return BudgetWindow{
			Min: int(float64(customAmount) * (1 - customTolerance)),
			Max: int(float64(customAmount) * (1 + customTolerance)),
		}, nil
	}

	return BudgetWindow{Min: info.min, Max: info.max}, nil
}

// Validate checks the window invariant.
func (w BudgetWindow) Validate() error {
	if w.Min < 0 || w.Max < 0 {
		return fmt.Errorf("budget window must be non-negative, got [%d,%d]", w.Min, w.Max)
	}
	if w.Min > w.Max {
		return fmt.Errorf("budget window min exceeds max: [%d,%d]", w.Min, w.Max)
	}
	return nil
}
