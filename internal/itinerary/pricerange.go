// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package itinerary

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PriceRange is a parsed per-person price bracket in won.
type PriceRange struct {
	Min int
	Max int
}

// bareAmountTolerance widens a single-amount descriptor into a range.
const bareAmountTolerance = 0.3

// ParsePriceRange parses a free-text price descriptor into a numeric
// range. Recognized forms:
//
//	"10,000-20,000원"  -> [10000, 20000]
//	"30,000원 이상"    -> [30000, MaxInt32]
//	"30,000원 이하"    -> [0, 30000]
//	"25,000원"         -> [17500, 32500] (±30%)
//
// Anything else returns an error; callers treat unparseable text as a
// pass, not a rejection.
func ParsePriceRange(s string) (PriceRange, error) {
	if strings.Contains(s, "-") {
		parts := strings.SplitN(stripPriceText(s), "-", 2)
		min, err1 := parseWon(parts[0])
		max, err2 := parseWon(parts[1])
		if err1 != nil || err2 != nil {
			return PriceRange{}, fmt.Errorf("malformed price range %q", s)
		}
		return PriceRange{Min: min, Max: max}, nil
	}

	if strings.Contains(s, "이상") {
		min, err := parseWon(strings.ReplaceAll(stripPriceText(s), "이상", ""))
		if err != nil {
			return PriceRange{}, fmt.Errorf("malformed price range %q", s)
		}
		return PriceRange{Min: min, Max: math.MaxInt32}, nil
	}

	if strings.Contains(s, "이하") {
		max, err := parseWon(strings.ReplaceAll(stripPriceText(s), "이하", ""))
		if err != nil {
			return PriceRange{}, fmt.Errorf("malformed price range %q", s)
		}
		return PriceRange{Min: 0, Max: max}, nil
	}

	amount, err := parseWon(stripPriceText(s))
	if err != nil {
		return PriceRange{}, fmt.Errorf("malformed price range %q", s)
	}
	return PriceRange{
		Min: int(float64(amount) * (1 - bareAmountTolerance)),
		Max: int(float64(amount) * (1 + bareAmountTolerance)),
	}, nil
}

// stripPriceText removes the won suffix and digit grouping.
func stripPriceText(s string) string {
	s = strings.ReplaceAll(s, "원", "")
	return strings.ReplaceAll(s, ",", "")
}

func parseWon(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// Overlaps reports whether the price range intersects the given
// interval.
func (r PriceRange) Overlaps(min, max int) bool {
	return !(r.Max < min || r.Min > max)
}
