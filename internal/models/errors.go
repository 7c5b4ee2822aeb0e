// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package models

import "errors"

// Configuration/lookup errors. These are fatal to the call and are
// surfaced to the caller immediately, never retried or defaulted.
var (
	ErrUnknownRegion       = errors.New("unknown region")
	ErrUnknownActivityType = errors.New("unknown activity type")
	ErrUnknownBudgetPreset = errors.New("unknown budget preset")
)

// Entity lookup errors.
var (
	ErrVenueNotFound     = errors.New("venue not found")
	ErrItineraryNotFound = errors.New("itinerary not found")
)

// Policy errors on itinerary operations.
var (
	// ErrNotOwner is returned when a user operates on an itinerary
	// they do not own.
	ErrNotOwner = errors.New("itinerary is owned by another user")

	// ErrNotConfirmed is returned when rating an itinerary that has
	// not been confirmed yet.
	ErrNotConfirmed = errors.New("itinerary is not confirmed")

	// ErrSavedLimitExceeded is returned when a user already holds the
	// maximum number of non-draft itineraries.
	ErrSavedLimitExceeded = errors.New("saved itinerary limit exceeded")
)
