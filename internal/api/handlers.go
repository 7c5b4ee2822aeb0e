// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/zzangoobrother/ddalkkak-date/internal/catalog"
	"github.com/zzangoobrother/ddalkkak-date/internal/itinerary"
	"github.com/zzangoobrother/ddalkkak-date/internal/logging"
	"github.com/zzangoobrother/ddalkkak-date/internal/models"
	"github.com/zzangoobrother/ddalkkak-date/internal/validation"
)

// userIDHeader identifies the acting user. Authentication happens
// upstream; the service trusts the header the gateway injects.
const userIDHeader = "X-User-ID"

// Handler exposes the itinerary service over HTTP.
type Handler struct {
	svc *itinerary.Service
	log zerolog.Logger
}

// NewHandler constructs the HTTP handler set.
func NewHandler(svc *itinerary.Service) *Handler {
	return &Handler{
		svc: svc,
		log: logging.With().Str("component", "api").Logger(),
	}
}

type generateRequest struct {
	RegionID     string `json:"region_id" validate:"required"`
	ActivityType string `json:"activity_type" validate:"required"`
	BudgetPreset string `json:"budget_preset" validate:"required"`
	CustomAmount int    `json:"custom_amount" validate:"gte=0"`
}

type editRequest struct {
	Stops []itinerary.EditStop `json:"stops" validate:"required,min=1,dive"`
}

type rateRequest struct {
	Rating float64 `json:"rating" validate:"required,gte=0.5,lte=5"`
}

type shareResponse struct {
	ShareID string `json:"share_id"`
}

type activityTypeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type budgetPresetDTO struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Tagline string `json:"tagline"`
	Min     int    `json:"min"`
	Max     int    `json:"max,omitempty"`
}

// handleListRegions returns the supported regions.
func (h *Handler) handleListRegions(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, r, http.StatusOK, catalog.Regions())
}

// handleListActivityTypes returns the supported activity types.
func (h *Handler) handleListActivityTypes(w http.ResponseWriter, r *http.Request) {
	types := models.ActivityTypes()
	out := make([]activityTypeDTO, 0, len(types))
	for _, at := range types {
		out = append(out, activityTypeDTO{
			ID:          at.String(),
			Name:        at.Name(),
			Description: at.Description(),
		})
	}
	writeSuccess(w, r, http.StatusOK, out)
}

// handleListBudgetPresets returns the budget brackets. The custom
// preset's window depends on the user-entered amount, so its bounds
// are omitted.
func (h *Handler) handleListBudgetPresets(w http.ResponseWriter, r *http.Request) {
	presets := models.BudgetPresets()
	out := make([]budgetPresetDTO, 0, len(presets))
	for _, p := range presets {
		dto := budgetPresetDTO{
			ID:      string(p),
			Label:   p.Label(),
			Tagline: p.Tagline(),
		}
		if p != models.BudgetCustom {
			window, err := p.Window(0)
			if err == nil {
				dto.Min = window.Min
				dto.Max = window.Max
			}
		}
		out = append(out, dto)
	}
	writeSuccess(w, r, http.StatusOK, out)
}

// handleGenerate runs the generation pipeline and returns the draft.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !h.decode(w, r, &req) {
		return
	}

	it, err := h.svc.Generate(r.Context(), itinerary.GenerateParams{
		RegionID:     req.RegionID,
		ActivityType: req.ActivityType,
		BudgetPreset: req.BudgetPreset,
		CustomAmount: req.CustomAmount,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusCreated, it)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, it)
}

func (h *Handler) handleGetShared(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.GetByShareID(r.Context(), chi.URLParam(r, "shareID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, it)
}

// handleList returns the acting user's itineraries, optionally
// narrowed with ?status=SAVED|CONFIRMED|DRAFT.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	status := models.ItineraryStatus(r.URL.Query().Get("status"))
	switch status {
	case "", models.StatusDraft, models.StatusSaved, models.StatusConfirmed:
	default:
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "unknown status filter")
		return
	}

	list, err := h.svc.ListByOwner(r.Context(), userID, status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, list)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	it, err := h.svc.SaveForUser(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, it)
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	it, err := h.svc.Confirm(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, it)
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !h.decode(w, r, &req) {
		return
	}

	it, err := h.svc.Edit(r.Context(), chi.URLParam(r, "id"), req.Stops)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, it)
}

func (h *Handler) handleCopy(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	it, err := h.svc.Copy(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusCreated, it)
}

func (h *Handler) handleRate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req rateRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.Rate(r.Context(), chi.URLParam(r, "id"), userID, req.Rating); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, map[string]float64{"rating": req.Rating})
}

func (h *Handler) handleShare(w http.ResponseWriter, r *http.Request) {
	shareID, err := h.svc.Share(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, shareResponse{ShareID: shareID})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode parses and validates the JSON request body. On failure the
// error response has been written and false is returned.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return false
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		writeErrorDetails(w, r, http.StatusBadRequest, ErrCodeValidationFailed,
			verr.Error(), verr.Fields())
		return false
	}
	return true
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "missing "+userIDHeader+" header")
		return "", false
	}
	return userID, true
}

// writeServiceError maps domain errors to HTTP responses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrItineraryNotFound),
		errors.Is(err, models.ErrVenueNotFound):
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error())

	case errors.Is(err, models.ErrNotOwner):
		writeError(w, r, http.StatusForbidden, ErrCodeForbidden, err.Error())

	case errors.Is(err, models.ErrSavedLimitExceeded):
		writeError(w, r, http.StatusConflict, ErrCodeLimitExceeded, err.Error())

	case errors.Is(err, models.ErrUnknownRegion),
		errors.Is(err, models.ErrUnknownActivityType),
		errors.Is(err, models.ErrUnknownBudgetPreset),
		errors.Is(err, models.ErrNotConfirmed):
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())

	case errors.Is(err, itinerary.ErrEditStopCount),
		errors.Is(err, itinerary.ErrEditSequence),
		errors.Is(err, itinerary.ErrEditBudgetDrift),
		errors.Is(err, itinerary.ErrEditDistance):
		writeError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())

	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}
