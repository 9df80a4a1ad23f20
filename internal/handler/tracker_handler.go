package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/loanpath/backend/internal/loan"
	"github.com/loanpath/backend/internal/model"
	"github.com/loanpath/backend/internal/service"
	"github.com/loanpath/backend/pkg/currency"
	"github.com/loanpath/backend/pkg/datetime"
)

type TrackerHandler struct {
	service TrackerServiceInterface
}

func NewTrackerHandler(service TrackerServiceInterface) *TrackerHandler {
	return &TrackerHandler{service: service}
}

// trackerRow decorates an entry with the display fields the tracker
// table renders.
type trackerRow struct {
	model.TrackerEntry
	AmountFormatted string `json:"amountFormatted"`
	UpdatedAgo      string `json:"updatedAgo"`
}

func toTrackerRow(entry model.TrackerEntry) trackerRow {
	return trackerRow{
		TrackerEntry:    entry,
		AmountFormatted: currency.Format(entry.Amount, currency.DefaultCurrency),
		UpdatedAgo:      datetime.TimeAgo(entry.UpdatedAt),
	}
}

// List returns the user's tracked applications.
// GET /api/tracker?search=home&sortBy=amount&order=desc
func (h *TrackerHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	opts := service.ListOptions{
		Search: r.URL.Query().Get("search"),
		SortBy: loan.SortField(r.URL.Query().Get("sortBy")),
		Desc:   strings.EqualFold(r.URL.Query().Get("order"), "desc"),
	}

	entries, err := h.service.List(r.Context(), userID, opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	rows := make([]trackerRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, toTrackerRow(entry))
	}

	respondJSON(w, http.StatusOK, rows)
}

// Create records a new tracked application.
// POST /api/tracker
func (h *TrackerHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input service.CreateTrackerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toTrackerRow(*entry))
}

// Get returns a single tracked application.
// GET /api/tracker/{id}
func (h *TrackerHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	entry, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTrackerRow(*entry))
}

// Update modifies the descriptive fields of a tracked application.
// PUT /api/tracker/{id}
func (h *TrackerHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.UpdateTrackerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Update(r.Context(), id, userID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTrackerRow(*entry))
}

// AdvanceStage moves a tracked application to a new pipeline stage.
// POST /api/tracker/{id}/stage
func (h *TrackerHandler) AdvanceStage(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.AdvanceStageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.AdvanceStage(r.Context(), id, userID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toTrackerRow(*entry))
}

// GetProgression returns the stage breakdown for a tracked application.
// GET /api/tracker/{id}/progress
func (h *TrackerHandler) GetProgression(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	steps, err := h.service.Progression(r.Context(), id, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, steps)
}

// Delete removes a tracked application.
// DELETE /api/tracker/{id}
func (h *TrackerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
