package handler

import (
	"net/http"
)

type OfferHandler struct {
	service OfferServiceInterface
}

func NewOfferHandler(service OfferServiceInterface) *OfferHandler {
	return &OfferHandler{service: service}
}

// List returns the current provider offers for a loan type.
// GET /api/loans/offers?loanType=Personal%20Loan
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	loanType := r.URL.Query().Get("loanType")

	offers := h.service.GetOffers(r.Context(), loanType)

	respondJSON(w, http.StatusOK, offers)
}
