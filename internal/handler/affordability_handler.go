package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/loanpath/backend/internal/service"
)

type AffordabilityHandler struct {
	service AffordabilityServiceInterface
}

func NewAffordabilityHandler(service AffordabilityServiceInterface) *AffordabilityHandler {
	return &AffordabilityHandler{service: service}
}

// parseCalculatorInput reads principal, annualRate and termMonths from
// the query string. Missing or malformed values stay zero and fail
// validation downstream.
func parseCalculatorInput(r *http.Request) service.CalculatorInput {
	var input service.CalculatorInput

	if p, err := decimal.NewFromString(r.URL.Query().Get("principal")); err == nil {
		input.Principal = p
	}
	if rate, err := decimal.NewFromString(r.URL.Query().Get("annualRate")); err == nil {
		input.AnnualRate = rate
	}
	if tm, err := decimal.NewFromString(r.URL.Query().Get("termMonths")); err == nil {
		input.TermMonths = int(tm.IntPart())
	}
	return input
}

// Calculator computes installment figures for a loan scenario.
// GET /api/loans/calculator?principal=500000&annualRate=12&termMonths=60
func (h *AffordabilityHandler) Calculator(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Calculate(parseCalculatorInput(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Suggestions returns the three ranked alternative financing scenarios.
// GET /api/loans/suggestions?principal=500000&annualRate=12&termMonths=60
func (h *AffordabilityHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.service.Suggest(parseCalculatorInput(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, candidates)
}

// CompareOffers recomputes the top provider offers against a principal.
// GET /api/loans/offers/compare?loanType=Personal%20Loan&principal=500000
func (h *AffordabilityHandler) CompareOffers(w http.ResponseWriter, r *http.Request) {
	input := service.CompareOffersInput{
		LoanType: r.URL.Query().Get("loanType"),
	}
	if p, err := decimal.NewFromString(r.URL.Query().Get("principal")); err == nil {
		input.Principal = p
	}
	if tm, err := decimal.NewFromString(r.URL.Query().Get("termMonths")); err == nil {
		input.TermMonths = int(tm.IntPart())
	}

	comparisons, err := h.service.CompareOffers(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, comparisons)
}
