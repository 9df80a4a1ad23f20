package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/loanpath/backend/internal/apperror"
	"github.com/loanpath/backend/internal/loan"
	"github.com/loanpath/backend/internal/model"
)

// maxComparedOffers caps how many feed offers a single comparison
// recomputes.
const maxComparedOffers = 3

// OfferSource provides the offers a comparison runs against.
type OfferSource interface {
	GetOffers(ctx context.Context, loanType string) []model.ExternalOffer
}

// AffordabilityService handles business logic for installment
// calculation, financing suggestions and offer comparison.
type AffordabilityService struct {
	offers      OfferSource
	defaultRate decimal.Decimal
	defaultTerm int
}

// NewAffordabilityService creates a new AffordabilityService. defaultRate
// and defaultTerm substitute for offer text that carries no parseable
// rate or tenure.
func NewAffordabilityService(offers OfferSource, defaultRate float64, defaultTerm int) *AffordabilityService {
	return &AffordabilityService{
		offers:      offers,
		defaultRate: decimal.NewFromFloat(defaultRate),
		defaultTerm: defaultTerm,
	}
}

type CalculatorInput struct {
	Principal  decimal.Decimal `json:"principal"`
	AnnualRate decimal.Decimal `json:"annualRate"` // APR as percentage (e.g., 12 for 12%)
	TermMonths int             `json:"termMonths"`
}

// Calculate computes installment figures for a loan scenario.
func (s *AffordabilityService) Calculate(input CalculatorInput) (*model.Installment, error) {
	inst, err := loan.ComputeInstallment(input.Principal, input.AnnualRate, input.TermMonths)
	if err != nil {
		if errors.Is(err, loan.ErrInvalidInput) {
			return nil, apperror.BadRequest(err.Error())
		}
		return nil, apperror.Internal(err)
	}
	return &inst, nil
}

// Suggest generates the three ranked alternative financing scenarios for
// a base loan.
func (s *AffordabilityService) Suggest(input CalculatorInput) ([]model.SuggestionCandidate, error) {
	candidates, err := loan.Suggest(input.Principal, input.AnnualRate, input.TermMonths)
	if err != nil {
		if errors.Is(err, loan.ErrInvalidInput) {
			return nil, apperror.BadRequest(err.Error())
		}
		return nil, apperror.Internal(err)
	}
	return candidates, nil
}

type CompareOffersInput struct {
	LoanType   string          `json:"loanType"`
	Principal  decimal.Decimal `json:"principal"`
	TermMonths int             `json:"termMonths"` // Fallback term for offers without a parseable tenure
}

// CompareOffers recomputes the top offers for a loan type against the
// requested principal so they can be ranked like for like. At most three
// offers are compared; input order is preserved.
func (s *AffordabilityService) CompareOffers(ctx context.Context, input CompareOffersInput) ([]model.OfferComparison, error) {
	if !input.Principal.IsPositive() {
		return nil, apperror.ValidationError("principal", "principal must be positive")
	}

	fallbackTerm := input.TermMonths
	if fallbackTerm <= 0 {
		fallbackTerm = s.defaultTerm
	}

	offers := s.offers.GetOffers(ctx, input.LoanType)
	if len(offers) > maxComparedOffers {
		offers = offers[:maxComparedOffers]
	}

	comparisons, err := loan.CompareOffers(offers, input.Principal, fallbackTerm, s.defaultRate)
	if err != nil {
		if errors.Is(err, loan.ErrInvalidInput) {
			return nil, apperror.BadRequest(err.Error())
		}
		return nil, apperror.Internal(err)
	}
	return comparisons, nil
}
