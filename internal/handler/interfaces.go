package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/loanpath/backend/internal/model"
	"github.com/loanpath/backend/internal/service"
)

// AffordabilityServiceInterface for handler testing
type AffordabilityServiceInterface interface {
	Calculate(input service.CalculatorInput) (*model.Installment, error)
	Suggest(input service.CalculatorInput) ([]model.SuggestionCandidate, error)
	CompareOffers(ctx context.Context, input service.CompareOffersInput) ([]model.OfferComparison, error)
}

// OfferServiceInterface for handler testing
type OfferServiceInterface interface {
	GetOffers(ctx context.Context, loanType string) []model.ExternalOffer
}

// TrackerServiceInterface for handler testing
type TrackerServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, input service.CreateTrackerInput) (*model.TrackerEntry, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*model.TrackerEntry, error)
	List(ctx context.Context, userID uuid.UUID, opts service.ListOptions) ([]model.TrackerEntry, error)
	Update(ctx context.Context, id, userID uuid.UUID, input service.UpdateTrackerInput) (*model.TrackerEntry, error)
	AdvanceStage(ctx context.Context, id, userID uuid.UUID, input service.AdvanceStageInput) (*model.TrackerEntry, error)
	Progression(ctx context.Context, id, userID uuid.UUID) ([]model.StageStep, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
