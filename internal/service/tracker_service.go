package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loanpath/backend/internal/apperror"
	"github.com/loanpath/backend/internal/loan"
	"github.com/loanpath/backend/internal/model"
	"github.com/loanpath/backend/internal/repository"
)

// TrackerRepositoryInterface defines the contract for tracker data
// access. Implementations must be safe for concurrent use.
type TrackerRepositoryInterface interface {
	Create(ctx context.Context, entry *model.TrackerEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TrackerEntry, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.TrackerEntry, error)
	Update(ctx context.Context, entry *model.TrackerEntry) error
	UpdateStage(ctx context.Context, entry *model.TrackerEntry) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// TrackerService handles business logic for loan application tracking.
type TrackerService struct {
	repo TrackerRepositoryInterface
}

// NewTrackerService creates a new TrackerService with the given
// repository.
func NewTrackerService(repo TrackerRepositoryInterface) *TrackerService {
	return &TrackerService{repo: repo}
}

type CreateTrackerInput struct {
	ApplicationID string                 `json:"applicationId"`
	LoanType      string                 `json:"loanType"`
	Amount        decimal.Decimal        `json:"amount"`
	CurrentStage  model.ApplicationStage `json:"currentStage"` // Defaults to submitted
	NextStep      *string                `json:"nextStep"`
}

type UpdateTrackerInput struct {
	ApplicationID string          `json:"applicationId"`
	LoanType      string          `json:"loanType"`
	Amount        decimal.Decimal `json:"amount"`
	NextStep      *string         `json:"nextStep"`
}

type AdvanceStageInput struct {
	Stage    model.ApplicationStage   `json:"stage"`
	Status   *model.ApplicationStatus `json:"status"` // Overrides the stage's default status (e.g. rejected)
	NextStep *string                  `json:"nextStep"`
}

// ListOptions narrows and orders a tracker listing.
type ListOptions struct {
	Search string
	SortBy loan.SortField
	Desc   bool
}

// Create records a new tracked application. Status and progress are
// derived from the stage so the stored row can never disagree with the
// pipeline.
func (s *TrackerService) Create(ctx context.Context, userID uuid.UUID, input CreateTrackerInput) (*model.TrackerEntry, error) {
	if input.ApplicationID == "" {
		return nil, apperror.ValidationError("applicationId", "application ID is required")
	}
	if input.LoanType == "" {
		return nil, apperror.ValidationError("loanType", "loan type is required")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.ValidationError("amount", "amount must be positive")
	}

	stage := input.CurrentStage
	if stage == "" {
		stage = model.StageSubmitted
	}

	status, err := loan.DefaultStatusForStage(stage)
	if err != nil {
		return nil, apperror.Unprocessable(err.Error())
	}
	progress, err := loan.StageProgress(stage)
	if err != nil {
		return nil, apperror.Unprocessable(err.Error())
	}

	entry := &model.TrackerEntry{
		UserID:        userID,
		ApplicationID: input.ApplicationID,
		LoanType:      input.LoanType,
		Amount:        input.Amount,
		Status:        status,
		CurrentStage:  stage,
		Progress:      progress,
		NextStep:      input.NextStep,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("creating tracker entry: %w", err)
	}
	return entry, nil
}

// Get retrieves a tracker entry by ID, scoped to the owning user.
func (s *TrackerService) Get(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*model.TrackerEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTrackerEntryNotFound) {
			return nil, apperror.NotFound("tracker entry")
		}
		return nil, fmt.Errorf("getting tracker entry %s: %w", id, err)
	}
	if entry.UserID != userID {
		return nil, apperror.NotFound("tracker entry")
	}
	return entry, nil
}

// List retrieves a user's tracked applications, optionally filtered by a
// search query and re-sorted in memory.
func (s *TrackerService) List(ctx context.Context, userID uuid.UUID, opts ListOptions) ([]model.TrackerEntry, error) {
	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tracker entries for user %s: %w", userID, err)
	}

	entries = loan.FilterEntries(entries, opts.Search)
	if opts.SortBy != "" {
		entries = loan.SortEntries(entries, opts.SortBy, opts.Desc)
	}
	return entries, nil
}

// Update modifies the descriptive fields of an entry. Stage moves go
// through AdvanceStage so the derived fields stay consistent.
func (s *TrackerService) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, input UpdateTrackerInput) (*model.TrackerEntry, error) {
	entry, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.ApplicationID == "" {
		return nil, apperror.ValidationError("applicationId", "application ID is required")
	}
	if input.LoanType == "" {
		return nil, apperror.ValidationError("loanType", "loan type is required")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.ValidationError("amount", "amount must be positive")
	}

	entry.ApplicationID = input.ApplicationID
	entry.LoanType = input.LoanType
	entry.Amount = input.Amount
	entry.NextStep = input.NextStep

	if err := s.repo.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrTrackerEntryNotFound) {
			return nil, apperror.NotFound("tracker entry")
		}
		return nil, fmt.Errorf("updating tracker entry %s: %w", id, err)
	}
	return entry, nil
}

// AdvanceStage moves an entry to a new pipeline stage. Status defaults
// to the stage's usual classification unless an explicit override (such
// as rejected) is supplied; progress is always derived from the stage.
func (s *TrackerService) AdvanceStage(ctx context.Context, id uuid.UUID, userID uuid.UUID, input AdvanceStageInput) (*model.TrackerEntry, error) {
	entry, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	progress, err := loan.StageProgress(input.Stage)
	if err != nil {
		return nil, apperror.Unprocessable(err.Error())
	}

	status, err := loan.DefaultStatusForStage(input.Stage)
	if err != nil {
		return nil, apperror.Unprocessable(err.Error())
	}
	if input.Status != nil {
		if !loan.KnownStatus(*input.Status) {
			return nil, apperror.ValidationError("status", fmt.Sprintf("unknown status %q", *input.Status))
		}
		status = *input.Status
	}

	entry.CurrentStage = input.Stage
	entry.Status = status
	entry.Progress = progress
	entry.NextStep = input.NextStep

	if err := s.repo.UpdateStage(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrTrackerEntryNotFound) {
			return nil, apperror.NotFound("tracker entry")
		}
		return nil, fmt.Errorf("advancing tracker entry %s: %w", id, err)
	}
	return entry, nil
}

// Progression projects an entry onto the full application pipeline.
func (s *TrackerService) Progression(ctx context.Context, id uuid.UUID, userID uuid.UUID) ([]model.StageStep, error) {
	entry, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	steps, err := loan.Progression(*entry)
	if err != nil {
		// Stored stage no longer parses; surface it instead of guessing.
		return nil, apperror.Unprocessable(err.Error())
	}
	return steps, nil
}

// Delete removes a tracker entry for the given user.
func (s *TrackerService) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrTrackerEntryNotFound) {
			return apperror.NotFound("tracker entry")
		}
		return fmt.Errorf("deleting tracker entry %s: %w", id, err)
	}
	return nil
}
