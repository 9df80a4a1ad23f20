package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/loanpath/backend/internal/model"
)

var ErrTrackerEntryNotFound = errors.New("tracker entry not found")

type TrackerRepository struct {
	db *sqlx.DB
}

func NewTrackerRepository(db *sqlx.DB) *TrackerRepository {
	return &TrackerRepository{db: db}
}

func (r *TrackerRepository) Create(ctx context.Context, entry *model.TrackerEntry) error {
	query := `
		INSERT INTO tracker_entries (id, user_id, application_id, loan_type, amount, status, current_stage, progress, next_step, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`

	entry.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.UserID, entry.ApplicationID, entry.LoanType, entry.Amount,
		entry.Status, entry.CurrentStage, entry.Progress, entry.NextStep,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
}

func (r *TrackerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TrackerEntry, error) {
	var entry model.TrackerEntry
	query := `SELECT * FROM tracker_entries WHERE id = $1`
	err := r.db.GetContext(ctx, &entry, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrackerEntryNotFound
	}
	return &entry, err
}

func (r *TrackerRepository) List(ctx context.Context, userID uuid.UUID) ([]model.TrackerEntry, error) {
	var entries []model.TrackerEntry
	query := `SELECT * FROM tracker_entries WHERE user_id = $1 ORDER BY updated_at DESC`
	err := r.db.SelectContext(ctx, &entries, query, userID)
	return entries, err
}

func (r *TrackerRepository) Update(ctx context.Context, entry *model.TrackerEntry) error {
	query := `
		UPDATE tracker_entries
		SET application_id = $2, loan_type = $3, amount = $4, status = $5,
			current_stage = $6, progress = $7, next_step = $8, updated_at = NOW()
		WHERE id = $1 AND user_id = $9
		RETURNING updated_at`
	result := r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.ApplicationID, entry.LoanType, entry.Amount,
		entry.Status, entry.CurrentStage, entry.Progress, entry.NextStep, entry.UserID,
	)
	err := result.Scan(&entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTrackerEntryNotFound
	}
	return err
}

// UpdateStage moves an entry to a new pipeline position in a single statement
// so status, stage, progress and next step always change together.
func (r *TrackerRepository) UpdateStage(ctx context.Context, entry *model.TrackerEntry) error {
	query := `
		UPDATE tracker_entries
		SET status = $2, current_stage = $3, progress = $4, next_step = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $6
		RETURNING updated_at`
	result := r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.Status, entry.CurrentStage, entry.Progress, entry.NextStep, entry.UserID,
	)
	err := result.Scan(&entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTrackerEntryNotFound
	}
	return err
}

func (r *TrackerRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM tracker_entries WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTrackerEntryNotFound
	}
	return nil
}
