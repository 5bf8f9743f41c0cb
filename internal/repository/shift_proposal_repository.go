package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lit-planner/scheduler-api/internal/models"
)

const shiftProposalColumns = `id, employee_id, employee_name, employee_role, proposed_title, proposed_start_time, proposed_end_time, status,
       manager_alternative_title, manager_alternative_start_time, manager_alternative_end_time, manager_comment, created_at, updated_at`

// ShiftProposalRepository persists shift proposals. Rows are never deleted;
// cancellations are status changes kept for reporting.
type ShiftProposalRepository struct {
	db *sqlx.DB
}

// NewShiftProposalRepository constructs the repository.
func NewShiftProposalRepository(db *sqlx.DB) *ShiftProposalRepository {
	return &ShiftProposalRepository{db: db}
}

// Create inserts a new proposal.
func (r *ShiftProposalRepository) Create(ctx context.Context, proposal *models.ShiftProposal) error {
	if proposal.ID == "" {
		proposal.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if proposal.CreatedAt.IsZero() {
		proposal.CreatedAt = now
	}
	proposal.UpdatedAt = now

	const query = `INSERT INTO shift_proposals (id, employee_id, employee_name, employee_role, proposed_title, proposed_start_time, proposed_end_time, status, manager_alternative_title, manager_alternative_start_time, manager_alternative_end_time, manager_comment, created_at, updated_at)
		VALUES (:id, :employee_id, :employee_name, :employee_role, :proposed_title, :proposed_start_time, :proposed_end_time, :status, :manager_alternative_title, :manager_alternative_start_time, :manager_alternative_end_time, :manager_comment, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, proposal); err != nil {
		return fmt.Errorf("create shift proposal: %w", err)
	}
	return nil
}

// FindByID loads a single proposal.
func (r *ShiftProposalRepository) FindByID(ctx context.Context, id string) (*models.ShiftProposal, error) {
	query := `SELECT ` + shiftProposalColumns + ` FROM shift_proposals WHERE id = $1`
	var proposal models.ShiftProposal
	if err := r.db.GetContext(ctx, &proposal, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find shift proposal: %w", err)
	}
	return &proposal, nil
}

// ListByEmployee returns the employee's proposals, newest first.
func (r *ShiftProposalRepository) ListByEmployee(ctx context.Context, employeeID string) ([]models.ShiftProposal, error) {
	query := `SELECT ` + shiftProposalColumns + ` FROM shift_proposals WHERE employee_id = $1 ORDER BY created_at DESC`
	var proposals []models.ShiftProposal
	if err := r.db.SelectContext(ctx, &proposals, query, employeeID); err != nil {
		return nil, fmt.Errorf("list shift proposals by employee: %w", err)
	}
	return proposals, nil
}

// ListAll returns every proposal, newest first.
func (r *ShiftProposalRepository) ListAll(ctx context.Context) ([]models.ShiftProposal, error) {
	query := `SELECT ` + shiftProposalColumns + ` FROM shift_proposals ORDER BY created_at DESC`
	var proposals []models.ShiftProposal
	if err := r.db.SelectContext(ctx, &proposals, query); err != nil {
		return nil, fmt.Errorf("list shift proposals: %w", err)
	}
	return proposals, nil
}

// Update writes the mutable fields of a proposal. The exec parameter lets an
// acceptance flip the status inside the same transaction that creates the
// official shift. The WHERE clause pins the expected current status so that
// concurrent decisions on the same proposal cannot both land; losers surface
// sql.ErrNoRows.
func (r *ShiftProposalRepository) Update(ctx context.Context, exec sqlx.ExtContext, proposal *models.ShiftProposal, expectedStatus models.ProposalStatus) error {
	if exec == nil {
		exec = r.db
	}
	proposal.UpdatedAt = time.Now().UTC()
	const query = `UPDATE shift_proposals
SET proposed_title = :proposed_title, proposed_start_time = :proposed_start_time, proposed_end_time = :proposed_end_time,
    status = :status, manager_alternative_title = :manager_alternative_title, manager_alternative_start_time = :manager_alternative_start_time,
    manager_alternative_end_time = :manager_alternative_end_time, manager_comment = :manager_comment, updated_at = :updated_at
WHERE id = :id AND status = :expected_status`
	params := struct {
		models.ShiftProposal
		ExpectedStatus models.ProposalStatus `db:"expected_status"`
	}{*proposal, expectedStatus}
	result, err := sqlx.NamedExecContext(ctx, exec, query, params)
	if err != nil {
		return fmt.Errorf("update shift proposal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated proposal rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
