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

const swapProposalColumns = `id, employee_id, employee_name, employee_role, current_shift_id, proposed_title, proposed_start_time, proposed_end_time, status, manager_comment, created_at, updated_at`

// SwapProposalRepository persists swap proposals.
type SwapProposalRepository struct {
	db *sqlx.DB
}

// NewSwapProposalRepository constructs the repository.
func NewSwapProposalRepository(db *sqlx.DB) *SwapProposalRepository {
	return &SwapProposalRepository{db: db}
}

// Create inserts a new swap proposal.
func (r *SwapProposalRepository) Create(ctx context.Context, proposal *models.SwapProposal) error {
	if proposal.ID == "" {
		proposal.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if proposal.CreatedAt.IsZero() {
		proposal.CreatedAt = now
	}
	proposal.UpdatedAt = now

	const query = `INSERT INTO swap_proposals (id, employee_id, employee_name, employee_role, current_shift_id, proposed_title, proposed_start_time, proposed_end_time, status, manager_comment, created_at, updated_at)
		VALUES (:id, :employee_id, :employee_name, :employee_role, :current_shift_id, :proposed_title, :proposed_start_time, :proposed_end_time, :status, :manager_comment, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, proposal); err != nil {
		return fmt.Errorf("create swap proposal: %w", err)
	}
	return nil
}

// FindByID loads a single swap proposal.
func (r *SwapProposalRepository) FindByID(ctx context.Context, id string) (*models.SwapProposal, error) {
	query := `SELECT ` + swapProposalColumns + ` FROM swap_proposals WHERE id = $1`
	var proposal models.SwapProposal
	if err := r.db.GetContext(ctx, &proposal, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find swap proposal: %w", err)
	}
	return &proposal, nil
}

// ListByEmployee returns the employee's swap proposals, newest first.
func (r *SwapProposalRepository) ListByEmployee(ctx context.Context, employeeID string) ([]models.SwapProposal, error) {
	query := `SELECT ` + swapProposalColumns + ` FROM swap_proposals WHERE employee_id = $1 ORDER BY created_at DESC`
	var proposals []models.SwapProposal
	if err := r.db.SelectContext(ctx, &proposals, query, employeeID); err != nil {
		return nil, fmt.Errorf("list swap proposals by employee: %w", err)
	}
	return proposals, nil
}

// ListAll returns every swap proposal, newest first.
func (r *SwapProposalRepository) ListAll(ctx context.Context) ([]models.SwapProposal, error) {
	query := `SELECT ` + swapProposalColumns + ` FROM swap_proposals ORDER BY created_at DESC`
	var proposals []models.SwapProposal
	if err := r.db.SelectContext(ctx, &proposals, query); err != nil {
		return nil, fmt.Errorf("list swap proposals: %w", err)
	}
	return proposals, nil
}

// UpdateDecision records the manager's decision. The exec parameter lets the
// swap engine flip the status inside the exchange transaction; the WHERE
// clause pins PROPOSED so a raced second decision surfaces sql.ErrNoRows.
func (r *SwapProposalRepository) UpdateDecision(ctx context.Context, exec sqlx.ExtContext, id string, status models.ProposalStatus, comment *string) error {
	if exec == nil {
		exec = r.db
	}
	const query = `UPDATE swap_proposals SET status = $2, manager_comment = $3, updated_at = $4 WHERE id = $1 AND status = $5`
	result, err := exec.ExecContext(ctx, query, id, status, comment, time.Now().UTC(), models.ProposalStatusProposed)
	if err != nil {
		return fmt.Errorf("update swap proposal decision: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated swap proposal rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
