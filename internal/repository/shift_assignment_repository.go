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

const assignmentDetailColumns = `sa.id, sa.employee_id, sa.shift_id, sa.status, s.title AS shift_title, s.start_time, s.end_time`

// ShiftAssignmentRepository persists employee-shift bindings. Overlap checks
// and the swap exchange live here because both need the shift window join
// and, for swaps, row-level locks.
type ShiftAssignmentRepository struct {
	db *sqlx.DB
}

// NewShiftAssignmentRepository constructs the repository.
func NewShiftAssignmentRepository(db *sqlx.DB) *ShiftAssignmentRepository {
	return &ShiftAssignmentRepository{db: db}
}

// FindByID loads a single assignment.
func (r *ShiftAssignmentRepository) FindByID(ctx context.Context, id string) (*models.ShiftAssignment, error) {
	const query = `SELECT id, employee_id, shift_id, status, created_at, updated_at FROM shift_assignments WHERE id = $1`
	var assignment models.ShiftAssignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return &assignment, nil
}

// ListByEmployee returns the employee's assignments joined with shift windows.
func (r *ShiftAssignmentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]models.AssignmentDetail, error) {
	query := `SELECT ` + assignmentDetailColumns + `
FROM shift_assignments sa
JOIN shifts s ON s.id = sa.shift_id
WHERE sa.employee_id = $1
ORDER BY s.start_time ASC`
	var assignments []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &assignments, query, employeeID); err != nil {
		return nil, fmt.Errorf("list assignments by employee: %w", err)
	}
	return assignments, nil
}

// ListByShift returns all assignments bound to a shift.
func (r *ShiftAssignmentRepository) ListByShift(ctx context.Context, shiftID string) ([]models.ShiftAssignment, error) {
	const query = `SELECT id, employee_id, shift_id, status, created_at, updated_at FROM shift_assignments WHERE shift_id = $1`
	var assignments []models.ShiftAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, shiftID); err != nil {
		return nil, fmt.Errorf("list assignments by shift: %w", err)
	}
	return assignments, nil
}

// FindByEmployeeAndShift resolves the natural swap-lookup key. Only a
// CONFIRMED assignment counts; a cancelled one cannot back a swap offer.
func (r *ShiftAssignmentRepository) FindByEmployeeAndShift(ctx context.Context, employeeID, shiftID string) (*models.ShiftAssignment, error) {
	const query = `SELECT id, employee_id, shift_id, status, created_at, updated_at FROM shift_assignments WHERE employee_id = $1 AND shift_id = $2 AND status = $3`
	var assignment models.ShiftAssignment
	if err := r.db.GetContext(ctx, &assignment, query, employeeID, shiftID, models.AssignmentStatusConfirmed); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find assignment by employee and shift: %w", err)
	}
	return &assignment, nil
}

// FindOverlapping returns the employee's CONFIRMED assignments whose shift
// window overlaps the half-open range [start, end). Two ranges overlap iff
// existing.start < end AND start < existing.end, so back-to-back shifts
// touching at a boundary never match.
func (r *ShiftAssignmentRepository) FindOverlapping(ctx context.Context, exec sqlx.ExtContext, employeeID string, start, end time.Time) ([]models.AssignmentDetail, error) {
	if exec == nil {
		exec = r.db
	}
	query := `SELECT ` + assignmentDetailColumns + `
FROM shift_assignments sa
JOIN shifts s ON s.id = sa.shift_id
WHERE sa.employee_id = $1
  AND sa.status = $2
  AND s.start_time < $4
  AND $3 < s.end_time
ORDER BY s.start_time ASC`
	var conflicts []models.AssignmentDetail
	if err := sqlx.SelectContext(ctx, exec, &conflicts, query, employeeID, models.AssignmentStatusConfirmed, start, end); err != nil {
		return nil, fmt.Errorf("find overlapping assignments: %w", err)
	}
	return conflicts, nil
}

// Create inserts a new assignment. The exec parameter allows reuse inside a
// transaction.
func (r *ShiftAssignmentRepository) Create(ctx context.Context, exec sqlx.ExtContext, assignment *models.ShiftAssignment) error {
	if exec == nil {
		exec = r.db
	}
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now

	const query = `INSERT INTO shift_assignments (id, employee_id, shift_id, status, created_at, updated_at)
		VALUES (:id, :employee_id, :shift_id, :status, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment by id.
func (r *ShiftAssignmentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM shift_assignments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted assignment rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// LockByEmployeeAndShift loads and row-locks a CONFIRMED assignment plus its
// shift window inside the swap transaction.
func (r *ShiftAssignmentRepository) LockByEmployeeAndShift(ctx context.Context, tx *sqlx.Tx, employeeID, shiftID string) (*models.AssignmentDetail, error) {
	query := `SELECT ` + assignmentDetailColumns + `
FROM shift_assignments sa
JOIN shifts s ON s.id = sa.shift_id
WHERE sa.employee_id = $1 AND sa.shift_id = $2 AND sa.status = $3
FOR UPDATE OF sa`
	var assignment models.AssignmentDetail
	if err := tx.GetContext(ctx, &assignment, query, employeeID, shiftID, models.AssignmentStatusConfirmed); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("lock assignment by employee and shift: %w", err)
	}
	return &assignment, nil
}

// LockBySignature loads and row-locks all of the employee's CONFIRMED
// assignments whose shift matches (title, start, end) exactly. More than one
// row signals an ambiguous swap target.
func (r *ShiftAssignmentRepository) LockBySignature(ctx context.Context, tx *sqlx.Tx, employeeID, title string, start, end time.Time) ([]models.AssignmentDetail, error) {
	query := `SELECT ` + assignmentDetailColumns + `
FROM shift_assignments sa
JOIN shifts s ON s.id = sa.shift_id
WHERE sa.employee_id = $1 AND sa.status = $2 AND s.title = $3 AND s.start_time = $4 AND s.end_time = $5
FOR UPDATE OF sa`
	var assignments []models.AssignmentDetail
	if err := tx.SelectContext(ctx, &assignments, query, employeeID, models.AssignmentStatusConfirmed, title, start, end); err != nil {
		return nil, fmt.Errorf("lock assignments by signature: %w", err)
	}
	return assignments, nil
}

// ExistsForEmployeeAndShift reports whether the employee already holds a
// CONFIRMED assignment for the shift.
func (r *ShiftAssignmentRepository) ExistsForEmployeeAndShift(ctx context.Context, exec sqlx.ExtContext, employeeID, shiftID string) (bool, error) {
	if exec == nil {
		exec = r.db
	}
	const query = `SELECT 1 FROM shift_assignments WHERE employee_id = $1 AND shift_id = $2 AND status = $3 LIMIT 1`
	var exists int
	if err := sqlx.GetContext(ctx, exec, &exists, query, employeeID, shiftID, models.AssignmentStatusConfirmed); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check assignment existence: %w", err)
	}
	return true, nil
}

// Reassign points a locked assignment at a different shift. Both halves of a
// swap call this inside the same transaction.
func (r *ShiftAssignmentRepository) Reassign(ctx context.Context, tx *sqlx.Tx, assignmentID, newShiftID string) error {
	const query = `UPDATE shift_assignments SET shift_id = $2, updated_at = $3 WHERE id = $1`
	result, err := tx.ExecContext(ctx, query, assignmentID, newShiftID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("reassign shift: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check reassigned rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
