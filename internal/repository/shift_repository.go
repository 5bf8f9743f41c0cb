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

// ShiftRepository persists official shifts.
type ShiftRepository struct {
	db *sqlx.DB
}

// NewShiftRepository constructs the repository.
func NewShiftRepository(db *sqlx.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// FindByID loads a single shift.
func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*models.Shift, error) {
	const query = `SELECT id, title, start_time, end_time, owner_id, owner_name, owner_role, created_at, updated_at FROM shifts WHERE id = $1`
	var shift models.Shift
	if err := r.db.GetContext(ctx, &shift, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find shift: %w", err)
	}
	return &shift, nil
}

// List returns shifts matching the filter together with a total count.
func (r *ShiftRepository) List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Title != "" {
		where = ` WHERE title ILIKE $1`
		args = append(args, "%"+filter.Title+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM shifts`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count shifts: %w", err)
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `SELECT id, title, start_time, end_time, owner_id, owner_name, owner_role, created_at, updated_at FROM shifts` + where +
		fmt.Sprintf(` ORDER BY start_time ASC LIMIT %d OFFSET %d`, limit, offset)
	var shifts []models.Shift
	if err := r.db.SelectContext(ctx, &shifts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list shifts: %w", err)
	}
	return shifts, total, nil
}

// Create inserts a new shift. The exec parameter allows reuse inside a
// transaction when a proposal acceptance creates the shift and the assignment
// in one boundary.
func (r *ShiftRepository) Create(ctx context.Context, exec sqlx.ExtContext, shift *models.Shift) error {
	if exec == nil {
		exec = r.db
	}
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = now
	}
	shift.UpdatedAt = now

	const query = `INSERT INTO shifts (id, title, start_time, end_time, owner_id, owner_name, owner_role, created_at, updated_at)
		VALUES (:id, :title, :start_time, :end_time, :owner_id, :owner_name, :owner_role, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, shift); err != nil {
		return fmt.Errorf("create shift: %w", err)
	}
	return nil
}

// Update modifies an existing shift.
func (r *ShiftRepository) Update(ctx context.Context, shift *models.Shift) error {
	shift.UpdatedAt = time.Now().UTC()
	const query = `UPDATE shifts SET title = :title, start_time = :start_time, end_time = :end_time, owner_id = :owner_id, owner_name = :owner_name, owner_role = :owner_role, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, shift)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated shift rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a shift by id.
func (r *ShiftRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM shifts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted shift rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
