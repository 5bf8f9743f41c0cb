package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lit-planner/scheduler-api/internal/models"
)

// EmployeeDirectoryRepository reads the employee directory the auth service
// maintains. The scheduler never writes to it; it only resolves display
// names and notification recipients.
type EmployeeDirectoryRepository struct {
	db *sqlx.DB
}

// NewEmployeeDirectoryRepository constructs the repository.
func NewEmployeeDirectoryRepository(db *sqlx.DB) *EmployeeDirectoryRepository {
	return &EmployeeDirectoryRepository{db: db}
}

// FindByID resolves a single employee contact.
func (r *EmployeeDirectoryRepository) FindByID(ctx context.Context, id string) (*models.EmployeeContact, error) {
	const query = `SELECT id, full_name, email, role FROM employees WHERE id = $1`
	var contact models.EmployeeContact
	if err := r.db.GetContext(ctx, &contact, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find employee contact: %w", err)
	}
	return &contact, nil
}
