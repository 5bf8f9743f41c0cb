package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lit-planner/scheduler-api/internal/models"
)

func TestShiftProposalRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftProposalRepository(db)

	mock.ExpectExec("INSERT INTO shift_proposals").
		WillReturnResult(sqlmock.NewResult(1, 1))

	proposal := &models.ShiftProposal{
		EmployeeID:        "emp-1",
		EmployeeName:      "Max Mustermann",
		EmployeeRole:      "EMPLOYEE",
		ProposedTitle:     "Morning Shift",
		ProposedStartTime: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		ProposedEndTime:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		Status:            models.ProposalStatusProposed,
	}
	require.NoError(t, repo.Create(context.Background(), proposal))
	assert.NotEmpty(t, proposal.ID)
	assert.False(t, proposal.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftProposalRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftProposalRepository(db)

	mock.ExpectQuery("SELECT .+ FROM shift_proposals WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftProposalRepositoryUpdateStatusGuard(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftProposalRepository(db)

	proposal := &models.ShiftProposal{
		ID:                "p1",
		ProposedTitle:     "Morning Shift",
		ProposedStartTime: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		ProposedEndTime:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		Status:            models.ProposalStatusAccepted,
	}

	// the row was decided concurrently, so the status guard matches nothing
	mock.ExpectExec(regexp.QuoteMeta("UPDATE shift_proposals")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), nil, proposal, models.ProposalStatusProposed)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE shift_proposals")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), nil, proposal, models.ProposalStatusProposed))
	assert.NoError(t, mock.ExpectationsWereMet())
}
