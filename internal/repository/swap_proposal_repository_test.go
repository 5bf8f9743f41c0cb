package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lit-planner/scheduler-api/internal/models"
)

func TestSwapProposalRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSwapProposalRepository(db)

	mock.ExpectExec("INSERT INTO swap_proposals").
		WillReturnResult(sqlmock.NewResult(1, 1))

	proposal := &models.SwapProposal{
		EmployeeID:        "emp-1",
		CurrentShiftID:    "shift-1",
		ProposedTitle:     "Evening Shift",
		ProposedStartTime: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		ProposedEndTime:   time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
		Status:            models.ProposalStatusProposed,
	}
	require.NoError(t, repo.Create(context.Background(), proposal))
	assert.NotEmpty(t, proposal.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwapProposalRepositoryUpdateDecisionGuard(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSwapProposalRepository(db)

	comment := "coverage needed"

	mock.ExpectExec("UPDATE swap_proposals SET status").
		WithArgs("s1", string(models.ProposalStatusRejected), comment, sqlmock.AnyArg(), string(models.ProposalStatusProposed)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateDecision(context.Background(), nil, "s1", models.ProposalStatusRejected, &comment))

	// already decided: the PROPOSED guard matches nothing
	mock.ExpectExec("UPDATE swap_proposals SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateDecision(context.Background(), nil, "s1", models.ProposalStatusRejected, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
