package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lit-planner/scheduler-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestShiftAssignmentRepositoryFindOverlapping(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftAssignmentRepository(db)

	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "employee_id", "shift_id", "status", "shift_title", "start_time", "end_time"}).
		AddRow("a1", "emp-1", "shift-1", "CONFIRMED", "Morning Shift", start, end)
	mock.ExpectQuery(regexp.QuoteMeta("s.start_time < $4")).
		WithArgs("emp-1", string(models.AssignmentStatusConfirmed), start, end).
		WillReturnRows(rows)

	conflicts, err := repo.FindOverlapping(context.Background(), nil, "emp-1", start, end)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "Morning Shift", conflicts[0].ShiftTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftAssignmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO shift_assignments").
		WithArgs(sqlmock.AnyArg(), "emp-1", "shift-1", string(models.AssignmentStatusConfirmed), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assignment := &models.ShiftAssignment{EmployeeID: "emp-1", ShiftID: "shift-1", Status: models.AssignmentStatusConfirmed}
	require.NoError(t, repo.Create(context.Background(), nil, assignment))
	assert.NotEmpty(t, assignment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftAssignmentRepositoryReassignMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE shift_assignments SET shift_id").
		WithArgs("missing", "shift-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Beginx()
	require.NoError(t, err)

	err = repo.Reassign(context.Background(), tx, "missing", "shift-2")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftAssignmentRepositoryLockBySignature(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftAssignmentRepository(db)

	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"id", "employee_id", "shift_id", "status", "shift_title", "start_time", "end_time"}).
		AddRow("a2", "emp-2", "shift-2", "CONFIRMED", "Evening Shift", start, end).
		AddRow("a3", "emp-2", "shift-3", "CONFIRMED", "Evening Shift", start, end)
	mock.ExpectQuery(regexp.QuoteMeta("sa.status = $2")).
		WithArgs("emp-2", string(models.AssignmentStatusConfirmed), "Evening Shift", start, end).
		WillReturnRows(rows)

	tx, err := db.Beginx()
	require.NoError(t, err)

	matches, err := repo.LockBySignature(context.Background(), tx, "emp-2", "Evening Shift", start, end)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftAssignmentRepositoryLockByEmployeeAndShift(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftAssignmentRepository(db)

	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"id", "employee_id", "shift_id", "status", "shift_title", "start_time", "end_time"}).
		AddRow("a1", "emp-1", "shift-1", "CONFIRMED", "Morning Shift", start, end)
	mock.ExpectQuery(regexp.QuoteMeta("sa.status = $3")).
		WithArgs("emp-1", "shift-1", string(models.AssignmentStatusConfirmed)).
		WillReturnRows(rows)

	tx, err := db.Beginx()
	require.NoError(t, err)

	locked, err := repo.LockByEmployeeAndShift(context.Background(), tx, "emp-1", "shift-1")
	require.NoError(t, err)
	assert.Equal(t, "a1", locked.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftAssignmentRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM shift_assignments WHERE employee_id = $1 AND shift_id = $2 AND status = $3 LIMIT 1")).
		WithArgs("emp-1", "shift-1", string(models.AssignmentStatusConfirmed)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err := repo.ExistsForEmployeeAndShift(context.Background(), nil, "emp-1", "shift-1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
