package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lit-planner/scheduler-api/internal/dto"
	"github.com/lit-planner/scheduler-api/internal/models"
	appErrors "github.com/lit-planner/scheduler-api/pkg/errors"
)

type mockDirectory struct {
	contacts map[string]*models.EmployeeContact
}

func (m *mockDirectory) FindByID(ctx context.Context, id string) (*models.EmployeeContact, error) {
	if c, ok := m.contacts[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type notification struct {
	recipientID string
	subject     string
}

type mockNotifier struct {
	sent []notification
}

func (m *mockNotifier) Notify(ctx context.Context, recipientID, subject, body string) {
	m.sent = append(m.sent, notification{recipientID: recipientID, subject: subject})
}

type mockShiftStore struct {
	items map[string]*models.Shift
	seq   int
}

func (m *mockShiftStore) FindByID(ctx context.Context, id string) (*models.Shift, error) {
	if s, ok := m.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockShiftStore) List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, int, error) {
	var shifts []models.Shift
	for _, s := range m.items {
		shifts = append(shifts, *s)
	}
	return shifts, len(shifts), nil
}

func (m *mockShiftStore) Create(ctx context.Context, exec sqlx.ExtContext, shift *models.Shift) error {
	if m.items == nil {
		m.items = make(map[string]*models.Shift)
	}
	if shift.ID == "" {
		m.seq++
		shift.ID = fmt.Sprintf("shift-%d", m.seq)
	}
	cp := *shift
	m.items[shift.ID] = &cp
	return nil
}

func (m *mockShiftStore) Update(ctx context.Context, shift *models.Shift) error {
	if _, ok := m.items[shift.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *shift
	m.items[shift.ID] = &cp
	return nil
}

func (m *mockShiftStore) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type mockAssignmentStore struct {
	shifts *mockShiftStore
	items  map[string]*models.ShiftAssignment
	seq    int
}

func (m *mockAssignmentStore) detail(a *models.ShiftAssignment) (models.AssignmentDetail, bool) {
	shift, ok := m.shifts.items[a.ShiftID]
	if !ok {
		return models.AssignmentDetail{}, false
	}
	return models.AssignmentDetail{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		ShiftID:    a.ShiftID,
		Status:     a.Status,
		ShiftTitle: shift.Title,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
	}, true
}

func (m *mockAssignmentStore) FindByID(ctx context.Context, id string) (*models.ShiftAssignment, error) {
	if a, ok := m.items[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssignmentStore) ListByEmployee(ctx context.Context, employeeID string) ([]models.AssignmentDetail, error) {
	var details []models.AssignmentDetail
	for _, a := range m.items {
		if a.EmployeeID != employeeID {
			continue
		}
		if d, ok := m.detail(a); ok {
			details = append(details, d)
		}
	}
	return details, nil
}

func (m *mockAssignmentStore) ListByShift(ctx context.Context, shiftID string) ([]models.ShiftAssignment, error) {
	var assignments []models.ShiftAssignment
	for _, a := range m.items {
		if a.ShiftID == shiftID {
			assignments = append(assignments, *a)
		}
	}
	return assignments, nil
}

func (m *mockAssignmentStore) FindByEmployeeAndShift(ctx context.Context, employeeID, shiftID string) (*models.ShiftAssignment, error) {
	for _, a := range m.items {
		if a.EmployeeID == employeeID && a.ShiftID == shiftID && a.Status == models.AssignmentStatusConfirmed {
			cp := *a
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssignmentStore) FindOverlapping(ctx context.Context, exec sqlx.ExtContext, employeeID string, start, end time.Time) ([]models.AssignmentDetail, error) {
	var conflicts []models.AssignmentDetail
	for _, a := range m.items {
		if a.EmployeeID != employeeID || a.Status != models.AssignmentStatusConfirmed {
			continue
		}
		d, ok := m.detail(a)
		if !ok {
			continue
		}
		if Overlaps(d.StartTime, d.EndTime, start, end) {
			conflicts = append(conflicts, d)
		}
	}
	return conflicts, nil
}

func (m *mockAssignmentStore) ExistsForEmployeeAndShift(ctx context.Context, exec sqlx.ExtContext, employeeID, shiftID string) (bool, error) {
	_, err := m.FindByEmployeeAndShift(ctx, employeeID, shiftID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (m *mockAssignmentStore) Create(ctx context.Context, exec sqlx.ExtContext, assignment *models.ShiftAssignment) error {
	if m.items == nil {
		m.items = make(map[string]*models.ShiftAssignment)
	}
	if assignment.ID == "" {
		m.seq++
		assignment.ID = fmt.Sprintf("assignment-%d", m.seq)
	}
	cp := *assignment
	m.items[assignment.ID] = &cp
	return nil
}

func (m *mockAssignmentStore) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *mockAssignmentStore) LockByEmployeeAndShift(ctx context.Context, tx *sqlx.Tx, employeeID, shiftID string) (*models.AssignmentDetail, error) {
	for _, a := range m.items {
		if a.EmployeeID == employeeID && a.ShiftID == shiftID && a.Status == models.AssignmentStatusConfirmed {
			if d, ok := m.detail(a); ok {
				return &d, nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssignmentStore) LockBySignature(ctx context.Context, tx *sqlx.Tx, employeeID, title string, start, end time.Time) ([]models.AssignmentDetail, error) {
	var matches []models.AssignmentDetail
	for _, a := range m.items {
		if a.EmployeeID != employeeID || a.Status != models.AssignmentStatusConfirmed {
			continue
		}
		d, ok := m.detail(a)
		if !ok {
			continue
		}
		if d.ShiftTitle == title && d.StartTime.Equal(start) && d.EndTime.Equal(end) {
			matches = append(matches, d)
		}
	}
	return matches, nil
}

func (m *mockAssignmentStore) Reassign(ctx context.Context, tx *sqlx.Tx, assignmentID, newShiftID string) error {
	a, ok := m.items[assignmentID]
	if !ok {
		return sql.ErrNoRows
	}
	a.ShiftID = newShiftID
	return nil
}

type mockProposalStore struct {
	items map[string]*models.ShiftProposal
	seq   int
}

func (m *mockProposalStore) Create(ctx context.Context, proposal *models.ShiftProposal) error {
	if m.items == nil {
		m.items = make(map[string]*models.ShiftProposal)
	}
	if proposal.ID == "" {
		m.seq++
		proposal.ID = fmt.Sprintf("proposal-%d", m.seq)
	}
	cp := *proposal
	m.items[proposal.ID] = &cp
	return nil
}

func (m *mockProposalStore) FindByID(ctx context.Context, id string) (*models.ShiftProposal, error) {
	if p, ok := m.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockProposalStore) ListByEmployee(ctx context.Context, employeeID string) ([]models.ShiftProposal, error) {
	var proposals []models.ShiftProposal
	for _, p := range m.items {
		if p.EmployeeID == employeeID {
			proposals = append(proposals, *p)
		}
	}
	return proposals, nil
}

func (m *mockProposalStore) ListAll(ctx context.Context) ([]models.ShiftProposal, error) {
	var proposals []models.ShiftProposal
	for _, p := range m.items {
		proposals = append(proposals, *p)
	}
	return proposals, nil
}

func (m *mockProposalStore) Update(ctx context.Context, exec sqlx.ExtContext, proposal *models.ShiftProposal, expectedStatus models.ProposalStatus) error {
	stored, ok := m.items[proposal.ID]
	if !ok || stored.Status != expectedStatus {
		return sql.ErrNoRows
	}
	cp := *proposal
	m.items[proposal.ID] = &cp
	return nil
}

func newTxProviderMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var (
	employeeActor = models.Identity{EmployeeID: "emp-1", DisplayName: "Max Mustermann", Role: models.RoleEmployee}
	managerActor  = models.Identity{EmployeeID: "mgr-1", DisplayName: "Erika Musterfrau", Role: models.RoleShiftSupervisor, CanApprove: true}
)

func newProposalFixture(t *testing.T) (*ShiftProposalService, *mockProposalStore, *mockShiftStore, *mockAssignmentStore, *mockNotifier, sqlmock.Sqlmock, func()) {
	db, mock, cleanup := newTxProviderMock(t)
	shifts := &mockShiftStore{items: map[string]*models.Shift{}}
	assignments := &mockAssignmentStore{shifts: shifts, items: map[string]*models.ShiftAssignment{}}
	proposals := &mockProposalStore{items: map[string]*models.ShiftProposal{}}
	directory := &mockDirectory{contacts: map[string]*models.EmployeeContact{
		"emp-1": {ID: "emp-1", FullName: "Max Mustermann", Email: "max@example.com", Role: "EMPLOYEE"},
	}}
	notifier := &mockNotifier{}

	svc := NewShiftProposalService(proposals, shifts, assignments, directory, db, notifier, nil, zap.NewNop())
	return svc, proposals, shifts, assignments, notifier, mock, cleanup
}

func TestShiftProposalCreateSnapshotsEmployee(t *testing.T) {
	svc, _, _, _, _, _, cleanup := newProposalFixture(t)
	defer cleanup()

	proposal, err := svc.Create(context.Background(), employeeActor, dto.CreateShiftProposalRequest{
		ProposedTitle:     "Morning Shift",
		ProposedStartTime: ts(8),
		ProposedEndTime:   ts(12),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusProposed, proposal.Status)
	assert.Equal(t, "emp-1", proposal.EmployeeID)
	assert.Equal(t, "Max Mustermann", proposal.EmployeeName)
	assert.Equal(t, "EMPLOYEE", proposal.EmployeeRole)
}

func TestShiftProposalCreateRejectsInvertedWindow(t *testing.T) {
	svc, _, _, _, _, _, cleanup := newProposalFixture(t)
	defer cleanup()

	_, err := svc.Create(context.Background(), employeeActor, dto.CreateShiftProposalRequest{
		ProposedTitle:     "Backwards",
		ProposedStartTime: ts(12),
		ProposedEndTime:   ts(8),
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestShiftProposalCreateRejectsOverlap(t *testing.T) {
	svc, proposals, shifts, assignments, _, _, cleanup := newProposalFixture(t)
	defer cleanup()

	shifts.items["existing"] = &models.Shift{ID: "existing", Title: "Existing", StartTime: ts(10), EndTime: ts(14)}
	assignments.items["a1"] = &models.ShiftAssignment{
		ID: "a1", EmployeeID: "emp-1", ShiftID: "existing", Status: models.AssignmentStatusConfirmed,
	}

	_, err := svc.Create(context.Background(), employeeActor, dto.CreateShiftProposalRequest{
		ProposedTitle:     "Morning Shift",
		ProposedStartTime: ts(8),
		ProposedEndTime:   ts(12),
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))
	assert.Empty(t, proposals.items, "no proposal may be persisted")
}

func TestShiftProposalCreateAllowsTouchingWindows(t *testing.T) {
	svc, _, shifts, assignments, _, _, cleanup := newProposalFixture(t)
	defer cleanup()

	shifts.items["existing"] = &models.Shift{ID: "existing", Title: "Early", StartTime: ts(4), EndTime: ts(8)}
	assignments.items["a1"] = &models.ShiftAssignment{
		ID: "a1", EmployeeID: "emp-1", ShiftID: "existing", Status: models.AssignmentStatusConfirmed,
	}

	proposal, err := svc.Create(context.Background(), employeeActor, dto.CreateShiftProposalRequest{
		ProposedTitle:     "Morning Shift",
		ProposedStartTime: ts(8),
		ProposedEndTime:   ts(12),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusProposed, proposal.Status)
}

func TestShiftProposalUpdateOnlyWhilePending(t *testing.T) {
	svc, proposals, _, _, _, _, cleanup := newProposalFixture(t)
	defer cleanup()

	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-1", Status: models.ProposalStatusRejected,
		ProposedTitle: "Old", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	_, err := svc.Update(context.Background(), employeeActor, "p1", dto.UpdateShiftProposalRequest{
		ProposedTitle: "New", ProposedStartTime: ts(9), ProposedEndTime: ts(13),
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidState))
}

func TestShiftProposalUpdateForeignProposalForbidden(t *testing.T) {
	svc, proposals, _, _, _, _, cleanup := newProposalFixture(t)
	defer cleanup()

	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-2", Status: models.ProposalStatusProposed,
		ProposedTitle: "Theirs", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	_, err := svc.Update(context.Background(), employeeActor, "p1", dto.UpdateShiftProposalRequest{
		ProposedTitle: "Mine now", ProposedStartTime: ts(9), ProposedEndTime: ts(13),
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))
}

func TestShiftProposalCancelIsTerminal(t *testing.T) {
	svc, proposals, _, _, _, _, cleanup := newProposalFixture(t)
	defer cleanup()

	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-1", Status: models.ProposalStatusProposed,
		ProposedTitle: "Morning", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	cancelled, err := svc.Cancel(context.Background(), employeeActor, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusCancelled, cancelled.Status)

	_, err = svc.Cancel(context.Background(), employeeActor, "p1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidState))
}

func TestShiftProposalAcceptCreatesShiftAndAssignment(t *testing.T) {
	svc, proposals, shifts, assignments, notifier, mock, cleanup := newProposalFixture(t)
	defer cleanup()

	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-1", EmployeeName: "Max Mustermann", EmployeeRole: "EMPLOYEE",
		Status:        models.ProposalStatusProposed,
		ProposedTitle: "Morning Shift", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	accepted, err := svc.Accept(context.Background(), managerActor, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusAccepted, accepted.Status)

	require.Len(t, shifts.items, 1)
	for _, shift := range shifts.items {
		assert.Equal(t, "Morning Shift", shift.Title)
		assert.Equal(t, "emp-1", shift.OwnerID)
		assert.True(t, shift.StartTime.Equal(ts(8)))
		assert.True(t, shift.EndTime.Equal(ts(12)))
	}
	require.Len(t, assignments.items, 1)
	for _, a := range assignments.items {
		assert.Equal(t, "emp-1", a.EmployeeID)
		assert.Equal(t, models.AssignmentStatusConfirmed, a.Status)
	}

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "emp-1", notifier.sent[0].recipientID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftProposalAcceptTwiceLeavesOneShift(t *testing.T) {
	svc, proposals, shifts, assignments, _, mock, cleanup := newProposalFixture(t)
	defer cleanup()

	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-1", Status: models.ProposalStatusProposed,
		ProposedTitle: "Morning Shift", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Accept(context.Background(), managerActor, "p1")
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), managerActor, "p1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidState))

	assert.Len(t, shifts.items, 1)
	assert.Len(t, assignments.items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftProposalAcceptRejectsOverlap(t *testing.T) {
	svc, proposals, shifts, assignments, _, mock, cleanup := newProposalFixture(t)
	defer cleanup()

	shifts.items["existing"] = &models.Shift{ID: "existing", Title: "Existing", StartTime: ts(10), EndTime: ts(14)}
	assignments.items["a1"] = &models.ShiftAssignment{
		ID: "a1", EmployeeID: "emp-1", ShiftID: "existing", Status: models.AssignmentStatusConfirmed,
	}
	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-1", Status: models.ProposalStatusProposed,
		ProposedTitle: "Morning Shift", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Accept(context.Background(), managerActor, "p1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))

	assert.Equal(t, models.ProposalStatusProposed, proposals.items["p1"].Status)
	assert.Len(t, shifts.items, 1, "no new shift may be created")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftProposalAcceptAllowsTouchingWindows(t *testing.T) {
	svc, proposals, shifts, assignments, _, mock, cleanup := newProposalFixture(t)
	defer cleanup()

	shifts.items["existing"] = &models.Shift{ID: "existing", Title: "Early", StartTime: ts(4), EndTime: ts(8)}
	assignments.items["a1"] = &models.ShiftAssignment{
		ID: "a1", EmployeeID: "emp-1", ShiftID: "existing", Status: models.AssignmentStatusConfirmed,
	}
	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-1", Status: models.ProposalStatusProposed,
		ProposedTitle: "Morning Shift", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	accepted, err := svc.Accept(context.Background(), managerActor, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusAccepted, accepted.Status)
	assert.Len(t, shifts.items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftProposalAcceptRequiresApprover(t *testing.T) {
	svc, proposals, _, _, _, _, cleanup := newProposalFixture(t)
	defer cleanup()

	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-1", Status: models.ProposalStatusProposed,
		ProposedTitle: "Morning Shift", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	_, err := svc.Accept(context.Background(), employeeActor, "p1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))
}

func TestShiftProposalRejectRecordsComment(t *testing.T) {
	svc, proposals, _, _, notifier, _, cleanup := newProposalFixture(t)
	defer cleanup()

	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-1", Status: models.ProposalStatusProposed,
		ProposedTitle: "Morning Shift", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	rejected, err := svc.Reject(context.Background(), managerActor, "p1", dto.RejectProposalRequest{Comment: "understaffed elsewhere"})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusRejected, rejected.Status)
	require.NotNil(t, rejected.ManagerComment)
	assert.Equal(t, "understaffed elsewhere", *rejected.ManagerComment)
	require.Len(t, notifier.sent, 1)
}

func TestShiftProposalAlternativePreservesOriginalRequest(t *testing.T) {
	svc, proposals, _, _, _, _, cleanup := newProposalFixture(t)
	defer cleanup()

	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-1", Status: models.ProposalStatusProposed,
		ProposedTitle: "Morning Shift", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	updated, err := svc.ProposeAlternative(context.Background(), managerActor, "p1", dto.AlternativeProposalRequest{
		Title: "Evening Shift", StartTime: ts(14), EndTime: ts(18), Comment: "morning is full",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusAlternativeProposed, updated.Status)
	assert.Equal(t, "Morning Shift", updated.ProposedTitle)
	require.NotNil(t, updated.ManagerAlternativeTitle)
	assert.Equal(t, "Evening Shift", *updated.ManagerAlternativeTitle)

	// terminal: no further decision allowed
	_, err = svc.Reject(context.Background(), managerActor, "p1", dto.RejectProposalRequest{})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidState))
}

func TestShiftProposalExportCSV(t *testing.T) {
	svc, proposals, _, _, _, _, cleanup := newProposalFixture(t)
	defer cleanup()

	proposals.items["p1"] = &models.ShiftProposal{
		ID: "p1", EmployeeID: "emp-1", EmployeeName: "Max Mustermann", EmployeeRole: "EMPLOYEE",
		Status:        models.ProposalStatusProposed,
		ProposedTitle: "Morning Shift", ProposedStartTime: ts(8), ProposedEndTime: ts(12),
	}

	data, err := svc.ExportCSV(context.Background(), managerActor)
	require.NoError(t, err)
	payload := string(data)
	assert.True(t, strings.HasPrefix(payload, "ID,Employee,Role,Title,Start,End,Status,Comment,Created"))
	assert.Contains(t, payload, "Max Mustermann")
	assert.Contains(t, payload, "Morning Shift")

	_, err = svc.ExportCSV(context.Background(), employeeActor)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))
}
