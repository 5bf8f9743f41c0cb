package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lit-planner/scheduler-api/internal/dto"
	"github.com/lit-planner/scheduler-api/internal/models"
	appErrors "github.com/lit-planner/scheduler-api/pkg/errors"
)

type mockCache struct {
	data map[string][]byte
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	b, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(b, dest)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *mockCache) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
		}
	}
	return nil
}

func newAssignmentFixture() (*ShiftAssignmentService, *mockShiftStore, *mockAssignmentStore, *mockNotifier) {
	shifts := &mockShiftStore{items: map[string]*models.Shift{}}
	assignments := &mockAssignmentStore{shifts: shifts, items: map[string]*models.ShiftAssignment{}}
	notifier := &mockNotifier{}
	svc := NewShiftAssignmentService(assignments, shifts, notifier, nil, zap.NewNop())
	return svc, shifts, assignments, notifier
}

func TestAssignRejectsOverlap(t *testing.T) {
	svc, shifts, assignments, _ := newAssignmentFixture()

	shifts.items["shift-1"] = &models.Shift{ID: "shift-1", Title: "Morning", StartTime: ts(8), EndTime: ts(12)}
	shifts.items["shift-2"] = &models.Shift{ID: "shift-2", Title: "Midday", StartTime: ts(10), EndTime: ts(14)}
	assignments.items["a1"] = &models.ShiftAssignment{
		ID: "a1", EmployeeID: "emp-1", ShiftID: "shift-1", Status: models.AssignmentStatusConfirmed,
	}

	_, err := svc.Assign(context.Background(), managerActor, dto.AssignShiftRequest{EmployeeID: "emp-1", ShiftID: "shift-2"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))
	assert.Len(t, assignments.items, 1)
}

func TestAssignAllowsTouchingWindows(t *testing.T) {
	svc, shifts, assignments, notifier := newAssignmentFixture()

	shifts.items["shift-1"] = &models.Shift{ID: "shift-1", Title: "Morning", StartTime: ts(8), EndTime: ts(12)}
	shifts.items["shift-2"] = &models.Shift{ID: "shift-2", Title: "Afternoon", StartTime: ts(12), EndTime: ts(16)}
	assignments.items["a1"] = &models.ShiftAssignment{
		ID: "a1", EmployeeID: "emp-1", ShiftID: "shift-1", Status: models.AssignmentStatusConfirmed,
	}

	created, err := svc.Assign(context.Background(), managerActor, dto.AssignShiftRequest{EmployeeID: "emp-1", ShiftID: "shift-2"})
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusConfirmed, created.Status)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "emp-1", notifier.sent[0].recipientID)
}

func TestAssignRejectsDuplicate(t *testing.T) {
	svc, shifts, assignments, _ := newAssignmentFixture()

	shifts.items["shift-1"] = &models.Shift{ID: "shift-1", Title: "Morning", StartTime: ts(8), EndTime: ts(12)}
	assignments.items["a1"] = &models.ShiftAssignment{
		ID: "a1", EmployeeID: "emp-1", ShiftID: "shift-1", Status: models.AssignmentStatusConfirmed,
	}

	_, err := svc.Assign(context.Background(), managerActor, dto.AssignShiftRequest{EmployeeID: "emp-1", ShiftID: "shift-1"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrIntegrity))
}

func TestAssignUnknownShift(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture()

	_, err := svc.Assign(context.Background(), managerActor, dto.AssignShiftRequest{EmployeeID: "emp-1", ShiftID: "missing"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestAssignRequiresApprover(t *testing.T) {
	svc, shifts, _, _ := newAssignmentFixture()

	shifts.items["shift-1"] = &models.Shift{ID: "shift-1", Title: "Morning", StartTime: ts(8), EndTime: ts(12)}

	_, err := svc.Assign(context.Background(), employeeActor, dto.AssignShiftRequest{EmployeeID: "emp-1", ShiftID: "shift-1"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))
}

func TestRemoveMissingAssignment(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture()

	err := svc.Remove(context.Background(), managerActor, "missing")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestRemoveNotifiesEmployee(t *testing.T) {
	svc, shifts, assignments, notifier := newAssignmentFixture()

	shifts.items["shift-1"] = &models.Shift{ID: "shift-1", Title: "Morning", StartTime: ts(8), EndTime: ts(12)}
	assignments.items["a1"] = &models.ShiftAssignment{
		ID: "a1", EmployeeID: "emp-1", ShiftID: "shift-1", Status: models.AssignmentStatusConfirmed,
	}

	require.NoError(t, svc.Remove(context.Background(), managerActor, "a1"))
	assert.Empty(t, assignments.items)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "emp-1", notifier.sent[0].recipientID)
}

func TestCheckConflictsValidatesWindow(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture()

	_, err := svc.CheckConflicts(context.Background(), "emp-1", ts(12), ts(8))
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestListByEmployeeAuthorization(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture()

	_, err := svc.ListByEmployee(context.Background(), employeeActor, "emp-2")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	_, err = svc.ListByEmployee(context.Background(), managerActor, "emp-2")
	require.NoError(t, err)
}

func TestListByEmployeeCacheRoundTrip(t *testing.T) {
	svc, shifts, assignments, _ := newAssignmentFixture()
	cache := &mockCache{}
	svc.SetCache(cache, time.Minute, nil)

	shifts.items["shift-1"] = &models.Shift{ID: "shift-1", Title: "Morning", StartTime: ts(8), EndTime: ts(12)}
	assignments.items["a1"] = &models.ShiftAssignment{
		ID: "a1", EmployeeID: "emp-1", ShiftID: "shift-1", Status: models.AssignmentStatusConfirmed,
	}

	first, err := svc.ListByEmployee(context.Background(), employeeActor, "emp-1")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// served from cache, so a direct store change is not visible yet
	delete(assignments.items, "a1")
	cached, err := svc.ListByEmployee(context.Background(), employeeActor, "emp-1")
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	svc.InvalidateSchedule(context.Background(), "emp-1")
	fresh, err := svc.ListByEmployee(context.Background(), employeeActor, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, fresh)
}
