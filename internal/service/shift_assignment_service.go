package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/lit-planner/scheduler-api/internal/dto"
	"github.com/lit-planner/scheduler-api/internal/models"
	appErrors "github.com/lit-planner/scheduler-api/pkg/errors"
)

type assignmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.ShiftAssignment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]models.AssignmentDetail, error)
	ListByShift(ctx context.Context, shiftID string) ([]models.ShiftAssignment, error)
	FindOverlapping(ctx context.Context, exec sqlx.ExtContext, employeeID string, start, end time.Time) ([]models.AssignmentDetail, error)
	ExistsForEmployeeAndShift(ctx context.Context, exec sqlx.ExtContext, employeeID, shiftID string) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, assignment *models.ShiftAssignment) error
	Delete(ctx context.Context, id string) error
}

type shiftReader interface {
	FindByID(ctx context.Context, id string) (*models.Shift, error)
}

// scheduleCache fronts employee schedule reads. A miss is reported as
// appErrors.ErrCacheMiss.
type scheduleCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

func scheduleCacheKey(employeeID string) string {
	return "schedule:" + employeeID
}

// ShiftAssignmentService binds employees to shifts. Every assignment passes
// the overlap check against the employee's confirmed schedule first; a
// conflict is reported with the clashing assignments, never silently dropped.
type ShiftAssignmentService struct {
	assignments assignmentRepository
	shifts      shiftReader
	notifier    Notifier
	cache       scheduleCache
	cacheTTL    time.Duration
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewShiftAssignmentService creates a service instance.
func NewShiftAssignmentService(assignments assignmentRepository, shifts shiftReader, notifier Notifier, validate *validator.Validate, logger *zap.Logger) *ShiftAssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftAssignmentService{
		assignments: assignments,
		shifts:      shifts,
		notifier:    notifier,
		validator:   validate,
		logger:      logger,
	}
}

// SetCache enables read caching of employee schedules. Safe to leave unset.
func (s *ShiftAssignmentService) SetCache(cache scheduleCache, ttl time.Duration, metrics *MetricsService) {
	s.cache = cache
	s.cacheTTL = ttl
	s.metrics = metrics
}

// ListByEmployee returns the employee's assignments with their shift windows.
// Employees may only read their own schedule; approvers may read anyone's.
func (s *ShiftAssignmentService) ListByEmployee(ctx context.Context, actor models.Identity, employeeID string) ([]models.AssignmentDetail, error) {
	if actor.EmployeeID != employeeID && !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot view another employee's assignments")
	}

	if s.cache != nil {
		var cached []models.AssignmentDetail
		if err := s.cache.Get(ctx, scheduleCacheKey(employeeID), &cached); err == nil {
			s.metrics.RecordCacheOperation(true)
			return cached, nil
		}
		s.metrics.RecordCacheOperation(false)
	}

	queryStart := time.Now()
	assignments, err := s.assignments.ListByEmployee(ctx, employeeID)
	s.metrics.ObserveDBQuery("assignments_by_employee", time.Since(queryStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, scheduleCacheKey(employeeID), assignments, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache schedule", zap.String("employee_id", employeeID), zap.Error(err))
		}
	}
	return assignments, nil
}

// InvalidateSchedule drops the cached schedule after an assignment change.
func (s *ShiftAssignmentService) InvalidateSchedule(ctx context.Context, employeeIDs ...string) {
	if s.cache == nil {
		return
	}
	for _, id := range employeeIDs {
		if err := s.cache.DeleteByPattern(ctx, scheduleCacheKey(id)+"*"); err != nil {
			s.logger.Warn("failed to invalidate schedule cache", zap.String("employee_id", id), zap.Error(err))
		}
	}
}

// ListByShift returns everyone assigned to a shift.
func (s *ShiftAssignmentService) ListByShift(ctx context.Context, shiftID string) ([]models.ShiftAssignment, error) {
	assignments, err := s.assignments.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

// CheckConflicts returns the employee's confirmed assignments overlapping the
// half-open window [start, end). An empty result means the window is free.
func (s *ShiftAssignmentService) CheckConflicts(ctx context.Context, employeeID string, start, end time.Time) ([]models.AssignmentDetail, error) {
	if !start.Before(end) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "window start must be before end")
	}
	queryStart := time.Now()
	conflicts, err := s.assignments.FindOverlapping(ctx, nil, employeeID, start, end)
	s.metrics.ObserveDBQuery("assignments_overlap", time.Since(queryStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check conflicts")
	}
	return conflicts, nil
}

// Assign binds an employee to an existing shift after the conflict check.
func (s *ShiftAssignmentService) Assign(ctx context.Context, actor models.Identity, req dto.AssignShiftRequest) (*models.ShiftAssignment, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may assign shifts")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	shift, err := s.shifts.FindByID(ctx, req.ShiftID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift")
	}

	exists, err := s.assignments.ExistsForEmployeeAndShift(ctx, nil, req.EmployeeID, req.ShiftID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrIntegrity, "employee is already assigned to this shift")
	}

	conflicts, err := s.assignments.FindOverlapping(ctx, nil, req.EmployeeID, shift.StartTime, shift.EndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check conflicts")
	}
	if len(conflicts) > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("employee has %d overlapping assignment(s) in this window", len(conflicts)))
	}

	assignment := &models.ShiftAssignment{
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
		Status:     models.AssignmentStatusConfirmed,
	}
	if err := s.assignments.Create(ctx, nil, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	s.InvalidateSchedule(ctx, req.EmployeeID)

	if s.notifier != nil {
		s.notifier.Notify(ctx, req.EmployeeID, "New Shift Assignment",
			fmt.Sprintf("You have been assigned to %q from %s to %s.",
				shift.Title, shift.StartTime.Format(time.RFC3339), shift.EndTime.Format(time.RFC3339)))
	}
	return assignment, nil
}

// Remove deletes an assignment and notifies the affected employee.
func (s *ShiftAssignmentService) Remove(ctx context.Context, actor models.Identity, id string) error {
	if !actor.CanApprove {
		return appErrors.Clone(appErrors.ErrForbidden, "only managers may remove assignments")
	}

	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}

	if err := s.assignments.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove assignment")
	}
	s.InvalidateSchedule(ctx, assignment.EmployeeID)

	if s.notifier != nil {
		s.notifier.Notify(ctx, assignment.EmployeeID, "Shift Assignment Removed",
			"One of your shift assignments has been removed from the schedule.")
	}
	return nil
}
