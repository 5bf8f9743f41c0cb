package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/lit-planner/scheduler-api/internal/dto"
	"github.com/lit-planner/scheduler-api/internal/models"
	appErrors "github.com/lit-planner/scheduler-api/pkg/errors"
)

type shiftRepository interface {
	FindByID(ctx context.Context, id string) (*models.Shift, error)
	List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, int, error)
	Create(ctx context.Context, exec sqlx.ExtContext, shift *models.Shift) error
	Update(ctx context.Context, shift *models.Shift) error
	Delete(ctx context.Context, id string) error
}

type employeeDirectory interface {
	FindByID(ctx context.Context, id string) (*models.EmployeeContact, error)
}

// ShiftService manages official shifts. Creation and mutation are reserved
// for callers with approval rights; the workflow engine also creates shifts
// when proposals are accepted.
type ShiftService struct {
	shifts    shiftRepository
	directory employeeDirectory
	notifier  Notifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewShiftService creates a service instance.
func NewShiftService(shifts shiftRepository, directory employeeDirectory, notifier Notifier, validate *validator.Validate, logger *zap.Logger) *ShiftService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftService{
		shifts:    shifts,
		directory: directory,
		notifier:  notifier,
		validator: validate,
		logger:    logger,
	}
}

// List returns shifts with pagination.
func (s *ShiftService) List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, *models.Pagination, error) {
	shifts, total, err := s.shifts.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shifts")
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return shifts, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get loads a single shift.
func (s *ShiftService) Get(ctx context.Context, id string) (*models.Shift, error) {
	shift, err := s.shifts.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift")
	}
	return shift, nil
}

// Create records a new official shift for the given owner.
func (s *ShiftService) Create(ctx context.Context, actor models.Identity, req dto.CreateShiftRequest) (*models.Shift, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may create shifts directly")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift payload")
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "shift start must be before end")
	}

	owner, err := s.directory.FindByID(ctx, req.OwnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "owner not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve owner")
	}

	shift := &models.Shift{
		Title:     req.Title,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		OwnerID:   owner.ID,
		OwnerName: owner.FullName,
		OwnerRole: owner.Role,
	}
	if err := s.shifts.Create(ctx, nil, shift); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create shift")
	}
	return shift, nil
}

// Update amends an official shift.
func (s *ShiftService) Update(ctx context.Context, actor models.Identity, id string, req dto.UpdateShiftRequest) (*models.Shift, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may update shifts")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift payload")
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "shift start must be before end")
	}

	shift, err := s.shifts.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift")
	}

	shift.Title = req.Title
	shift.StartTime = req.StartTime.UTC()
	shift.EndTime = req.EndTime.UTC()
	if err := s.shifts.Update(ctx, shift); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update shift")
	}
	return shift, nil
}

// Delete removes a shift and tells the owner their slot is gone.
func (s *ShiftService) Delete(ctx context.Context, actor models.Identity, id string) error {
	if !actor.CanApprove {
		return appErrors.Clone(appErrors.ErrForbidden, "only managers may delete shifts")
	}

	shift, err := s.shifts.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift")
	}

	if err := s.shifts.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete shift")
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, shift.OwnerID, "Shift Cancelled",
			fmt.Sprintf("Your shift %q on %s has been cancelled.", shift.Title, shift.StartTime.Format("2006-01-02 15:04")))
	}
	return nil
}
