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

type swapProposalRepository interface {
	Create(ctx context.Context, proposal *models.SwapProposal) error
	FindByID(ctx context.Context, id string) (*models.SwapProposal, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]models.SwapProposal, error)
	ListAll(ctx context.Context) ([]models.SwapProposal, error)
	UpdateDecision(ctx context.Context, exec sqlx.ExtContext, id string, status models.ProposalStatus, comment *string) error
}

type swapAssignmentStore interface {
	FindByEmployeeAndShift(ctx context.Context, employeeID, shiftID string) (*models.ShiftAssignment, error)
	FindOverlapping(ctx context.Context, exec sqlx.ExtContext, employeeID string, start, end time.Time) ([]models.AssignmentDetail, error)
	ExistsForEmployeeAndShift(ctx context.Context, exec sqlx.ExtContext, employeeID, shiftID string) (bool, error)
	LockByEmployeeAndShift(ctx context.Context, tx *sqlx.Tx, employeeID, shiftID string) (*models.AssignmentDetail, error)
	LockBySignature(ctx context.Context, tx *sqlx.Tx, employeeID, title string, start, end time.Time) ([]models.AssignmentDetail, error)
	Reassign(ctx context.Context, tx *sqlx.Tx, assignmentID, newShiftID string) error
}

// SwapProposalService runs the swap workflow. An employee offers their
// current shift and names the shift they want by title and window; on
// acceptance the manager names the counterparty and both assignments trade
// shifts atomically. Either both sides move or neither does.
type SwapProposalService struct {
	swaps       swapProposalRepository
	assignments swapAssignmentStore
	directory   employeeDirectory
	tx          txProvider
	notifier    Notifier
	invalidator scheduleInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSwapProposalService creates a service instance.
func NewSwapProposalService(
	swaps swapProposalRepository,
	assignments swapAssignmentStore,
	directory employeeDirectory,
	tx txProvider,
	notifier Notifier,
	validate *validator.Validate,
	logger *zap.Logger,
) *SwapProposalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SwapProposalService{
		swaps:       swaps,
		assignments: assignments,
		directory:   directory,
		tx:          tx,
		notifier:    notifier,
		validator:   validate,
		logger:      logger,
	}
}

// SetInvalidator attaches schedule cache invalidation. Safe to leave unset.
func (s *SwapProposalService) SetInvalidator(invalidator scheduleInvalidator) {
	s.invalidator = invalidator
}

// Create submits a swap proposal. The caller must actually hold the shift
// they are offering, and the requested window must be free in their confirmed
// schedule.
func (s *SwapProposalService) Create(ctx context.Context, actor models.Identity, req dto.CreateSwapProposalRequest) (*models.SwapProposal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid swap payload")
	}
	if !req.ProposedStartTime.Before(req.ProposedEndTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "proposed start must be before end")
	}

	if _, err := s.assignments.FindByEmployeeAndShift(ctx, actor.EmployeeID, req.CurrentShiftID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrIntegrity, "you are not assigned to the offered shift")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify assignment")
	}

	conflicts, err := s.assignments.FindOverlapping(ctx, nil, actor.EmployeeID, req.ProposedStartTime.UTC(), req.ProposedEndTime.UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check conflicts")
	}
	if len(conflicts) > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("employee has %d overlapping assignment(s) in the requested window", len(conflicts)))
	}

	contact, err := s.directory.FindByID(ctx, actor.EmployeeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve employee")
	}

	proposal := &models.SwapProposal{
		EmployeeID:        contact.ID,
		EmployeeName:      contact.FullName,
		EmployeeRole:      contact.Role,
		CurrentShiftID:    req.CurrentShiftID,
		ProposedTitle:     req.ProposedTitle,
		ProposedStartTime: req.ProposedStartTime.UTC(),
		ProposedEndTime:   req.ProposedEndTime.UTC(),
		Status:            models.ProposalStatusProposed,
	}
	if err := s.swaps.Create(ctx, proposal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create swap proposal")
	}
	return proposal, nil
}

// Get loads a swap proposal. Employees may only read their own.
func (s *SwapProposalService) Get(ctx context.Context, actor models.Identity, id string) (*models.SwapProposal, error) {
	proposal, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal.EmployeeID != actor.EmployeeID && !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot view another employee's swap proposal")
	}
	return proposal, nil
}

// ListMine returns the calling employee's swap proposals.
func (s *SwapProposalService) ListMine(ctx context.Context, actor models.Identity) ([]models.SwapProposal, error) {
	proposals, err := s.swaps.ListByEmployee(ctx, actor.EmployeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list swap proposals")
	}
	return proposals, nil
}

// ListAll returns every swap proposal for approver review.
func (s *SwapProposalService) ListAll(ctx context.Context, actor models.Identity) ([]models.SwapProposal, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may list all swap proposals")
	}
	proposals, err := s.swaps.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list swap proposals")
	}
	return proposals, nil
}

// Accept executes the swap. Both assignments are row-locked, both employees
// are re-validated against the schedule they would inherit, and the two
// reassignments plus the status flip commit together. Any failure rolls the
// whole exchange back.
func (s *SwapProposalService) Accept(ctx context.Context, actor models.Identity, id string, req dto.AcceptSwapRequest) (*models.SwapProposal, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may accept swap proposals")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid swap decision payload")
	}

	proposal, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionSwapProposal(proposal.Status, models.ProposalStatusAccepted) {
		return nil, appErrors.Clone(appErrors.ErrInvalidState,
			fmt.Sprintf("swap proposal in status %s cannot be accepted", proposal.Status))
	}
	if req.SwapEmployeeID == proposal.EmployeeID {
		return nil, appErrors.Clone(appErrors.ErrIntegrity, "cannot swap an employee with themselves")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Lock the proposer's side first. If they no longer hold the offered
	// shift the proposal is stale.
	var offered *models.AssignmentDetail
	offered, err = s.assignments.LockByEmployeeAndShift(ctx, tx, proposal.EmployeeID, proposal.CurrentShiftID)
	if err != nil {
		if err == sql.ErrNoRows {
			err = appErrors.Clone(appErrors.ErrIntegrity, "proposer no longer holds the offered shift")
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to lock offered assignment")
	}

	var target *models.AssignmentDetail
	target, err = s.lockTarget(ctx, tx, proposal, req)
	if err != nil {
		return nil, err
	}
	if offered.ShiftID == target.ShiftID {
		err = appErrors.Clone(appErrors.ErrIntegrity, "offered and target shifts are the same")
		return nil, err
	}

	// Each side must be free in the window they would inherit, ignoring the
	// assignment they are trading away.
	if err = s.checkSwapConflicts(ctx, tx, proposal.EmployeeID, offered.ID, target.StartTime, target.EndTime); err != nil {
		return nil, err
	}
	if err = s.checkSwapConflicts(ctx, tx, req.SwapEmployeeID, target.ID, offered.StartTime, offered.EndTime); err != nil {
		return nil, err
	}

	// A degenerate exchange would leave a duplicate (employee, shift) pair.
	if err = s.checkNotAlreadyAssigned(ctx, tx, proposal.EmployeeID, target.ShiftID); err != nil {
		return nil, err
	}
	if err = s.checkNotAlreadyAssigned(ctx, tx, req.SwapEmployeeID, offered.ShiftID); err != nil {
		return nil, err
	}

	if err = s.assignments.Reassign(ctx, tx, offered.ID, target.ShiftID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reassign proposer")
	}
	if err = s.assignments.Reassign(ctx, tx, target.ID, offered.ShiftID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reassign counterparty")
	}

	if err = s.swaps.UpdateDecision(ctx, tx, proposal.ID, models.ProposalStatusAccepted, nil); err != nil {
		if err == sql.ErrNoRows {
			err = appErrors.Clone(appErrors.ErrInvalidState, "swap proposal was decided concurrently")
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update swap proposal")
	}

	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit swap")
	}
	proposal.Status = models.ProposalStatusAccepted

	if s.invalidator != nil {
		s.invalidator.InvalidateSchedule(ctx, proposal.EmployeeID, req.SwapEmployeeID)
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, proposal.EmployeeID, "Shift Swap Accepted",
			fmt.Sprintf("Your swap has been accepted. You now work %q from %s to %s.",
				target.ShiftTitle, target.StartTime.Format(time.RFC3339), target.EndTime.Format(time.RFC3339)))
		s.notifier.Notify(ctx, req.SwapEmployeeID, "Shift Swap Accepted",
			fmt.Sprintf("A shift swap has been accepted. You now work %q from %s to %s.",
				offered.ShiftTitle, offered.StartTime.Format(time.RFC3339), offered.EndTime.Format(time.RFC3339)))
	}
	return proposal, nil
}

// Decline rejects a swap proposal. No assignment is touched.
func (s *SwapProposalService) Decline(ctx context.Context, actor models.Identity, id string, req dto.DeclineSwapRequest) (*models.SwapProposal, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may decline swap proposals")
	}

	proposal, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionSwapProposal(proposal.Status, models.ProposalStatusRejected) {
		return nil, appErrors.Clone(appErrors.ErrInvalidState,
			fmt.Sprintf("swap proposal in status %s cannot be declined", proposal.Status))
	}

	var comment *string
	if req.Comment != "" {
		comment = &req.Comment
	}
	if err := s.swaps.UpdateDecision(ctx, nil, proposal.ID, models.ProposalStatusRejected, comment); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "swap proposal was decided concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decline swap proposal")
	}
	proposal.Status = models.ProposalStatusRejected
	proposal.ManagerComment = comment

	if s.notifier != nil {
		s.notifier.Notify(ctx, proposal.EmployeeID, "Shift Swap Declined",
			fmt.Sprintf("Your swap proposal for %q has been declined.", proposal.ProposedTitle))
	}
	return proposal, nil
}

// lockTarget resolves and locks the counterparty's assignment. A caller
// supplied shift id wins; otherwise the counterparty's assignments are
// matched by the proposed shift signature, and anything but exactly one
// match aborts the swap.
func (s *SwapProposalService) lockTarget(ctx context.Context, tx *sqlx.Tx, proposal *models.SwapProposal, req dto.AcceptSwapRequest) (*models.AssignmentDetail, error) {
	if req.TargetShiftID != "" {
		target, err := s.assignments.LockByEmployeeAndShift(ctx, tx, req.SwapEmployeeID, req.TargetShiftID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "counterparty is not assigned to the target shift")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to lock target assignment")
		}
		return target, nil
	}

	matches, err := s.assignments.LockBySignature(ctx, tx, req.SwapEmployeeID, proposal.ProposedTitle, proposal.ProposedStartTime, proposal.ProposedEndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to lock target assignment")
	}
	switch len(matches) {
	case 0:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "counterparty has no assignment matching the requested shift")
	case 1:
		return &matches[0], nil
	default:
		return nil, appErrors.Clone(appErrors.ErrIntegrity,
			fmt.Sprintf("counterparty has %d assignments matching the requested shift, pass targetShiftId to disambiguate", len(matches)))
	}
}

func (s *SwapProposalService) checkSwapConflicts(ctx context.Context, tx *sqlx.Tx, employeeID, tradedAssignmentID string, start, end time.Time) error {
	conflicts, err := s.assignments.FindOverlapping(ctx, tx, employeeID, start, end)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check conflicts")
	}
	conflicts = ExcludeAssignment(conflicts, tradedAssignmentID)
	if len(conflicts) > 0 {
		return appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("employee %s has %d overlapping assignment(s) in the inherited window", employeeID, len(conflicts)))
	}
	return nil
}

func (s *SwapProposalService) checkNotAlreadyAssigned(ctx context.Context, tx *sqlx.Tx, employeeID, shiftID string) error {
	exists, err := s.assignments.ExistsForEmployeeAndShift(ctx, tx, employeeID, shiftID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("employee %s already holds the shift they would inherit", employeeID))
	}
	return nil
}

func (s *SwapProposalService) load(ctx context.Context, id string) (*models.SwapProposal, error) {
	proposal, err := s.swaps.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "swap proposal not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load swap proposal")
	}
	return proposal, nil
}
