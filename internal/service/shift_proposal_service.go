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
	"github.com/lit-planner/scheduler-api/pkg/export"
)

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// scheduleInvalidator drops cached schedules after assignments change.
type scheduleInvalidator interface {
	InvalidateSchedule(ctx context.Context, employeeIDs ...string)
}

type shiftProposalRepository interface {
	Create(ctx context.Context, proposal *models.ShiftProposal) error
	FindByID(ctx context.Context, id string) (*models.ShiftProposal, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]models.ShiftProposal, error)
	ListAll(ctx context.Context) ([]models.ShiftProposal, error)
	Update(ctx context.Context, exec sqlx.ExtContext, proposal *models.ShiftProposal, expectedStatus models.ProposalStatus) error
}

// ShiftProposalService runs the proposal workflow: employees submit requests
// for new shifts, approvers accept, reject, or counter with an alternative.
// Acceptance is the only transition with side effects; it creates the official
// shift and the assignment in the same transaction that flips the status.
type ShiftProposalService struct {
	proposals   shiftProposalRepository
	shifts      shiftRepository
	assignments assignmentRepository
	directory   employeeDirectory
	tx          txProvider
	notifier    Notifier
	invalidator scheduleInvalidator
	exporter    *export.CSVExporter
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewShiftProposalService creates a service instance.
func NewShiftProposalService(
	proposals shiftProposalRepository,
	shifts shiftRepository,
	assignments assignmentRepository,
	directory employeeDirectory,
	tx txProvider,
	notifier Notifier,
	validate *validator.Validate,
	logger *zap.Logger,
) *ShiftProposalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftProposalService{
		proposals:   proposals,
		shifts:      shifts,
		assignments: assignments,
		directory:   directory,
		tx:          tx,
		notifier:    notifier,
		exporter:    export.NewCSVExporter(),
		validator:   validate,
		logger:      logger,
	}
}

// SetInvalidator attaches schedule cache invalidation. Safe to leave unset.
func (s *ShiftProposalService) SetInvalidator(invalidator scheduleInvalidator) {
	s.invalidator = invalidator
}

// Create submits a new proposal on behalf of the calling employee. The
// proposed window must be free in the employee's confirmed schedule; an
// overlapping proposal is never persisted. Name and role are snapshotted from
// the directory so later renames do not rewrite history.
func (s *ShiftProposalService) Create(ctx context.Context, actor models.Identity, req dto.CreateShiftProposalRequest) (*models.ShiftProposal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid proposal payload")
	}
	if !req.ProposedStartTime.Before(req.ProposedEndTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "proposed start must be before end")
	}

	contact, err := s.directory.FindByID(ctx, actor.EmployeeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve employee")
	}

	conflicts, err := s.assignments.FindOverlapping(ctx, nil, actor.EmployeeID, req.ProposedStartTime.UTC(), req.ProposedEndTime.UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check conflicts")
	}
	if len(conflicts) > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("employee has %d overlapping assignment(s) in the proposed window", len(conflicts)))
	}

	proposal := &models.ShiftProposal{
		EmployeeID:        contact.ID,
		EmployeeName:      contact.FullName,
		EmployeeRole:      contact.Role,
		ProposedTitle:     req.ProposedTitle,
		ProposedStartTime: req.ProposedStartTime.UTC(),
		ProposedEndTime:   req.ProposedEndTime.UTC(),
		Status:            models.ProposalStatusProposed,
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create proposal")
	}
	return proposal, nil
}

// Get loads a proposal. Employees may only read their own.
func (s *ShiftProposalService) Get(ctx context.Context, actor models.Identity, id string) (*models.ShiftProposal, error) {
	proposal, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal.EmployeeID != actor.EmployeeID && !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot view another employee's proposal")
	}
	return proposal, nil
}

// ListMine returns the calling employee's proposals.
func (s *ShiftProposalService) ListMine(ctx context.Context, actor models.Identity) ([]models.ShiftProposal, error) {
	proposals, err := s.proposals.ListByEmployee(ctx, actor.EmployeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list proposals")
	}
	return proposals, nil
}

// ListAll returns every proposal for approver review.
func (s *ShiftProposalService) ListAll(ctx context.Context, actor models.Identity) ([]models.ShiftProposal, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may list all proposals")
	}
	proposals, err := s.proposals.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list proposals")
	}
	return proposals, nil
}

// Update amends a proposal that is still pending. Only the owner may edit,
// and only while the status is PROPOSED.
func (s *ShiftProposalService) Update(ctx context.Context, actor models.Identity, id string, req dto.UpdateShiftProposalRequest) (*models.ShiftProposal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid proposal payload")
	}
	if !req.ProposedStartTime.Before(req.ProposedEndTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "proposed start must be before end")
	}

	proposal, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal.EmployeeID != actor.EmployeeID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot edit another employee's proposal")
	}
	if proposal.Status != models.ProposalStatusProposed {
		return nil, appErrors.Clone(appErrors.ErrInvalidState,
			fmt.Sprintf("proposal in status %s can no longer be edited", proposal.Status))
	}

	proposal.ProposedTitle = req.ProposedTitle
	proposal.ProposedStartTime = req.ProposedStartTime.UTC()
	proposal.ProposedEndTime = req.ProposedEndTime.UTC()
	if err := s.proposals.Update(ctx, nil, proposal, models.ProposalStatusProposed); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "proposal was decided concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update proposal")
	}
	return proposal, nil
}

// Cancel withdraws a pending proposal. The row stays for reporting.
func (s *ShiftProposalService) Cancel(ctx context.Context, actor models.Identity, id string) (*models.ShiftProposal, error) {
	proposal, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal.EmployeeID != actor.EmployeeID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot cancel another employee's proposal")
	}
	if !models.CanTransitionShiftProposal(proposal.Status, models.ProposalStatusCancelled) {
		return nil, appErrors.Clone(appErrors.ErrInvalidState,
			fmt.Sprintf("proposal in status %s cannot be cancelled", proposal.Status))
	}

	from := proposal.Status
	proposal.Status = models.ProposalStatusCancelled
	if err := s.proposals.Update(ctx, nil, proposal, from); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "proposal was decided concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel proposal")
	}
	return proposal, nil
}

// Accept approves a proposal: the official shift and the proposer's
// assignment are created, and the status flips to ACCEPTED, all in one
// transaction. The conflict check runs inside the transaction so a
// concurrently accepted overlapping proposal cannot double-book the employee.
func (s *ShiftProposalService) Accept(ctx context.Context, actor models.Identity, id string) (*models.ShiftProposal, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may accept proposals")
	}

	proposal, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionShiftProposal(proposal.Status, models.ProposalStatusAccepted) {
		return nil, appErrors.Clone(appErrors.ErrInvalidState,
			fmt.Sprintf("proposal in status %s cannot be accepted", proposal.Status))
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

	var conflicts []models.AssignmentDetail
	conflicts, err = s.assignments.FindOverlapping(ctx, tx, proposal.EmployeeID, proposal.ProposedStartTime, proposal.ProposedEndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check conflicts")
	}
	if len(conflicts) > 0 {
		err = appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("employee has %d overlapping assignment(s) in the proposed window", len(conflicts)))
		return nil, err
	}

	shift := &models.Shift{
		Title:     proposal.ProposedTitle,
		StartTime: proposal.ProposedStartTime,
		EndTime:   proposal.ProposedEndTime,
		OwnerID:   proposal.EmployeeID,
		OwnerName: proposal.EmployeeName,
		OwnerRole: proposal.EmployeeRole,
	}
	if err = s.shifts.Create(ctx, tx, shift); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create shift")
	}

	assignment := &models.ShiftAssignment{
		EmployeeID: proposal.EmployeeID,
		ShiftID:    shift.ID,
		Status:     models.AssignmentStatusConfirmed,
	}
	if err = s.assignments.Create(ctx, tx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	proposal.Status = models.ProposalStatusAccepted
	if err = s.proposals.Update(ctx, tx, proposal, models.ProposalStatusProposed); err != nil {
		if err == sql.ErrNoRows {
			err = appErrors.Clone(appErrors.ErrInvalidState, "proposal was decided concurrently")
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update proposal")
	}

	if err = tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit acceptance")
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateSchedule(ctx, proposal.EmployeeID)
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, proposal.EmployeeID, "Shift Proposal Accepted",
			fmt.Sprintf("Your proposal %q from %s to %s has been accepted and added to the schedule.",
				proposal.ProposedTitle,
				proposal.ProposedStartTime.Format(time.RFC3339),
				proposal.ProposedEndTime.Format(time.RFC3339)))
	}
	return proposal, nil
}

// Reject declines a proposal with an optional comment.
func (s *ShiftProposalService) Reject(ctx context.Context, actor models.Identity, id string, req dto.RejectProposalRequest) (*models.ShiftProposal, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may reject proposals")
	}

	proposal, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionShiftProposal(proposal.Status, models.ProposalStatusRejected) {
		return nil, appErrors.Clone(appErrors.ErrInvalidState,
			fmt.Sprintf("proposal in status %s cannot be rejected", proposal.Status))
	}

	proposal.Status = models.ProposalStatusRejected
	if req.Comment != "" {
		comment := req.Comment
		proposal.ManagerComment = &comment
	}
	if err := s.proposals.Update(ctx, nil, proposal, models.ProposalStatusProposed); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "proposal was decided concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject proposal")
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, proposal.EmployeeID, "Shift Proposal Rejected",
			fmt.Sprintf("Your proposal %q has been rejected.", proposal.ProposedTitle))
	}
	return proposal, nil
}

// ProposeAlternative counters a proposal with a different shift. The original
// request is preserved; the alternative fields carry the counter-offer and
// the status becomes ALTERNATIVE_PROPOSED, which is terminal. If the employee
// wants the alternative they submit a fresh proposal for it.
func (s *ShiftProposalService) ProposeAlternative(ctx context.Context, actor models.Identity, id string, req dto.AlternativeProposalRequest) (*models.ShiftProposal, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may propose alternatives")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid alternative payload")
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "alternative start must be before end")
	}

	proposal, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionShiftProposal(proposal.Status, models.ProposalStatusAlternativeProposed) {
		return nil, appErrors.Clone(appErrors.ErrInvalidState,
			fmt.Sprintf("proposal in status %s cannot receive an alternative", proposal.Status))
	}

	title := req.Title
	start := req.StartTime.UTC()
	end := req.EndTime.UTC()
	proposal.Status = models.ProposalStatusAlternativeProposed
	proposal.ManagerAlternativeTitle = &title
	proposal.ManagerAlternativeStartTime = &start
	proposal.ManagerAlternativeEndTime = &end
	if req.Comment != "" {
		comment := req.Comment
		proposal.ManagerComment = &comment
	}
	if err := s.proposals.Update(ctx, nil, proposal, models.ProposalStatusProposed); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "proposal was decided concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record alternative")
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, proposal.EmployeeID, "Alternative Shift Proposed",
			fmt.Sprintf("A manager proposed %q from %s to %s instead of your request %q.",
				title, start.Format(time.RFC3339), end.Format(time.RFC3339), proposal.ProposedTitle))
	}
	return proposal, nil
}

// ExportCSV renders every proposal as a CSV report for approvers.
func (s *ShiftProposalService) ExportCSV(ctx context.Context, actor models.Identity) ([]byte, error) {
	if !actor.CanApprove {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only managers may export proposals")
	}
	proposals, err := s.proposals.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list proposals")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Employee", "Role", "Title", "Start", "End", "Status", "Comment", "Created"},
	}
	for _, p := range proposals {
		comment := ""
		if p.ManagerComment != nil {
			comment = *p.ManagerComment
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":       p.ID,
			"Employee": p.EmployeeName,
			"Role":     p.EmployeeRole,
			"Title":    p.ProposedTitle,
			"Start":    p.ProposedStartTime.Format(time.RFC3339),
			"End":      p.ProposedEndTime.Format(time.RFC3339),
			"Status":   string(p.Status),
			"Comment":  comment,
			"Created":  p.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := s.exporter.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	return data, nil
}

func (s *ShiftProposalService) load(ctx context.Context, id string) (*models.ShiftProposal, error) {
	proposal, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load proposal")
	}
	return proposal, nil
}
