package dto

import "time"

// CreateShiftProposalRequest is the payload an employee submits to request a
// new shift. The employee identity comes from the caller's token, never from
// the body.
type CreateShiftProposalRequest struct {
	ProposedTitle     string    `json:"proposedTitle" validate:"required"`
	ProposedStartTime time.Time `json:"proposedStartTime" validate:"required"`
	ProposedEndTime   time.Time `json:"proposedEndTime" validate:"required"`
}

// UpdateShiftProposalRequest amends a proposal that is still PROPOSED.
type UpdateShiftProposalRequest struct {
	ProposedTitle     string    `json:"proposedTitle" validate:"required"`
	ProposedStartTime time.Time `json:"proposedStartTime" validate:"required"`
	ProposedEndTime   time.Time `json:"proposedEndTime" validate:"required"`
}

// RejectProposalRequest carries the manager's comment on rejection.
type RejectProposalRequest struct {
	Comment string `json:"comment"`
}

// AlternativeProposalRequest carries the manager's counter-offer.
type AlternativeProposalRequest struct {
	Title     string    `json:"title" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
	Comment   string    `json:"comment"`
}
