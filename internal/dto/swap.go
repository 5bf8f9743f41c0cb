package dto

import "time"

// CreateSwapProposalRequest is the payload an employee submits to trade their
// current shift for an existing shift matching the proposed signature.
type CreateSwapProposalRequest struct {
	CurrentShiftID    string    `json:"currentShiftId" validate:"required"`
	ProposedTitle     string    `json:"proposedTitle" validate:"required"`
	ProposedStartTime time.Time `json:"proposedStartTime" validate:"required"`
	ProposedEndTime   time.Time `json:"proposedEndTime" validate:"required"`
}

// AcceptSwapRequest identifies the counterparty for a swap. TargetShiftID is
// optional; when present the engine uses it directly instead of matching the
// counterparty's assignments by shift signature.
type AcceptSwapRequest struct {
	SwapEmployeeID string `json:"swapEmployeeId" validate:"required"`
	TargetShiftID  string `json:"targetShiftId"`
}

// DeclineSwapRequest carries the manager's comment on decline.
type DeclineSwapRequest struct {
	Comment string `json:"comment"`
}
