package models

import "time"

// ProposalStatus captures workflow states shared by shift and swap proposals.
type ProposalStatus string

const (
	ProposalStatusProposed            ProposalStatus = "PROPOSED"
	ProposalStatusAccepted            ProposalStatus = "ACCEPTED"
	ProposalStatusRejected            ProposalStatus = "REJECTED"
	ProposalStatusAlternativeProposed ProposalStatus = "ALTERNATIVE_PROPOSED"
	ProposalStatusCancelled           ProposalStatus = "CANCELLED"
)

// shiftProposalTransitions is the explicit transition table for shift
// proposals. Statuses without an entry are terminal.
var shiftProposalTransitions = map[ProposalStatus]map[ProposalStatus]struct{}{
	ProposalStatusProposed: {
		ProposalStatusAccepted:            {},
		ProposalStatusRejected:            {},
		ProposalStatusAlternativeProposed: {},
		ProposalStatusCancelled:           {},
	},
}

// swapProposalTransitions is narrower: no alternative branch, no cancel.
var swapProposalTransitions = map[ProposalStatus]map[ProposalStatus]struct{}{
	ProposalStatusProposed: {
		ProposalStatusAccepted: {},
		ProposalStatusRejected: {},
	},
}

// CanTransitionShiftProposal reports whether a shift proposal may move from
// one status to another.
func CanTransitionShiftProposal(from, to ProposalStatus) bool {
	targets, ok := shiftProposalTransitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// CanTransitionSwapProposal reports whether a swap proposal may move from one
// status to another.
func CanTransitionSwapProposal(from, to ProposalStatus) bool {
	targets, ok := swapProposalTransitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// ShiftProposal is an employee's request to be granted a new shift.
// Employee name and role are snapshotted at creation. Rows are never deleted;
// cancellations and rejections are kept for reporting.
type ShiftProposal struct {
	ID                string         `db:"id" json:"id"`
	EmployeeID        string         `db:"employee_id" json:"employeeId"`
	EmployeeName      string         `db:"employee_name" json:"employeeName"`
	EmployeeRole      string         `db:"employee_role" json:"employeeRole"`
	ProposedTitle     string         `db:"proposed_title" json:"proposedTitle"`
	ProposedStartTime time.Time      `db:"proposed_start_time" json:"proposedStartTime"`
	ProposedEndTime   time.Time      `db:"proposed_end_time" json:"proposedEndTime"`
	Status            ProposalStatus `db:"status" json:"status"`

	ManagerAlternativeTitle     *string    `db:"manager_alternative_title" json:"managerAlternativeTitle,omitempty"`
	ManagerAlternativeStartTime *time.Time `db:"manager_alternative_start_time" json:"managerAlternativeStartTime,omitempty"`
	ManagerAlternativeEndTime   *time.Time `db:"manager_alternative_end_time" json:"managerAlternativeEndTime,omitempty"`
	ManagerComment              *string    `db:"manager_comment" json:"managerComment,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
