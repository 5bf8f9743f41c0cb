package models

import "time"

// SwapProposal is an employee's request to trade their currently assigned
// shift (CurrentShiftID) for another employee's existing shift matching the
// proposed title and window. Lifecycle: PROPOSED then ACCEPTED or REJECTED.
type SwapProposal struct {
	ID                string         `db:"id" json:"id"`
	EmployeeID        string         `db:"employee_id" json:"employeeId"`
	EmployeeName      string         `db:"employee_name" json:"employeeName"`
	EmployeeRole      string         `db:"employee_role" json:"employeeRole"`
	CurrentShiftID    string         `db:"current_shift_id" json:"currentShiftId"`
	ProposedTitle     string         `db:"proposed_title" json:"proposedTitle"`
	ProposedStartTime time.Time      `db:"proposed_start_time" json:"proposedStartTime"`
	ProposedEndTime   time.Time      `db:"proposed_end_time" json:"proposedEndTime"`
	Status            ProposalStatus `db:"status" json:"status"`
	ManagerComment    *string        `db:"manager_comment" json:"managerComment,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
