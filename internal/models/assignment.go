package models

import "time"

// AssignmentStatus captures the lifecycle of a shift assignment.
type AssignmentStatus string

const (
	AssignmentStatusConfirmed AssignmentStatus = "CONFIRMED"
	AssignmentStatusCancelled AssignmentStatus = "CANCELLED"
)

// ShiftAssignment binds an employee to a shift. Per employee, no two
// CONFIRMED assignments may overlap on the half-open [start, end) window.
type ShiftAssignment struct {
	ID         string           `db:"id" json:"id"`
	EmployeeID string           `db:"employee_id" json:"employeeId"`
	ShiftID    string           `db:"shift_id" json:"shiftId"`
	Status     AssignmentStatus `db:"status" json:"status"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updatedAt"`
}

// AssignmentDetail joins an assignment with its shift window for overlap
// checks and swap matching.
type AssignmentDetail struct {
	ID         string           `db:"id" json:"id"`
	EmployeeID string           `db:"employee_id" json:"employeeId"`
	ShiftID    string           `db:"shift_id" json:"shiftId"`
	Status     AssignmentStatus `db:"status" json:"status"`
	ShiftTitle string           `db:"shift_title" json:"shiftTitle"`
	StartTime  time.Time        `db:"start_time" json:"startTime"`
	EndTime    time.Time        `db:"end_time" json:"endTime"`
}
