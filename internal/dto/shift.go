package dto

import "time"

// CreateShiftRequest creates an official shift directly (privileged callers).
type CreateShiftRequest struct {
	Title     string    `json:"title" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
	OwnerID   string    `json:"ownerId" validate:"required"`
}

// UpdateShiftRequest amends an official shift.
type UpdateShiftRequest struct {
	Title     string    `json:"title" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
}

// AssignShiftRequest binds an employee to an existing shift.
type AssignShiftRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	ShiftID    string `json:"shiftId" validate:"required"`
}
