package models

import "time"

// Shift is an official, time-bounded work slot assigned to one employee.
// Owner name and role are denormalized for display. Invariant: StartTime < EndTime.
type Shift struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	StartTime time.Time `db:"start_time" json:"startTime"`
	EndTime   time.Time `db:"end_time" json:"endTime"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	OwnerName string    `db:"owner_name" json:"ownerName"`
	OwnerRole string    `db:"owner_role" json:"ownerRole"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ShiftFilter constrains shift listing queries.
type ShiftFilter struct {
	Title    string
	Page     int
	PageSize int
}
