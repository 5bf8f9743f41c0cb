package models

import "time"

// NotificationStatus tracks outbox delivery progress.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification is an outbox row written in the same request that triggered
// it and delivered asynchronously. A delivery failure never affects the
// workflow that produced the notification.
type Notification struct {
	ID          string             `db:"id" json:"id"`
	RecipientID string             `db:"recipient_id" json:"recipientId"`
	Subject     string             `db:"subject" json:"subject"`
	Body        string             `db:"body" json:"body"`
	Status      NotificationStatus `db:"status" json:"status"`
	Attempts    int                `db:"attempts" json:"attempts"`
	CreatedAt   time.Time          `db:"created_at" json:"createdAt"`
	SentAt      *time.Time         `db:"sent_at" json:"sentAt,omitempty"`
}
