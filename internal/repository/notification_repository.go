package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lit-planner/scheduler-api/internal/models"
)

// NotificationRepository persists the notification outbox.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a pending outbox row.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.Status == "" {
		notification.Status = models.NotificationStatusPending
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO notifications (id, recipient_id, subject, body, status, attempts, created_at, sent_at)
		VALUES (:id, :recipient_id, :subject, :body, :status, :attempts, :created_at, :sent_at)`
	if _, err := r.db.NamedExecContext(ctx, query, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListPending returns undelivered notifications, oldest first. Used on
// startup to re-enqueue rows that never left the outbox.
func (r *NotificationRepository) ListPending(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `SELECT id, recipient_id, subject, body, status, attempts, created_at, sent_at FROM notifications WHERE status = $1 ORDER BY created_at ASC LIMIT $2`
	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, models.NotificationStatusPending, limit); err != nil {
		return nil, fmt.Errorf("list pending notifications: %w", err)
	}
	return notifications, nil
}

// MarkSent stamps a notification as delivered.
func (r *NotificationRepository) MarkSent(ctx context.Context, id string) error {
	const query = `UPDATE notifications SET status = $2, sent_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, models.NotificationStatusSent, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check sent notification rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkFailed records a delivery attempt; the row stays FAILED once retries
// are exhausted and PENDING otherwise so the dispatcher can pick it up again.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id string, attempts int, exhausted bool) error {
	status := models.NotificationStatusPending
	if exhausted {
		status = models.NotificationStatusFailed
	}
	const query = `UPDATE notifications SET status = $2, attempts = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, attempts); err != nil {
		return fmt.Errorf("mark notification failed: %w", err)
	}
	return nil
}
