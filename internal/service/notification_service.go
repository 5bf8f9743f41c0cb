package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/lit-planner/scheduler-api/internal/models"
	"github.com/lit-planner/scheduler-api/pkg/jobs"
	"github.com/lit-planner/scheduler-api/pkg/mailer"
)

type notificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListPending(ctx context.Context, limit int) ([]models.Notification, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, attempts int, exhausted bool) error
}

type contactReader interface {
	FindByID(ctx context.Context, id string) (*models.EmployeeContact, error)
}

// Notifier is the fire-and-forget hook the workflow services call on state
// changes. Implementations must never propagate delivery failures into the
// calling request.
type Notifier interface {
	Notify(ctx context.Context, recipientID, subject, body string)
}

// NotificationService writes outbox rows and dispatches them through a worker
// queue. The outbox write happens in the request; delivery is asynchronous so
// an SMTP outage never rolls back a committed swap.
type NotificationService struct {
	store      notificationStore
	directory  contactReader
	sender     mailer.Sender
	queue      *jobs.Queue
	maxRetries int
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewNotificationService constructs the service. Call StartDispatcher before
// serving traffic.
func NewNotificationService(store notificationStore, directory contactReader, sender mailer.Sender, maxRetries int, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	svc := &NotificationService{
		store:      store,
		directory:  directory,
		sender:     sender,
		maxRetries: maxRetries,
		logger:     logger,
	}
	return svc
}

// SetMetrics attaches delivery instrumentation. Safe to leave unset.
func (s *NotificationService) SetMetrics(metrics *MetricsService) {
	s.metrics = metrics
}

// StartDispatcher spins up the delivery workers and re-enqueues any rows left
// pending by a previous run.
func (s *NotificationService) StartDispatcher(ctx context.Context, workers int) {
	s.queue = jobs.NewQueue("notifications", s.deliver, jobs.QueueConfig{
		Workers:    workers,
		MaxRetries: s.maxRetries,
		Logger:     s.logger,
	})
	s.queue.Start(ctx)

	pending, err := s.store.ListPending(ctx, 0)
	if err != nil {
		s.logger.Warn("failed to replay pending notifications", zap.Error(err))
		return
	}
	for _, n := range pending {
		s.enqueue(n)
	}
}

// StopDispatcher drains the delivery workers.
func (s *NotificationService) StopDispatcher() {
	if s.queue != nil {
		s.queue.Stop()
	}
}

// Notify records and schedules a notification. Failures are logged, never
// returned; the triggering workflow has already committed.
func (s *NotificationService) Notify(ctx context.Context, recipientID, subject, body string) {
	notification := &models.Notification{
		RecipientID: recipientID,
		Subject:     subject,
		Body:        body,
	}
	if err := s.store.Create(ctx, notification); err != nil {
		s.logger.Error("failed to record notification",
			zap.String("recipient_id", recipientID),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return
	}
	s.enqueue(*notification)
}

func (s *NotificationService) enqueue(notification models.Notification) {
	if s.queue == nil {
		return
	}
	job := jobs.Job{ID: notification.ID, Type: "notification", Payload: notification}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue notification", zap.String("notification_id", notification.ID), zap.Error(err))
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	notification, ok := job.Payload.(models.Notification)
	if !ok {
		s.logger.Error("unexpected notification payload", zap.String("job_id", job.ID))
		return nil
	}

	contact, err := s.directory.FindByID(ctx, notification.RecipientID)
	if err != nil {
		if err == sql.ErrNoRows {
			s.logger.Warn("notification recipient unknown", zap.String("recipient_id", notification.RecipientID))
			_ = s.store.MarkFailed(ctx, notification.ID, job.Attempt+1, true)
			return nil
		}
		return fmt.Errorf("resolve recipient %s: %w", notification.RecipientID, err)
	}

	if err := s.sender.Send(contact.Email, notification.Subject, notification.Body); err != nil {
		attempts := job.Attempt + 1
		exhausted := attempts > s.maxRetries
		if markErr := s.store.MarkFailed(ctx, notification.ID, attempts, exhausted); markErr != nil {
			s.logger.Warn("failed to record notification failure", zap.String("notification_id", notification.ID), zap.Error(markErr))
		}
		s.metrics.RecordNotification(false)
		return fmt.Errorf("deliver notification %s: %w", notification.ID, err)
	}

	s.metrics.RecordNotification(true)
	if err := s.store.MarkSent(ctx, notification.ID); err != nil {
		s.logger.Warn("failed to mark notification sent", zap.String("notification_id", notification.ID), zap.Error(err))
	}
	return nil
}
