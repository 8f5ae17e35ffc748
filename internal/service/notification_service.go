package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/workflow"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/worker"
)

type notificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// JobEvent carries everything needed to fan a job happening out to its
// audience. Title and Content describe the generic variant; mentioned
// users receive the mention variant instead.
type JobEvent struct {
	Type         models.NotificationType
	ActorID      string
	ActorName    string
	Job          *models.Job
	MentionedIDs []string
	CommentID    *string
	Title        string
	Content      string
}

// NotificationService creates and queries notifications. Delivery runs
// through a background queue so request handlers never block on it, and
// failures are logged rather than surfaced: a lost notification must
// not fail the action that caused it.
type NotificationService struct {
	repo   notificationRepository
	queue  *worker.Queue
	logger *zap.Logger
}

// NewNotificationService constructs a NotificationService. Call Start
// before publishing events and Stop during shutdown.
func NewNotificationService(repo notificationRepository, logger *zap.Logger, queueCfg worker.QueueConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{repo: repo, logger: logger}
	queueCfg.Logger = logger
	s.queue = worker.NewQueue("notifications", s.deliver, queueCfg)
	return s
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the delivery workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// PublishJobEvent plans the recipient set for an event and enqueues one
// notification per recipient. Errors are swallowed after logging.
func (s *NotificationService) PublishJobEvent(ctx context.Context, ev JobEvent) {
	recipients := workflow.PlanRecipients(workflow.Event{
		Type:         ev.Type,
		ActorID:      ev.ActorID,
		Parties:      ev.Job.Parties(),
		MentionedIDs: ev.MentionedIDs,
	})

	actionURL := "/jobs/" + ev.Job.ID
	for _, recipient := range recipients {
		n := &models.Notification{
			ID:        uuid.NewString(),
			UserID:    recipient.UserID,
			Type:      ev.Type,
			Title:     ev.Title,
			Content:   ev.Content,
			JobID:     &ev.Job.ID,
			CommentID: ev.CommentID,
			ActionURL: &actionURL,
			CreatedAt: time.Now().UTC(),
		}
		if recipient.Mention {
			n.Type = models.NotificationMention
			n.Title = fmt.Sprintf("%s mentioned you on %s", ev.ActorName, ev.Job.Reference)
		}
		if err := s.queue.Enqueue(worker.Task{ID: n.ID, Type: string(n.Type), Payload: n}); err != nil {
			s.logger.Warn("failed to enqueue notification",
				zap.String("user_id", recipient.UserID),
				zap.String("job_id", ev.Job.ID),
				zap.Error(err))
		}
	}
}

// NotifyUser queues a single direct notification outside the fan-out
// path, used by the reminder sweep.
func (s *NotificationService) NotifyUser(ctx context.Context, n *models.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := s.queue.Enqueue(worker.Task{ID: n.ID, Type: string(n.Type), Payload: n}); err != nil {
		s.logger.Warn("failed to enqueue notification",
			zap.String("user_id", n.UserID),
			zap.Error(err))
	}
}

func (s *NotificationService) deliver(ctx context.Context, task worker.Task) error {
	n, ok := task.Payload.(*models.Notification)
	if !ok {
		s.logger.Error("notification task carried unexpected payload", zap.String("task_id", task.ID))
		return nil
	}
	return s.repo.Create(ctx, n)
}

// List returns a user's notifications with the unread count.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, int, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count unread notifications")
	}
	return notifications, unread, nil
}

// MarkRead flags one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	ok, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	return nil
}

// MarkAllRead flags every unread notification of the caller as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notifications read")
	}
	return nil
}
