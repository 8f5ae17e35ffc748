package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/workflow"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
)

type reminderJobRepository interface {
	ListActive(ctx context.Context) ([]models.Job, error)
	MarkReminded(ctx context.Context, id string, ts time.Time) error
}

type reminderNotifier interface {
	NotifyUser(ctx context.Context, n *models.Notification)
}

type reminderUserRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
}

// SweepResult summarises one reminder sweep run.
type SweepResult struct {
	Scanned     int `json:"scanned"`
	Reminded24h int `json:"reminded_24h"`
	Reminded48h int `json:"reminded_48h"`
	Snoozed     int `json:"snoozed"`
}

// ReminderService runs the inactivity sweep: jobs idle past 24 business
// hours get a nudge, jobs idle past 48 an escalation. Snoozed jobs and
// jobs awaiting a client reply are left alone.
type ReminderService struct {
	repo     reminderJobRepository
	users    reminderUserRepository
	notifier reminderNotifier
	calendar workflow.BusinessHourFunc
	logger   *zap.Logger
}

// NewReminderService constructs a ReminderService.
func NewReminderService(repo reminderJobRepository, users reminderUserRepository, notifier reminderNotifier, calendar workflow.BusinessHourFunc, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if calendar == nil {
		calendar = workflow.DefaultCalendar
	}
	return &ReminderService{repo: repo, users: users, notifier: notifier, calendar: calendar, logger: logger}
}

// Sweep walks every active job and sends due reminders. A failure on
// one job is logged and the sweep moves on; reminders are best effort.
func (s *ReminderService) Sweep(ctx context.Context) (*SweepResult, error) {
	jobs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list active jobs")
	}

	now := time.Now().UTC()
	result := &SweepResult{Scanned: len(jobs)}

	for i := range jobs {
		job := &jobs[i]
		if job.LastActivityAt == nil {
			continue
		}
		if job.ReminderSnoozedTo != nil && now.Before(*job.ReminderSnoozedTo) {
			result.Snoozed++
			continue
		}

		level := workflow.ReminderDue(*job.LastActivityAt, job.LastReminderSentAt, job.ReminderSnoozedTo, now, s.calendar)
		if level == workflow.ReminderNone {
			continue
		}

		s.sendReminders(ctx, job, level)
		if err := s.repo.MarkReminded(ctx, job.ID, now); err != nil {
			s.logger.Warn("failed to mark job reminded", zap.String("job_id", job.ID), zap.Error(err))
			continue
		}

		switch level {
		case workflow.Reminder24h:
			result.Reminded24h++
		case workflow.Reminder48h:
			result.Reminded48h++
		}
	}

	s.logger.Info("reminder sweep finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("reminded_24h", result.Reminded24h),
		zap.Int("reminded_48h", result.Reminded48h),
		zap.Int("snoozed", result.Snoozed))

	return result, nil
}

func (s *ReminderService) sendReminders(ctx context.Context, job *models.Job, level workflow.ReminderLevel) {
	typ := models.NotificationJobInactive24h
	title := fmt.Sprintf("%s has been quiet for a day", job.Reference)
	if level == workflow.Reminder48h {
		typ = models.NotificationJobInactive48h
		title = fmt.Sprintf("%s has been quiet for two days", job.Reference)
	}

	// The first nudge goes to the assignee alone; the escalation pulls in
	// the whole job party plus every admin.
	var recipients []string
	if level == workflow.Reminder24h && job.AssignedToID != nil {
		recipients = []string{*job.AssignedToID}
	} else {
		recipients = job.Parties()
		if level == workflow.Reminder48h {
			recipients = append(recipients, s.adminIDs(ctx)...)
		}
	}

	actionURL := "/jobs/" + job.ID
	seen := make(map[string]struct{})
	for _, userID := range recipients {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		s.notifier.NotifyUser(ctx, &models.Notification{
			UserID:    userID,
			Type:      typ,
			Title:     title,
			Content:   fmt.Sprintf("%s for %s needs attention", job.Title, job.ClientName),
			JobID:     &job.ID,
			ActionURL: &actionURL,
		})
	}
}

func (s *ReminderService) adminIDs(ctx context.Context) []string {
	role := models.RoleAdmin
	active := true
	admins, _, err := s.users.List(ctx, models.UserFilter{Role: &role, Active: &active, PageSize: 100})
	if err != nil {
		s.logger.Warn("failed to list admins for escalation", zap.Error(err))
		return nil
	}
	ids := make([]string, 0, len(admins))
	for i := range admins {
		ids = append(ids, admins[i].ID)
	}
	return ids
}
