package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/authz"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/workflow"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
)

type commentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByJob(ctx context.Context, jobID string) ([]models.Comment, error)
}

type commentJobRepository interface {
	FindByID(ctx context.Context, id string) (*models.Job, error)
	TouchActivity(ctx context.Context, id string, ts time.Time) error
	AppendTimeline(ctx context.Context, entry *models.StatusUpdate) error
}

type commentUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CommentService attaches comments to jobs, resolves @-mentions, and
// fans the resulting notifications out to the job's audience.
type CommentService struct {
	repo      commentRepository
	jobs      commentJobRepository
	users     commentUserRepository
	notifier  jobNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCommentService constructs a CommentService.
func NewCommentService(repo commentRepository, jobs commentJobRepository, users commentUserRepository, notifier jobNotifier, validate *validator.Validate, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CommentService{repo: repo, jobs: jobs, users: users, notifier: notifier, validator: validate, logger: logger}
}

// Add stores a comment, bumps the job's activity, records a timeline
// entry, and notifies the job's parties plus anyone mentioned.
func (s *CommentService) Add(ctx context.Context, actor Actor, jobID string, req models.AddCommentRequest) (*models.Comment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid comment payload")
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	if !authz.CanViewAllJobs(actor.Role) && !isParty(job, actor.ID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "job is not assigned to you")
	}

	comment := &models.Comment{
		JobID:   jobID,
		UserID:  actor.ID,
		Content: req.Content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create comment")
	}

	now := time.Now().UTC()
	if err := s.jobs.TouchActivity(ctx, jobID, now); err != nil {
		s.logger.Warn("failed to touch job activity", zap.String("job_id", jobID), zap.Error(err))
	}
	if err := s.jobs.AppendTimeline(ctx, &models.StatusUpdate{
		JobID:  jobID,
		UserID: actor.ID,
		Action: models.ActionCommentAdded,
	}); err != nil {
		s.logger.Warn("failed to append comment timeline entry", zap.String("job_id", jobID), zap.Error(err))
	}

	actorName := "Someone"
	if user, err := s.users.FindByID(ctx, actor.ID); err == nil {
		actorName = user.Name
	}

	s.notifier.PublishJobEvent(ctx, JobEvent{
		Type:         models.NotificationCommentAdded,
		ActorID:      actor.ID,
		ActorName:    actorName,
		Job:          job,
		MentionedIDs: workflow.ExtractMentions(req.Content),
		CommentID:    &comment.ID,
		Title:        fmt.Sprintf("%s commented on %s", actorName, job.Reference),
		Content:      req.Content,
	})

	return comment, nil
}

// List returns a job's comments oldest first.
func (s *CommentService) List(ctx context.Context, actor Actor, jobID string) ([]models.Comment, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	if !authz.CanViewAllJobs(actor.Role) && !isParty(job, actor.ID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "job is not assigned to you")
	}

	comments, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list comments")
	}
	return comments, nil
}
