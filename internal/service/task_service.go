package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
)

type taskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id, userID string) (bool, error)
	Stats(ctx context.Context, userID string, today time.Time) (*models.TaskStats, error)
}

// CreateTaskRequest opens a personal to-do.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	ClientName  *string `json:"client_name,omitempty"`
}

// UpdateTaskRequest edits a task. Moving to IN_PROGRESS stamps the
// start time; moving to COMPLETED stamps completion and accumulates the
// minutes spent.
type UpdateTaskRequest struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	ClientName  *string            `json:"client_name,omitempty"`
	Status      *models.TaskStatus `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
}

// TaskService implements personal tasks with simple time tracking.
// Tasks are private: every operation is scoped to the owning user.
type TaskService struct {
	repo      taskRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaskService constructs a TaskService.
func NewTaskService(repo taskRepository, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TaskService{repo: repo, validator: validate, logger: logger}
}

// Create opens a task for the caller.
func (s *TaskService) Create(ctx context.Context, userID string, req CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}

	task := &models.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ClientName:  req.ClientName,
		Status:      models.TaskPending,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}
	return task, nil
}

// List returns the caller's tasks matching the filter.
func (s *TaskService) List(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	filter.UserID = &userID
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}
	return tasks, nil
}

// Update edits one of the caller's tasks and maintains the time
// tracking fields across status changes.
func (s *TaskService) Update(ctx context.Context, userID, id string, req UpdateTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	if task.UserID != userID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "task belongs to another user")
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.ClientName != nil {
		task.ClientName = req.ClientName
	}
	if req.Status != nil && *req.Status != task.Status {
		now := time.Now().UTC()
		switch *req.Status {
		case models.TaskInProgress:
			if task.StartedAt == nil {
				task.StartedAt = &now
			}
		case models.TaskCompleted:
			task.CompletedAt = &now
			if task.StartedAt != nil {
				spent := int(now.Sub(*task.StartedAt).Minutes())
				if task.TimeSpentMinutes != nil {
					spent += *task.TimeSpentMinutes
				}
				task.TimeSpentMinutes = &spent
			}
		case models.TaskPending:
			task.StartedAt = nil
			task.CompletedAt = nil
		}
		task.Status = *req.Status
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task")
	}
	return task, nil
}

// Delete removes one of the caller's tasks.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "task not found")
	}
	return nil
}

// Stats returns the caller's task counters.
func (s *TaskService) Stats(ctx context.Context, userID string) (*models.TaskStats, error) {
	stats, err := s.repo.Stats(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task stats")
	}
	return stats, nil
}
