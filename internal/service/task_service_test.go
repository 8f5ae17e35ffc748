package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
)

type mockTaskRepo struct {
	tasks map[string]*models.Task
}

func (m *mockTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = "t1"
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id string) (*models.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *task
	return &clone, nil
}

func (m *mockTaskRepo) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, task := range m.tasks {
		if filter.UserID != nil && task.UserID != *filter.UserID {
			continue
		}
		out = append(out, *task)
	}
	return out, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *models.Task) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return false, nil
	}
	delete(m.tasks, id)
	return true, nil
}

func (m *mockTaskRepo) Stats(ctx context.Context, userID string, today time.Time) (*models.TaskStats, error) {
	return &models.TaskStats{}, nil
}

func TestTaskLifecycleTracksTime(t *testing.T) {
	repo := &mockTaskRepo{tasks: make(map[string]*models.Task)}
	svc := NewTaskService(repo, nil, nil)

	task, err := svc.Create(context.Background(), "u1", CreateTaskRequest{Title: "chase bank letters"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskPending, task.Status)

	inProgress := models.TaskInProgress
	task, err = svc.Update(context.Background(), "u1", task.ID, UpdateTaskRequest{Status: &inProgress})
	require.NoError(t, err)
	require.NotNil(t, task.StartedAt)

	completed := models.TaskCompleted
	task, err = svc.Update(context.Background(), "u1", task.ID, UpdateTaskRequest{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
	require.NotNil(t, task.TimeSpentMinutes)
}

func TestTaskOwnershipEnforced(t *testing.T) {
	repo := &mockTaskRepo{tasks: map[string]*models.Task{
		"t1": {ID: "t1", UserID: "owner", Title: "mine", Status: models.TaskPending},
	}}
	svc := NewTaskService(repo, nil, nil)

	title := "stolen"
	_, err := svc.Update(context.Background(), "intruder", "t1", UpdateTaskRequest{Title: &title})
	assertAppError(t, err, appErrors.ErrForbidden)

	err = svc.Delete(context.Background(), "intruder", "t1")
	assertAppError(t, err, appErrors.ErrNotFound)

	err = svc.Delete(context.Background(), "owner", "t1")
	require.NoError(t, err)
}
