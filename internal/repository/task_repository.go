package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
)

// TaskRepository provides database access for personal tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, client_name, status, started_at, completed_at, time_spent_minutes, created_at, updated_at`

// Create inserts a task.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	const query = `INSERT INTO tasks (id, user_id, title, description, client_name, status, started_at, completed_at, time_spent_minutes, created_at, updated_at) VALUES (:id, :user_id, :title, :description, :client_name, :status, :started_at, :completed_at, :time_spent_minutes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// FindByID returns a task by identifier.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 LIMIT 1`
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find task by id: %w", err)
	}
	return &task, nil
}

// List returns tasks matching the filter, newest first.
func (r *TaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `FROM tasks WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)+1))
		args = append(args, *filter.UserID)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.ClientName != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(client_name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.ClientName)+"%")
	}
	if filter.CreatedOn != nil {
		day := filter.CreatedOn.UTC().Truncate(24 * time.Hour)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d AND created_at < $%d", len(args)+1, len(args)+2))
		args = append(args, day, day.Add(24*time.Hour))
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC", taskColumns, baseQuery)
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update updates mutable fields of a task.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tasks SET title = :title, description = :description, client_name = :client_name, status = :status, started_at = :started_at, completed_at = :completed_at, time_spent_minutes = :time_spent_minutes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes a task owned by the given user.
func (r *TaskRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return affected > 0, nil
}

// Stats aggregates a user's task counters for a given day boundary.
func (r *TaskRepository) Stats(ctx context.Context, userID string, today time.Time) (*models.TaskStats, error) {
	day := today.UTC().Truncate(24 * time.Hour)
	const query = `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
		COUNT(*) FILTER (WHERE status = 'IN_PROGRESS') AS in_progress,
		COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed,
		COUNT(*) FILTER (WHERE created_at >= $2 AND created_at < $3) AS created_today,
		COALESCE(SUM(time_spent_minutes), 0) AS total_minutes
		FROM tasks WHERE user_id = $1`
	var row struct {
		Total        int `db:"total"`
		Pending      int `db:"pending"`
		InProgress   int `db:"in_progress"`
		Completed    int `db:"completed"`
		CreatedToday int `db:"created_today"`
		TotalMinutes int `db:"total_minutes"`
	}
	if err := r.db.GetContext(ctx, &row, query, userID, day, day.Add(24*time.Hour)); err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}

	const clientQuery = `SELECT client_name, COUNT(*) AS count FROM tasks WHERE user_id = $1 AND client_name IS NOT NULL GROUP BY client_name`
	var byClient []struct {
		ClientName string `db:"client_name"`
		Count      int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &byClient, clientQuery, userID); err != nil {
		return nil, fmt.Errorf("task stats by client: %w", err)
	}

	stats := &models.TaskStats{
		Total:             row.Total,
		Pending:           row.Pending,
		InProgress:        row.InProgress,
		Completed:         row.Completed,
		CreatedToday:      row.CreatedToday,
		TotalMinutesSpent: row.TotalMinutes,
		TasksByClient:     make(map[string]int, len(byClient)),
	}
	for _, c := range byClient {
		stats.TasksByClient[c.ClientName] = c.Count
	}
	return stats, nil
}
