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

// JobRepository provides database access for jobs and their timeline.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository creates a new instance of JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, reference, client_name, title, description, status, priority, service_types, progress, assigned_to_id, assigned_by_id, supervisor_id, manager_id, department_id, due_date, started_at, completed_at, is_late, awaiting_client_reply, last_activity_at, last_reminder_sent_at, reminder_snooze_until, created_at, updated_at`

// FindByID returns a job by identifier.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 LIMIT 1`
	var job models.Job
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find job by id: %w", err)
	}
	return &job, nil
}

// List returns jobs matching the filter with a total count.
func (r *JobRepository) List(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error) {
	baseQuery := `FROM jobs WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)+1))
		args = append(args, *filter.Priority)
	}
	if filter.AssignedToID != nil {
		conditions = append(conditions, fmt.Sprintf("assigned_to_id = $%d", len(args)+1))
		args = append(args, *filter.AssignedToID)
	}
	if filter.SupervisorID != nil {
		conditions = append(conditions, fmt.Sprintf("supervisor_id = $%d", len(args)+1))
		args = append(args, *filter.SupervisorID)
	}
	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("department_id = $%d", len(args)+1))
		args = append(args, *filter.DepartmentID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(client_name) LIKE $%d OR LOWER(title) LIKE $%d OR LOWER(reference) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", jobColumns, baseQuery, pageSize, offset)

	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	return jobs, total, nil
}

// Create inserts a new job.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	if job.LastActivityAt == nil {
		job.LastActivityAt = &now
	}

	const query = `INSERT INTO jobs (id, reference, client_name, title, description, status, priority, service_types, progress, assigned_to_id, assigned_by_id, supervisor_id, manager_id, department_id, due_date, started_at, completed_at, is_late, awaiting_client_reply, last_activity_at, last_reminder_sent_at, reminder_snooze_until, created_at, updated_at) VALUES (:id, :reference, :client_name, :title, :description, :status, :priority, :service_types, :progress, :assigned_to_id, :assigned_by_id, :supervisor_id, :manager_id, :department_id, :due_date, :started_at, :completed_at, :is_late, :awaiting_client_reply, :last_activity_at, :last_reminder_sent_at, :reminder_snooze_until, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// Update writes the full mutable state of a job back to the database.
// Callers load, mutate, and save; the last writer wins.
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()
	const query = `UPDATE jobs SET reference = :reference, client_name = :client_name, title = :title, description = :description, status = :status, priority = :priority, service_types = :service_types, progress = :progress, assigned_to_id = :assigned_to_id, assigned_by_id = :assigned_by_id, supervisor_id = :supervisor_id, manager_id = :manager_id, department_id = :department_id, due_date = :due_date, started_at = :started_at, completed_at = :completed_at, is_late = :is_late, awaiting_client_reply = :awaiting_client_reply, last_activity_at = :last_activity_at, last_reminder_sent_at = :last_reminder_sent_at, reminder_snooze_until = :reminder_snooze_until, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// TouchActivity bumps a job's last activity timestamp and clears any
// pending reminder bookkeeping.
func (r *JobRepository) TouchActivity(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE jobs SET last_activity_at = $2, last_reminder_sent_at = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts); err != nil {
		return fmt.Errorf("touch job activity: %w", err)
	}
	return nil
}

// Delete removes a job and its dependent rows.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	return r.BulkDelete(ctx, []string{id})
}

// BulkDelete removes jobs and their comments, timeline entries, and
// notifications in one transaction.
func (r *JobRepository) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("bulk delete jobs: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM notifications WHERE job_id IN (?)`,
		`DELETE FROM comments WHERE job_id IN (?)`,
		`DELETE FROM status_updates WHERE job_id IN (?)`,
		`DELETE FROM jobs WHERE id IN (?)`,
	} {
		query, args, err := sqlx.In(stmt, ids)
		if err != nil {
			return fmt.Errorf("bulk delete jobs: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("bulk delete jobs: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("bulk delete jobs: %w", err)
	}
	return nil
}

// AppendTimeline records one status update entry for a job.
func (r *JobRepository) AppendTimeline(ctx context.Context, entry *models.StatusUpdate) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	const query = `INSERT INTO status_updates (id, job_id, user_id, action, old_value, new_value, timestamp) VALUES (:id, :job_id, :user_id, :action, :old_value, :new_value, :timestamp)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("append timeline: %w", err)
	}
	return nil
}

// Timeline returns a job's status updates in chronological order.
func (r *JobRepository) Timeline(ctx context.Context, jobID string) ([]models.StatusUpdate, error) {
	const query = `SELECT id, job_id, user_id, action, old_value, new_value, timestamp FROM status_updates WHERE job_id = $1 ORDER BY timestamp ASC`
	var entries []models.StatusUpdate
	if err := r.db.SelectContext(ctx, &entries, query, jobID); err != nil {
		return nil, fmt.Errorf("job timeline: %w", err)
	}
	return entries, nil
}

// ListActive returns every job outside the terminal statuses, for the
// reminder sweep.
func (r *JobRepository) ListActive(ctx context.Context) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status NOT IN ('COMPLETED', 'CANCELLED') AND awaiting_client_reply = FALSE`
	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}
	return jobs, nil
}

// MarkReminded stamps a job with the time its latest reminder was sent.
func (r *JobRepository) MarkReminded(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE jobs SET last_reminder_sent_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts); err != nil {
		return fmt.Errorf("mark job reminded: %w", err)
	}
	return nil
}

type statusCount struct {
	Status models.JobStatus `db:"status"`
	Count  int              `db:"count"`
}

type priorityCount struct {
	Priority models.JobPriority `db:"priority"`
	Count    int                `db:"count"`
}

type workloadRow struct {
	UserID string          `db:"user_id"`
	Name   string          `db:"name"`
	Role   models.UserRole `db:"role"`
	Count  int             `db:"count"`
}

// DashboardStats aggregates the counters behind the dashboard endpoint.
func (r *JobRepository) DashboardStats(ctx context.Context, now time.Time) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{
		StatusDistribution:   make(map[models.JobStatus]int),
		PriorityDistribution: make(map[models.JobPriority]int),
	}

	var byStatus []statusCount
	if err := r.db.SelectContext(ctx, &byStatus, `SELECT status, COUNT(*) AS count FROM jobs GROUP BY status`); err != nil {
		return nil, fmt.Errorf("dashboard status distribution: %w", err)
	}
	for _, row := range byStatus {
		stats.StatusDistribution[row.Status] = row.Count
		switch row.Status {
		case models.StatusCompleted:
			stats.CompletedJobs = row.Count
		case models.StatusCancelled:
			stats.CancelledJobs = row.Count
		default:
			stats.ActiveJobs += row.Count
		}
	}

	var byPriority []priorityCount
	if err := r.db.SelectContext(ctx, &byPriority, `SELECT priority, COUNT(*) AS count FROM jobs WHERE status NOT IN ('COMPLETED', 'CANCELLED') GROUP BY priority`); err != nil {
		return nil, fmt.Errorf("dashboard priority distribution: %w", err)
	}
	for _, row := range byPriority {
		stats.PriorityDistribution[row.Priority] = row.Count
	}

	const dueQuery = `SELECT
		COUNT(*) FILTER (WHERE due_date < $1) AS overdue,
		COUNT(*) FILTER (WHERE due_date >= $1 AND due_date < $2) AS due_soon
		FROM jobs
		WHERE status NOT IN ('COMPLETED', 'CANCELLED') AND due_date IS NOT NULL`
	var due struct {
		Overdue int `db:"overdue"`
		DueSoon int `db:"due_soon"`
	}
	if err := r.db.GetContext(ctx, &due, dueQuery, now, now.Add(72*time.Hour)); err != nil {
		return nil, fmt.Errorf("dashboard due counts: %w", err)
	}
	stats.OverdueJobs = due.Overdue
	stats.DueSoonJobs = due.DueSoon

	const workloadQuery = `SELECT u.id AS user_id, u.name, u.role, COUNT(j.id) AS count
		FROM jobs j JOIN users u ON u.id = j.assigned_to_id
		WHERE j.status NOT IN ('COMPLETED', 'CANCELLED')
		GROUP BY u.id, u.name, u.role
		ORDER BY count DESC
		LIMIT 10`
	var workloads []workloadRow
	if err := r.db.SelectContext(ctx, &workloads, workloadQuery); err != nil {
		return nil, fmt.Errorf("dashboard workloads: %w", err)
	}
	for _, row := range workloads {
		stats.TopWorkloads = append(stats.TopWorkloads, models.AssigneeWorkload{
			UserID: row.UserID,
			Name:   row.Name,
			Role:   row.Role,
			Count:  row.Count,
		})
	}

	return stats, nil
}
