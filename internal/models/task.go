package models

import "time"

// TaskStatus is the lifecycle of a personal to-do.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// Task is a personal to-do item owned by a single user, with simple
// start/stop time tracking.
type Task struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"user_id"`
	Title            string     `db:"title" json:"title"`
	Description      *string    `db:"description" json:"description,omitempty"`
	ClientName       *string    `db:"client_name" json:"client_name,omitempty"`
	Status           TaskStatus `db:"status" json:"status"`
	StartedAt        *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt      *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	TimeSpentMinutes *int       `db:"time_spent_minutes" json:"time_spent_minutes,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// TaskFilter captures listing criteria for tasks.
type TaskFilter struct {
	UserID     *string
	Status     *TaskStatus
	ClientName string
	CreatedOn  *time.Time
}

// TaskStats aggregates task counts for the stats endpoint.
type TaskStats struct {
	Total             int            `json:"total"`
	Pending           int            `json:"pending"`
	InProgress        int            `json:"in_progress"`
	Completed         int            `json:"completed"`
	CreatedToday      int            `json:"created_today"`
	TotalMinutesSpent int            `json:"total_minutes_spent"`
	TasksByClient     map[string]int `json:"tasks_by_client"`
}
