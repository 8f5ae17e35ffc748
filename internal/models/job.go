package models

import (
	"time"

	"github.com/lib/pq"
)

// JobStatus is the fixed pipeline a job moves through. The labels mirror
// the numbered workflow the accounting team works against.
type JobStatus string

const (
	StatusRFISent            JobStatus = "RFI_EMAIL_TO_CLIENT_SENT"
	StatusInfoSentJobStarted JobStatus = "INFO_SENT_TO_LAHORE_JOB_STARTED"
	StatusMissingInfo        JobStatus = "MISSING_INFO_CHASE_CLIENT"
	StatusReadyToProceed     JobStatus = "LAHORE_TO_PROCEED_CLIENT_INFO_COMPLETE"
	StatusForReview          JobStatus = "FOR_REVIEW_WITH_JACK"
	StatusCompleted          JobStatus = "COMPLETED"
	StatusCancelled          JobStatus = "CANCELLED"
)

// AllStatuses lists every pipeline status in display order.
func AllStatuses() []JobStatus {
	return []JobStatus{
		StatusRFISent,
		StatusInfoSentJobStarted,
		StatusMissingInfo,
		StatusReadyToProceed,
		StatusForReview,
		StatusCompleted,
		StatusCancelled,
	}
}

// JobPriority orders jobs within a status column.
type JobPriority string

const (
	PriorityLow    JobPriority = "LOW"
	PriorityNormal JobPriority = "NORMAL"
	PriorityHigh   JobPriority = "HIGH"
	PriorityUrgent JobPriority = "URGENT"
)

// Job represents a client work item tracked through the status pipeline.
type Job struct {
	ID                 string         `db:"id" json:"id"`
	Reference          string         `db:"reference" json:"reference"`
	ClientName         string         `db:"client_name" json:"client_name"`
	Title              string         `db:"title" json:"title"`
	Description        *string        `db:"description" json:"description,omitempty"`
	Status             JobStatus      `db:"status" json:"status"`
	Priority           JobPriority    `db:"priority" json:"priority"`
	ServiceTypes       pq.StringArray `db:"service_types" json:"service_types"`
	Progress           int            `db:"progress" json:"progress"`
	AssignedToID       *string        `db:"assigned_to_id" json:"assigned_to_id,omitempty"`
	AssignedByID       *string        `db:"assigned_by_id" json:"assigned_by_id,omitempty"`
	SupervisorID       *string        `db:"supervisor_id" json:"supervisor_id,omitempty"`
	ManagerID          *string        `db:"manager_id" json:"manager_id,omitempty"`
	DepartmentID       *string        `db:"department_id" json:"department_id,omitempty"`
	DueDate            *time.Time     `db:"due_date" json:"due_date,omitempty"`
	StartedAt          *time.Time     `db:"started_at" json:"started_at,omitempty"`
	CompletedAt        *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	IsLate             bool           `db:"is_late" json:"is_late"`
	AwaitingReply      bool           `db:"awaiting_client_reply" json:"awaiting_client_reply"`
	LastActivityAt     *time.Time     `db:"last_activity_at" json:"last_activity_at,omitempty"`
	LastReminderSentAt *time.Time     `db:"last_reminder_sent_at" json:"last_reminder_sent_at,omitempty"`
	ReminderSnoozedTo  *time.Time     `db:"reminder_snooze_until" json:"reminder_snooze_until,omitempty"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

// Parties returns the job's interested user ids (assignee, assigner,
// supervisor, manager). Absent parties are skipped.
func (j *Job) Parties() []string {
	ids := make([]string, 0, 4)
	for _, id := range []*string{j.AssignedToID, j.AssignedByID, j.SupervisorID, j.ManagerID} {
		if id != nil && *id != "" {
			ids = append(ids, *id)
		}
	}
	return ids
}

// JobFilter captures listing criteria for jobs.
type JobFilter struct {
	Status       *JobStatus
	Priority     *JobPriority
	AssignedToID *string
	SupervisorID *string
	DepartmentID *string
	Search       string
	Page         int
	PageSize     int
}
