package models

import "time"

// CreateJobRequest opens a new job at the start of the pipeline.
type CreateJobRequest struct {
	Reference    string      `json:"reference"`
	ClientName   string      `json:"client_name" validate:"required"`
	Title        string      `json:"title" validate:"required"`
	Description  *string     `json:"description,omitempty"`
	Priority     JobPriority `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	ServiceTypes []string    `json:"service_types"`
	SupervisorID string      `json:"supervisor_id" validate:"required"`
	ManagerID    *string     `json:"manager_id,omitempty"`
	DepartmentID *string     `json:"department_id,omitempty"`
	DueDate      *time.Time  `json:"due_date,omitempty"`
}

// UpdateJobRequest edits job details. Nil fields are left unchanged.
type UpdateJobRequest struct {
	ClientName   *string      `json:"client_name,omitempty"`
	Title        *string      `json:"title,omitempty"`
	Description  *string      `json:"description,omitempty"`
	Priority     *JobPriority `json:"priority,omitempty" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	ServiceTypes []string     `json:"service_types,omitempty"`
	DepartmentID *string      `json:"department_id,omitempty"`
	DueDate      *time.Time   `json:"due_date,omitempty"`
}

// UpdateStatusRequest moves a job along the pipeline.
type UpdateStatusRequest struct {
	Status JobStatus `json:"status" validate:"required"`
}

// AssignJobRequest changes who is attached to a job. Only non-nil
// fields are applied.
type AssignJobRequest struct {
	AssignedToID *string `json:"assigned_to_id,omitempty"`
	SupervisorID *string `json:"supervisor_id,omitempty"`
	ManagerID    *string `json:"manager_id,omitempty"`
}

// UpdateProgressRequest sets a job's completion percentage.
type UpdateProgressRequest struct {
	Progress int `json:"progress" validate:"min=0,max=100"`
}

// AddCommentRequest attaches a comment to a job.
type AddCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// BulkDeleteRequest removes several jobs at once.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}
