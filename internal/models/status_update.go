package models

import "time"

// Timeline action tags recorded on status updates.
const (
	ActionJobCreated          = "JOB_CREATED"
	ActionStatusChanged       = "STATUS_CHANGED"
	ActionStaffAssigned       = "STAFF_ASSIGNED"
	ActionManagerAssigned     = "MANAGER_ASSIGNED"
	ActionSupervisorAssigned  = "SUPERVISOR_ASSIGNED"
	ActionProgressUpdated     = "PROGRESS_UPDATED"
	ActionCommentAdded        = "COMMENT_ADDED"
	ActionCompletionRequested = "COMPLETION_REQUESTED"
	ActionSnoozed             = "SNOOZED"
	ActionAwaitingClientReply = "AWAITING_CLIENT_REPLY"
	ActionClientReplyReceived = "CLIENT_REPLY_RECEIVED"
)

// StatusUpdate is an immutable, append-only timeline entry recording one
// state change on a job. Entries are never mutated or deleted.
type StatusUpdate struct {
	ID        string    `db:"id" json:"id"`
	JobID     string    `db:"job_id" json:"job_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Action    string    `db:"action" json:"action"`
	OldValue  *string   `db:"old_value" json:"old_value,omitempty"`
	NewValue  *string   `db:"new_value" json:"new_value,omitempty"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}
