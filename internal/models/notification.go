package models

import "time"

// NotificationType tags the reason a notification was created.
type NotificationType string

const (
	NotificationJobAssigned    NotificationType = "JOB_ASSIGNED"
	NotificationStatusChanged  NotificationType = "STATUS_CHANGED"
	NotificationCommentAdded   NotificationType = "COMMENT_ADDED"
	NotificationMention        NotificationType = "MENTION"
	NotificationProgressUpdate NotificationType = "PROGRESS_UPDATE"
	NotificationJobInactive24h NotificationType = "JOB_INACTIVE_24H"
	NotificationJobInactive48h NotificationType = "JOB_INACTIVE_48H"
)

// Notification is addressed to exactly one user. Rows are immutable apart
// from the read flag.
type Notification struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"user_id" json:"user_id"`
	Type      NotificationType `db:"type" json:"type"`
	Title     string           `db:"title" json:"title"`
	Content   string           `db:"content" json:"content"`
	JobID     *string          `db:"job_id" json:"job_id,omitempty"`
	CommentID *string          `db:"comment_id" json:"comment_id,omitempty"`
	ActionURL *string          `db:"action_url" json:"action_url,omitempty"`
	IsRead    bool             `db:"is_read" json:"is_read"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}
