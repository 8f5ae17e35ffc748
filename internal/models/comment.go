package models

import "time"

// Comment is free text attached to a job. The content may embed mention
// tokens of the form @[Name](userId).
type Comment struct {
	ID        string    `db:"id" json:"id"`
	JobID     string    `db:"job_id" json:"job_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
