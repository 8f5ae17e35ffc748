package models

import "time"

// Department groups users and jobs under an optional manager.
type Department struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ManagerID *string   `db:"manager_id" json:"manager_id,omitempty"`
	UserCount int       `db:"user_count" json:"user_count"`
	JobCount  int       `db:"job_count" json:"job_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
