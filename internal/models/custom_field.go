package models

import (
	"time"

	"github.com/lib/pq"
)

// CustomFieldType enumerates the supported admin-defined field kinds.
type CustomFieldType string

const (
	FieldTypeText     CustomFieldType = "TEXT"
	FieldTypeNumber   CustomFieldType = "NUMBER"
	FieldTypeDate     CustomFieldType = "DATE"
	FieldTypeSelect   CustomFieldType = "SELECT"
	FieldTypeCheckbox CustomFieldType = "CHECKBOX"
)

// CustomField is an admin-defined extra attribute rendered on job forms.
type CustomField struct {
	ID           string          `db:"id" json:"id"`
	FieldKey     string          `db:"field_key" json:"field_key"`
	FieldLabel   string          `db:"field_label" json:"field_label"`
	FieldType    CustomFieldType `db:"field_type" json:"field_type"`
	Options      pq.StringArray  `db:"options" json:"options"`
	IsRequired   bool            `db:"is_required" json:"is_required"`
	IsActive     bool            `db:"is_active" json:"is_active"`
	SortOrder    int             `db:"sort_order" json:"sort_order"`
	Category     *string         `db:"category" json:"category,omitempty"`
	Description  *string         `db:"description" json:"description,omitempty"`
	DefaultValue *string         `db:"default_value" json:"default_value,omitempty"`
	CreatedByID  string          `db:"created_by_id" json:"created_by_id"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// ColumnLabel overrides the display label of a job-board column.
type ColumnLabel struct {
	ID          string    `db:"id" json:"id"`
	ColumnKey   string    `db:"column_key" json:"column_key"`
	CustomLabel string    `db:"custom_label" json:"custom_label"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
