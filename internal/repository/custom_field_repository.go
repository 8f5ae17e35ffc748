package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
)

// CustomFieldRepository provides database access for admin-defined job
// fields and column label overrides.
type CustomFieldRepository struct {
	db *sqlx.DB
}

// NewCustomFieldRepository creates a new instance of CustomFieldRepository.
func NewCustomFieldRepository(db *sqlx.DB) *CustomFieldRepository {
	return &CustomFieldRepository{db: db}
}

const customFieldColumns = `id, field_key, field_label, field_type, options, is_required, is_active, sort_order, category, description, default_value, created_by_id, created_at, updated_at`

// List returns custom fields in sort order, optionally only active ones.
func (r *CustomFieldRepository) List(ctx context.Context, activeOnly bool) ([]models.CustomField, error) {
	query := `SELECT ` + customFieldColumns + ` FROM custom_fields`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, field_label ASC`

	var fields []models.CustomField
	if err := r.db.SelectContext(ctx, &fields, query); err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	return fields, nil
}

// FindByID returns a custom field by identifier.
func (r *CustomFieldRepository) FindByID(ctx context.Context, id string) (*models.CustomField, error) {
	query := `SELECT ` + customFieldColumns + ` FROM custom_fields WHERE id = $1 LIMIT 1`
	var field models.CustomField
	if err := r.db.GetContext(ctx, &field, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find custom field by id: %w", err)
	}
	return &field, nil
}

// FindByKey returns a custom field by its stable key.
func (r *CustomFieldRepository) FindByKey(ctx context.Context, key string) (*models.CustomField, error) {
	query := `SELECT ` + customFieldColumns + ` FROM custom_fields WHERE field_key = $1 LIMIT 1`
	var field models.CustomField
	if err := r.db.GetContext(ctx, &field, query, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find custom field by key: %w", err)
	}
	return &field, nil
}

// Create inserts a custom field definition.
func (r *CustomFieldRepository) Create(ctx context.Context, field *models.CustomField) error {
	if field.ID == "" {
		field.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if field.CreatedAt.IsZero() {
		field.CreatedAt = now
	}
	field.UpdatedAt = now

	const query = `INSERT INTO custom_fields (id, field_key, field_label, field_type, options, is_required, is_active, sort_order, category, description, default_value, created_by_id, created_at, updated_at) VALUES (:id, :field_key, :field_label, :field_type, :options, :is_required, :is_active, :sort_order, :category, :description, :default_value, :created_by_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, field); err != nil {
		return fmt.Errorf("create custom field: %w", err)
	}
	return nil
}

// Update updates a custom field definition. The field key is immutable
// once created so saved job values keep resolving.
func (r *CustomFieldRepository) Update(ctx context.Context, field *models.CustomField) error {
	field.UpdatedAt = time.Now().UTC()
	const query = `UPDATE custom_fields SET field_label = :field_label, field_type = :field_type, options = :options, is_required = :is_required, is_active = :is_active, sort_order = :sort_order, category = :category, description = :description, default_value = :default_value, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, field); err != nil {
		return fmt.Errorf("update custom field: %w", err)
	}
	return nil
}

// Delete removes a custom field definition.
func (r *CustomFieldRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM custom_fields WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete custom field: %w", err)
	}
	return nil
}

// ListColumnLabels returns every column label override.
func (r *CustomFieldRepository) ListColumnLabels(ctx context.Context) ([]models.ColumnLabel, error) {
	const query = `SELECT id, column_key, custom_label, updated_at FROM column_labels ORDER BY column_key ASC`
	var labels []models.ColumnLabel
	if err := r.db.SelectContext(ctx, &labels, query); err != nil {
		return nil, fmt.Errorf("list column labels: %w", err)
	}
	return labels, nil
}

// UpsertColumnLabel sets or replaces the label override for a column.
func (r *CustomFieldRepository) UpsertColumnLabel(ctx context.Context, label *models.ColumnLabel) error {
	if label.ID == "" {
		label.ID = uuid.NewString()
	}
	label.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO column_labels (id, column_key, custom_label, updated_at) VALUES (:id, :column_key, :custom_label, :updated_at)
		ON CONFLICT (column_key) DO UPDATE SET custom_label = EXCLUDED.custom_label, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, label); err != nil {
		return fmt.Errorf("upsert column label: %w", err)
	}
	return nil
}

// DeleteColumnLabel removes a label override, restoring the default.
func (r *CustomFieldRepository) DeleteColumnLabel(ctx context.Context, columnKey string) error {
	const query = `DELETE FROM column_labels WHERE column_key = $1`
	if _, err := r.db.ExecContext(ctx, query, columnKey); err != nil {
		return fmt.Errorf("delete column label: %w", err)
	}
	return nil
}
