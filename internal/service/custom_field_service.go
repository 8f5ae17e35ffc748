package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/authz"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
)

type customFieldRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.CustomField, error)
	FindByID(ctx context.Context, id string) (*models.CustomField, error)
	FindByKey(ctx context.Context, key string) (*models.CustomField, error)
	Create(ctx context.Context, field *models.CustomField) error
	Update(ctx context.Context, field *models.CustomField) error
	Delete(ctx context.Context, id string) error
	ListColumnLabels(ctx context.Context) ([]models.ColumnLabel, error)
	UpsertColumnLabel(ctx context.Context, label *models.ColumnLabel) error
	DeleteColumnLabel(ctx context.Context, columnKey string) error
}

// CustomFieldRequest creates or edits an admin-defined field.
type CustomFieldRequest struct {
	FieldKey     string                 `json:"field_key" validate:"required"`
	FieldLabel   string                 `json:"field_label" validate:"required"`
	FieldType    models.CustomFieldType `json:"field_type" validate:"required,oneof=TEXT NUMBER DATE SELECT CHECKBOX"`
	Options      []string               `json:"options,omitempty"`
	IsRequired   bool                   `json:"is_required"`
	IsActive     *bool                  `json:"is_active,omitempty"`
	SortOrder    int                    `json:"sort_order"`
	Category     *string                `json:"category,omitempty"`
	Description  *string                `json:"description,omitempty"`
	DefaultValue *string                `json:"default_value,omitempty"`
}

// ColumnLabelRequest overrides the display label of a board column.
type ColumnLabelRequest struct {
	ColumnKey   string `json:"column_key" validate:"required"`
	CustomLabel string `json:"custom_label" validate:"required"`
}

// CustomFieldService administers custom job fields and column labels.
// Writes are admin-only; reads are open so forms can render.
type CustomFieldService struct {
	repo      customFieldRepository
	auditor   departmentAuditor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCustomFieldService constructs a CustomFieldService.
func NewCustomFieldService(repo customFieldRepository, auditor departmentAuditor, validate *validator.Validate, logger *zap.Logger) *CustomFieldService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CustomFieldService{repo: repo, auditor: auditor, validator: validate, logger: logger}
}

// List returns field definitions, optionally only active ones.
func (s *CustomFieldService) List(ctx context.Context, activeOnly bool) ([]models.CustomField, error) {
	fields, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list custom fields")
	}
	return fields, nil
}

// Create adds a field definition. SELECT fields must carry options.
func (s *CustomFieldService) Create(ctx context.Context, actor Actor, req CustomFieldRequest) (*models.CustomField, error) {
	if !authz.CanManageDepartments(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role may not manage custom fields")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid custom field payload")
	}
	if req.FieldType == models.FieldTypeSelect && len(req.Options) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "select fields need at least one option")
	}

	if _, err := s.repo.FindByKey(ctx, req.FieldKey); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "field key already in use")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check field key")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	field := &models.CustomField{
		FieldKey:     req.FieldKey,
		FieldLabel:   req.FieldLabel,
		FieldType:    req.FieldType,
		Options:      req.Options,
		IsRequired:   req.IsRequired,
		IsActive:     active,
		SortOrder:    req.SortOrder,
		Category:     req.Category,
		Description:  req.Description,
		DefaultValue: req.DefaultValue,
		CreatedByID:  actor.ID,
	}
	if err := s.repo.Create(ctx, field); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create custom field")
	}

	s.audit(ctx, actor.ID, field.ID)
	return field, nil
}

// Update edits a field definition. The field key is immutable.
func (s *CustomFieldService) Update(ctx context.Context, actor Actor, id string, req CustomFieldRequest) (*models.CustomField, error) {
	if !authz.CanManageDepartments(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role may not manage custom fields")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid custom field payload")
	}

	field, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "custom field not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load custom field")
	}

	field.FieldLabel = req.FieldLabel
	field.FieldType = req.FieldType
	field.Options = req.Options
	field.IsRequired = req.IsRequired
	if req.IsActive != nil {
		field.IsActive = *req.IsActive
	}
	field.SortOrder = req.SortOrder
	field.Category = req.Category
	field.Description = req.Description
	field.DefaultValue = req.DefaultValue

	if err := s.repo.Update(ctx, field); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update custom field")
	}

	s.audit(ctx, actor.ID, field.ID)
	return field, nil
}

// Delete removes a field definition.
func (s *CustomFieldService) Delete(ctx context.Context, actor Actor, id string) error {
	if !authz.CanManageDepartments(actor.Role) {
		return appErrors.Clone(appErrors.ErrForbidden, "role may not manage custom fields")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "custom field not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load custom field")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete custom field")
	}

	s.audit(ctx, actor.ID, id)
	return nil
}

// ListColumnLabels returns every board column override.
func (s *CustomFieldService) ListColumnLabels(ctx context.Context) ([]models.ColumnLabel, error) {
	labels, err := s.repo.ListColumnLabels(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list column labels")
	}
	return labels, nil
}

// SetColumnLabel sets or replaces a board column label.
func (s *CustomFieldService) SetColumnLabel(ctx context.Context, actor Actor, req ColumnLabelRequest) (*models.ColumnLabel, error) {
	if !authz.CanManageDepartments(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role may not manage column labels")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid column label payload")
	}

	label := &models.ColumnLabel{ColumnKey: req.ColumnKey, CustomLabel: req.CustomLabel}
	if err := s.repo.UpsertColumnLabel(ctx, label); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save column label")
	}
	return label, nil
}

// ResetColumnLabel removes an override, restoring the default label.
func (s *CustomFieldService) ResetColumnLabel(ctx context.Context, actor Actor, columnKey string) error {
	if !authz.CanManageDepartments(actor.Role) {
		return appErrors.Clone(appErrors.ErrForbidden, "role may not manage column labels")
	}
	if err := s.repo.DeleteColumnLabel(ctx, columnKey); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset column label")
	}
	return nil
}

func (s *CustomFieldService) audit(ctx context.Context, actorID, fieldID string) {
	if err := s.auditor.RecordAudit(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionFieldChange,
		Resource:   "custom_fields",
		ResourceID: &fieldID,
	}); err != nil {
		s.logger.Warn("failed to record custom field audit log", zap.Error(err))
	}
}
