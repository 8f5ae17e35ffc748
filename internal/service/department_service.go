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

type departmentRepository interface {
	List(ctx context.Context) ([]models.Department, error)
	FindByID(ctx context.Context, id string) (*models.Department, error)
	Create(ctx context.Context, department *models.Department) error
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id string) error
}

type departmentAuditor interface {
	RecordAudit(ctx context.Context, entry *models.AuditLog) error
}

// DepartmentRequest creates or renames a department.
type DepartmentRequest struct {
	Name      string  `json:"name" validate:"required"`
	ManagerID *string `json:"manager_id,omitempty"`
}

// DepartmentService implements department administration.
type DepartmentService struct {
	repo      departmentRepository
	auditor   departmentAuditor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDepartmentService constructs a DepartmentService.
func NewDepartmentService(repo departmentRepository, auditor departmentAuditor, validate *validator.Validate, logger *zap.Logger) *DepartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DepartmentService{repo: repo, auditor: auditor, validator: validate, logger: logger}
}

// List returns every department with its counts. Open to all roles.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departments")
	}
	return departments, nil
}

// Get returns one department.
func (s *DepartmentService) Get(ctx context.Context, id string) (*models.Department, error) {
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}
	return department, nil
}

// Create adds a department. Restricted to admins.
func (s *DepartmentService) Create(ctx context.Context, actor Actor, req DepartmentRequest) (*models.Department, error) {
	if !authz.CanManageDepartments(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role may not manage departments")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}

	department := &models.Department{Name: req.Name, ManagerID: req.ManagerID}
	if err := s.repo.Create(ctx, department); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create department")
	}

	s.audit(ctx, actor.ID, department.ID)
	return department, nil
}

// Update renames a department or changes its manager.
func (s *DepartmentService) Update(ctx context.Context, actor Actor, id string, req DepartmentRequest) (*models.Department, error) {
	if !authz.CanManageDepartments(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role may not manage departments")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}

	department, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	department.Name = req.Name
	department.ManagerID = req.ManagerID

	if err := s.repo.Update(ctx, department); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update department")
	}

	s.audit(ctx, actor.ID, department.ID)
	return department, nil
}

// Delete removes a department, detaching its users and jobs first.
func (s *DepartmentService) Delete(ctx context.Context, actor Actor, id string) error {
	if !authz.CanManageDepartments(actor.Role) {
		return appErrors.Clone(appErrors.ErrForbidden, "role may not manage departments")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete department")
	}

	s.audit(ctx, actor.ID, id)
	return nil
}

func (s *DepartmentService) audit(ctx context.Context, actorID, departmentID string) {
	if err := s.auditor.RecordAudit(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionDepartmentChange,
		Resource:   "departments",
		ResourceID: &departmentID,
	}); err != nil {
		s.logger.Warn("failed to record department audit log", zap.Error(err))
	}
}
