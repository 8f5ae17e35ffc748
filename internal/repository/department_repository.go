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

// DepartmentRepository provides database access for departments.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository creates a new instance of DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

const departmentSelect = `SELECT d.id, d.name, d.manager_id, d.created_at, d.updated_at,
	(SELECT COUNT(*) FROM users u WHERE u.department_id = d.id) AS user_count,
	(SELECT COUNT(*) FROM jobs j WHERE j.department_id = d.id) AS job_count
	FROM departments d`

// List returns every department with member and job counts.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	query := departmentSelect + ` ORDER BY d.name ASC`
	var departments []models.Department
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// FindByID returns one department with its counts.
func (r *DepartmentRepository) FindByID(ctx context.Context, id string) (*models.Department, error) {
	query := departmentSelect + ` WHERE d.id = $1 LIMIT 1`
	var department models.Department
	if err := r.db.GetContext(ctx, &department, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find department by id: %w", err)
	}
	return &department, nil
}

// Create inserts a department.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	if department.ID == "" {
		department.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if department.CreatedAt.IsZero() {
		department.CreatedAt = now
	}
	department.UpdatedAt = now

	const query = `INSERT INTO departments (id, name, manager_id, created_at, updated_at) VALUES (:id, :name, :manager_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, department); err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

// Update updates a department's name and manager.
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	department.UpdatedAt = time.Now().UTC()
	const query = `UPDATE departments SET name = :name, manager_id = :manager_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, department); err != nil {
		return fmt.Errorf("update department: %w", err)
	}
	return nil
}

// Delete removes a department after detaching its users and jobs.
func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE users SET department_id = NULL WHERE department_id = $1`, id); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE jobs SET department_id = NULL WHERE department_id = $1`, id); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}
