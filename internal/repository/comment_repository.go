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

// CommentRepository provides database access for job comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new instance of CommentRepository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	const query = `INSERT INTO comments (id, job_id, user_id, content, created_at, updated_at) VALUES (:id, :job_id, :user_id, :content, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// FindByID returns a comment by identifier.
func (r *CommentRepository) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	const query = `SELECT id, job_id, user_id, content, created_at, updated_at FROM comments WHERE id = $1 LIMIT 1`
	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return &comment, nil
}

// ListByJob returns a job's comments oldest first.
func (r *CommentRepository) ListByJob(ctx context.Context, jobID string) ([]models.Comment, error) {
	const query = `SELECT id, job_id, user_id, content, created_at, updated_at FROM comments WHERE job_id = $1 ORDER BY created_at ASC`
	var comments []models.Comment
	if err := r.db.SelectContext(ctx, &comments, query, jobID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
