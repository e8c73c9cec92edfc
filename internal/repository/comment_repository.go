package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexlearn/nexlearn-backend/internal/model"
)

// CommentRepository handles comment data access.
type CommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentViewQuery = `SELECT cm.id, cm.course_id, cm.text, cm.created_at, u.id, u.name, u.role
	FROM comments cm
	JOIN users u ON u.id = cm.user_id`

func scanCommentView(row pgx.Row) (*model.CommentView, error) {
	v := &model.CommentView{}
	if err := row.Scan(&v.ID, &v.CourseID, &v.Text, &v.CreatedAt,
		&v.User.ID, &v.User.Name, &v.User.Role); err != nil {
		return nil, translate(err)
	}
	return v, nil
}

// Create inserts a new comment.
func (r *CommentRepository) Create(ctx context.Context, cm *model.Comment) error {
	return translate(r.pool.QueryRow(ctx,
		`INSERT INTO comments (course_id, user_id, text)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		cm.CourseID, cm.UserID, cm.Text,
	).Scan(&cm.ID, &cm.CreatedAt))
}

// GetByID retrieves the raw comment row.
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	cm := &model.Comment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, user_id, text, created_at FROM comments WHERE id = $1`, id,
	).Scan(&cm.ID, &cm.CourseID, &cm.UserID, &cm.Text, &cm.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return cm, nil
}

// GetView retrieves a comment with its author expanded.
func (r *CommentRepository) GetView(ctx context.Context, id uuid.UUID) (*model.CommentView, error) {
	return scanCommentView(r.pool.QueryRow(ctx, commentViewQuery+` WHERE cm.id = $1`, id))
}

// ListByCourse returns the comments of a course, newest first, with authors expanded.
func (r *CommentRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.CommentView, error) {
	rows, err := r.pool.Query(ctx,
		commentViewQuery+` WHERE cm.course_id = $1 ORDER BY cm.created_at DESC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.CommentView{}
	for rows.Next() {
		v, err := scanCommentView(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *v)
	}
	return comments, rows.Err()
}

// Delete removes a comment by ID.
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
