package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexlearn/nexlearn-backend/internal/model"
)

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `c.id, c.owner_id, c.title, c.description, c.image, c.price, c.chapters, c.created_at, c.updated_at`

func scanCourse(row pgx.Row) (*model.Course, error) {
	c := &model.Course{}
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Title, &c.Description, &c.Image,
		&c.Price, &c.Chapters, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	if c.Chapters == nil {
		c.Chapters = []model.Chapter{}
	}
	return c, nil
}

func collectCourses(rows pgx.Rows) ([]model.Course, error) {
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

func chaptersParam(chapters []model.Chapter) []model.Chapter {
	if chapters == nil {
		return []model.Chapter{}
	}
	return chapters
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	c.Chapters = chaptersParam(c.Chapters)
	return translate(r.pool.QueryRow(ctx,
		`INSERT INTO courses (owner_id, title, description, image, price, chapters)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.OwnerID, c.Title, c.Description, c.Image, c.Price, c.Chapters,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

// GetByID retrieves a course by its UUID.
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses c WHERE c.id = $1`, id))
}

// List returns every course, newest first.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses c ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

// ListByIDs returns the courses for ids in the order given; missing ids are skipped.
func (r *CourseRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Course, error) {
	if len(ids) == 0 {
		return []model.Course{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+`
		 FROM unnest($1::uuid[]) WITH ORDINALITY AS e(id, pos)
		 JOIN courses c ON c.id = e.id
		 ORDER BY e.pos`,
		uuidsToStrings(ids))
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

// Update overwrites the mutable fields of a course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	c.Chapters = chaptersParam(c.Chapters)
	return translate(r.pool.QueryRow(ctx,
		`UPDATE courses
		 SET title = $1, description = $2, image = $3, price = $4, chapters = $5, updated_at = NOW()
		 WHERE id = $6
		 RETURNING updated_at`,
		c.Title, c.Description, c.Image, c.Price, c.Chapters, c.ID,
	).Scan(&c.UpdatedAt))
}

// Delete removes a course together with its comments and every enrollment
// pointing at it, in one transaction.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE course_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE users SET enrolled_course_ids = array_remove(enrolled_course_ids, $1::uuid)
			 WHERE $1::uuid = ANY(enrolled_course_ids)`, id.String()); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
