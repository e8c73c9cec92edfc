package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexlearn/nexlearn-backend/internal/model"
)

// UserRepository handles user data access. It is the credential store and
// also holds the enrollment list of every user.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, enrolled_course_ids::text[], created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var enrolled []string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &enrolled, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	ids, err := stringsToUUIDs(enrolled)
	if err != nil {
		return nil, err
	}
	u.EnrolledCourses = ids
	return u, nil
}

// Create inserts a new user. A taken email yields ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	u.EnrolledCourses = []uuid.UUID{}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// List returns every user, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Count returns the number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// UpdateName sets the display name and returns the updated user.
func (r *UserRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET name = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING `+userColumns,
		name, id))
}

// SetRole changes a stored role. Only the admin CLI tools call it.
func (r *UserRepository) SetRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddEnrollment appends courseID to the user's enrollment list in a single
// conditional UPDATE. added is false when the course was already present; the
// row lock taken by UPDATE makes concurrent calls for the same pair serialize,
// so at most one of them appends.
func (r *UserRepository) AddEnrollment(ctx context.Context, userID, courseID uuid.UUID) ([]uuid.UUID, bool, error) {
	var raw []string
	err := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET enrolled_course_ids = array_append(enrolled_course_ids, $2::uuid), updated_at = NOW()
		 WHERE id = $1 AND NOT ($2::uuid = ANY(enrolled_course_ids))
		 RETURNING enrolled_course_ids::text[]`,
		userID, courseID.String(),
	).Scan(&raw)
	if err == nil {
		ids, err := stringsToUUIDs(raw)
		return ids, true, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	// No row updated: either the user is gone or the course is already listed.
	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return u.EnrolledCourses, false, nil
}
