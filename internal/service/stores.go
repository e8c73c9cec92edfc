package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nexlearn/nexlearn-backend/internal/model"
)

// UserStore is the credential store plus the enrollment list of each user.
// Implementations return repository.ErrNotFound and repository.ErrDuplicateKey.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*model.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role model.Role) error
	// AddEnrollment must append atomically; added is false if courseID was present.
	AddEnrollment(ctx context.Context, userID, courseID uuid.UUID) (enrolled []uuid.UUID, added bool, err error)
}

// CourseStore is the course directory.
type CourseStore interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Course, error)
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentStore is the comment board.
type CommentStore interface {
	Create(ctx context.Context, cm *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	GetView(ctx context.Context, id uuid.UUID) (*model.CommentView, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.CommentView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CourseCache holds the public catalog listing. Every invalidation bumps a
// generation counter; SetCourseList stores nothing unless gen is still current.
type CourseCache interface {
	GetCourseList(ctx context.Context) ([]model.Course, bool, error)
	CourseListGeneration(ctx context.Context) (int64, error)
	SetCourseList(ctx context.Context, gen int64, courses []model.Course) (bool, error)
	InvalidateCourseList(ctx context.Context) error
}

// CommentPublisher fans comment events out to live subscribers.
type CommentPublisher interface {
	Publish(ctx context.Context, ev *model.CommentEvent) error
}

// ContactQueue hands contact messages to the notification relay.
type ContactQueue interface {
	Enqueue(ctx context.Context, msg *model.ContactMessage) error
}
