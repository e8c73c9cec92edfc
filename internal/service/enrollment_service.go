package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/nexlearn/nexlearn-backend/internal/repository"
	"github.com/rs/zerolog"
)

// EnrollmentService maintains which users joined which courses.
type EnrollmentService struct {
	users   UserStore
	courses CourseStore
	log     zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(users UserStore, courses CourseStore, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		users:   users,
		courses: courses,
		log:     log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Join enrolls userID in courseID and returns the updated enrollment list.
// A second join for the same pair fails with ErrAlreadyEnrolled.
func (s *EnrollmentService) Join(ctx context.Context, userID, courseID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	enrolled, added, err := s.users.AddEnrollment(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("add enrollment: %w", err)
	}
	if !added {
		return nil, ErrAlreadyEnrolled
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("course_id", courseID.String()).
		Msg("User enrolled")
	return enrolled, nil
}

// MyCourses expands the user's enrollment list into course records, in stored order.
func (s *EnrollmentService) MyCourses(ctx context.Context, userID uuid.UUID) ([]model.Course, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	courses, err := s.courses.ListByIDs(ctx, user.EnrolledCourses)
	if err != nil {
		return nil, fmt.Errorf("list enrolled courses: %w", err)
	}
	return courses, nil
}

// IsEnrolled answers membership; non-members get false, not an error.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get user: %w", err)
	}
	return user.IsEnrolled(courseID), nil
}
