package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/nexlearn/nexlearn-backend/internal/repository"
	"github.com/rs/zerolog"
)

// CourseService handles the course directory and its ownership rules.
type CourseService struct {
	courses CourseStore
	cache   CourseCache
	log     zerolog.Logger
}

// NewCourseService creates a new CourseService. cache may be nil.
func NewCourseService(courses CourseStore, cache CourseCache, log zerolog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		cache:   cache,
		log:     log.With().Str("component", "course_service").Logger(),
	}
}

// Create inserts a course owned by ownerID.
func (s *CourseService) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Image:       req.Image,
		Chapters:    append([]model.Chapter{}, req.Chapters...),
	}
	if course.Image == "" {
		course.Image = model.DefaultCourseImage
	}
	if req.Price != nil {
		course.Price = *req.Price
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.invalidate(ctx)

	s.log.Info().
		Str("course_id", course.ID.String()).
		Str("owner_id", ownerID.String()).
		Msg("Course created")
	return course, nil
}

// List returns the whole catalog, newest first. The Redis copy is used when present.
// A miss refills the cache only if no course write landed while the store was read.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	if s.cache == nil {
		return s.listFromStore(ctx)
	}

	courses, ok, err := s.cache.GetCourseList(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Course cache read failed")
	} else if ok {
		return courses, nil
	}

	gen, genErr := s.cache.CourseListGeneration(ctx)
	if genErr != nil {
		s.log.Warn().Err(genErr).Msg("Course cache generation read failed")
	}

	courses, err = s.listFromStore(ctx)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		stored, err := s.cache.SetCourseList(ctx, gen, courses)
		if err != nil {
			s.log.Warn().Err(err).Msg("Course cache write failed")
		} else if !stored {
			s.log.Debug().Int64("generation", gen).Msg("Course cache fill skipped after concurrent write")
		}
	}
	return courses, nil
}

func (s *CourseService) listFromStore(ctx context.Context) ([]model.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a course by its UUID.
func (s *CourseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return course, nil
}

// getOwned loads a course and checks that callerID owns it.
// A missing course is reported before ownership is looked at.
func (s *CourseService) getOwned(ctx context.Context, callerID, id uuid.UUID) (*model.Course, error) {
	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return course, nil
}

// Update applies a partial update. Owner only.
func (s *CourseService) Update(ctx context.Context, callerID, id uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	req.Apply(course)

	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	s.invalidate(ctx)
	return course, nil
}

// Delete removes a course, its comments and its enrollments. Owner only.
func (s *CourseService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, callerID, id); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("delete course: %w", err)
	}
	s.invalidate(ctx)

	s.log.Info().Str("course_id", id.String()).Msg("Course deleted")
	return nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCourseList(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Course cache invalidation failed")
	}
}
