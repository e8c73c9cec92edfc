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

// CommentService handles per-course discussion threads.
type CommentService struct {
	comments CommentStore
	courses  CourseStore
	feed     CommentPublisher
	log      zerolog.Logger
}

// NewCommentService creates a new CommentService. feed may be nil.
func NewCommentService(comments CommentStore, courses CourseStore, feed CommentPublisher, log zerolog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		courses:  courses,
		feed:     feed,
		log:      log.With().Str("component", "comment_service").Logger(),
	}
}

// Create posts a comment on an existing course and returns it with the author expanded.
func (s *CommentService) Create(ctx context.Context, authorID, courseID uuid.UUID, text string) (*model.CommentView, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	comment := &model.Comment{
		CourseID: courseID,
		UserID:   authorID,
		Text:     strings.TrimSpace(text),
	}
	// The course can be deleted between the check above and the insert.
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}

	view, err := s.comments.GetView(ctx, comment.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("load comment: %w", err)
	}

	s.publish(ctx, &model.CommentEvent{
		Event:     model.CommentCreated,
		CourseID:  courseID,
		CommentID: view.ID,
		Comment:   view,
	})
	return view, nil
}

// ListByCourse returns a course's comments, newest first.
func (s *CommentService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.CommentView, error) {
	comments, err := s.comments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Delete removes a comment. Only its author may do so.
func (s *CommentService) Delete(ctx context.Context, callerID, commentID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("get comment: %w", err)
	}
	if comment.UserID != callerID {
		return ErrForbidden
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}

	s.publish(ctx, &model.CommentEvent{
		Event:     model.CommentDeleted,
		CourseID:  comment.CourseID,
		CommentID: comment.ID,
	})
	return nil
}

func (s *CommentService) publish(ctx context.Context, ev *model.CommentEvent) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).
			Str("course_id", ev.CourseID.String()).
			Str("event", string(ev.Event)).
			Msg("Comment event publish failed")
	}
}
