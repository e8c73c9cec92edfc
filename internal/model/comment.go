package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a discussion entry attached to a course.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course"`
	UserID    uuid.UUID `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"date"`
}

// CommentAuthor is the expanded author of a comment.
type CommentAuthor struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role Role      `json:"role"`
}

// CommentView is a comment with its author resolved, as returned by the API.
type CommentView struct {
	ID        uuid.UUID     `json:"id"`
	CourseID  uuid.UUID     `json:"course"`
	User      CommentAuthor `json:"user"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"date"`
}

// CreateCommentRequest is the payload for POST /comments/:courseId.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,notblank,max=2000"`
}

// CommentEventType names what happened to a comment.
type CommentEventType string

const (
	CommentCreated CommentEventType = "comment_created"
	CommentDeleted CommentEventType = "comment_deleted"
)

// CommentEvent is published on the course comment feed.
type CommentEvent struct {
	Event     CommentEventType `json:"event"`
	CourseID  uuid.UUID        `json:"course"`
	CommentID uuid.UUID        `json:"commentId"`
	Comment   *CommentView     `json:"comment,omitempty"`
}
