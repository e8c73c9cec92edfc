package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCourseImage is used when a course is created without a cover.
const DefaultCourseImage = "https://via.placeholder.com/300"

// Chapter is one video of a course. Chapters have no identity of their own.
type Chapter struct {
	Title    string `json:"title" binding:"required,notblank"`
	VideoURL string `json:"videoUrl" binding:"required,notblank"`
}

// Course is a catalog entry owned by the user who created it.
type Course struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Chapters    []Chapter `json:"chapters"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCourseRequest is the payload for POST /courses.
type CreateCourseRequest struct {
	Title       string    `json:"title" binding:"required,notblank,max=200"`
	Description string    `json:"description" binding:"required,notblank"`
	Image       string    `json:"image" binding:"omitempty,max=2048"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Chapters    []Chapter `json:"chapters" binding:"omitempty,dive"`
}

// UpdateCourseRequest is the payload for PUT /courses/:id.
// Nil or empty strings keep the stored value; whitespace-only strings are
// rejected like on create. Price and Chapters are applied whenever they are
// present in the body, including 0 and [].
type UpdateCourseRequest struct {
	Title       *string   `json:"title" binding:"omitempty,notblank,max=200"`
	Description *string   `json:"description" binding:"omitempty,notblank"`
	Image       *string   `json:"image" binding:"omitempty,max=2048"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Chapters    []Chapter `json:"chapters" binding:"omitempty,dive"`
}

// Apply merges the request into c.
func (r *UpdateCourseRequest) Apply(c *Course) {
	if r.Title != nil {
		if title := strings.TrimSpace(*r.Title); title != "" {
			c.Title = title
		}
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) != "" {
		c.Description = *r.Description
	}
	if r.Image != nil && *r.Image != "" {
		c.Image = *r.Image
	}
	if r.Price != nil {
		c.Price = *r.Price
	}
	if r.Chapters != nil {
		c.Chapters = append([]Chapter{}, r.Chapters...)
	}
}
