package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a NexLearn account.
type User struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	PasswordHash    string      `json:"-"`
	Role            Role        `json:"role"`
	EnrolledCourses []uuid.UUID `json:"enrolledCourses"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// IsEnrolled reports whether courseID is on the user's enrollment list.
func (u *User) IsEnrolled(courseID uuid.UUID) bool {
	for _, id := range u.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// Summary returns the public-safe subset sent back on login.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Role: u.Role}
}

// UserSummary is the login response view of a user.
type UserSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role Role      `json:"role"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// UpdateProfileRequest is the payload for PUT /users/profile.
// An empty name keeps the current one.
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"omitempty,max=100"`
}
