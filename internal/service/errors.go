package service

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map these onto response codes with errors.Is.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrTokenInvalid)

	ErrCourseNotFound  = errors.New("course not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("not allowed to modify this resource")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")

	ErrContactUnavailable = errors.New("contact relay not configured")
)
