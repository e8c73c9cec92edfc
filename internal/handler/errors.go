package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexlearn/nexlearn-backend/internal/response"
	"github.com/nexlearn/nexlearn-backend/internal/service"
	"github.com/rs/zerolog"
)

// failService maps a domain error onto the HTTP error body. Anything not
// recognised is logged and reported as a generic 500.
func failService(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
	case errors.Is(err, service.ErrCommentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrCommentNotFound)
	case errors.Is(err, service.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Fail(c, http.StatusBadRequest, response.ErrAlreadyEnrolled)
	case errors.Is(err, service.ErrDuplicateEmail):
		response.Fail(c, http.StatusBadRequest, response.ErrDuplicateEmail)
	default:
		log.Error().Err(err).
			Str("request_id", response.RequestID(c)).
			Str("path", c.FullPath()).
			Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// pathID parses a UUID path parameter. A malformed id can never name an
// existing record, so callers report it as not found.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	return id, err == nil
}
