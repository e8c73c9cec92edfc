package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexlearn/nexlearn-backend/internal/middleware"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/nexlearn/nexlearn-backend/internal/response"
	"github.com/nexlearn/nexlearn-backend/internal/service"
	"github.com/nexlearn/nexlearn-backend/internal/validator"
	"github.com/rs/zerolog"
)

// CourseHandler handles the course directory.
type CourseHandler struct {
	courseService *service.CourseService
	log           zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		log:           log.With().Str("component", "course_handler").Logger(),
	}
}

// List godoc
// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		failService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, courses)
}

// GetByID godoc
// GET /api/courses/:id
func (h *CourseHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		failService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// Create godoc
// POST /api/courses
// The caller becomes the owner.
func (h *CourseHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// Update godoc
// PUT /api/courses/:id
// Owner only. Omitted or empty text fields keep their stored value.
func (h *CourseHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), claims.UserID, id, &req)
	if err != nil {
		failService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// Delete godoc
// DELETE /api/courses/:id
// Owner only. Comments and enrollments of the course go with it.
func (h *CourseHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		failService(c, h.log, err)
		return
	}
	response.Ack(c, http.StatusOK, "Kursus berhasil dihapus")
}
