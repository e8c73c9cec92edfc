package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexlearn/nexlearn-backend/internal/middleware"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/nexlearn/nexlearn-backend/internal/response"
	"github.com/nexlearn/nexlearn-backend/internal/service"
	"github.com/nexlearn/nexlearn-backend/internal/validator"
	"github.com/rs/zerolog"
)

// UserHandler handles profile, enrollment and the admin user listing.
type UserHandler struct {
	userService       *service.UserService
	enrollmentService *service.EnrollmentService
	log               zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, enrollmentService *service.EnrollmentService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService:       userService,
		enrollmentService: enrollmentService,
		log:               log.With().Str("component", "user_handler").Logger(),
	}
}

type enrollResponse struct {
	Msg             string      `json:"msg"`
	EnrolledCourses []uuid.UUID `json:"enrolledCourses"`
}

type checkEnrollResponse struct {
	IsEnrolled bool `json:"isEnrolled"`
}

type profileResponse struct {
	Msg  string      `json:"msg"`
	User *model.User `json:"user"`
}

// Enroll godoc
// POST /api/users/enroll/:courseId
func (h *UserHandler) Enroll(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, ok := pathID(c, "courseId")
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
		return
	}

	enrolled, err := h.enrollmentService.Join(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		failService(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, enrollResponse{
		Msg:             "Berhasil bergabung ke kelas!",
		EnrolledCourses: enrolled,
	})
}

// MyCourses godoc
// GET /api/users/my-courses
func (h *UserHandler) MyCourses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courses, err := h.enrollmentService.MyCourses(c.Request.Context(), claims.UserID)
	if err != nil {
		failService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, courses)
}

// CheckEnroll godoc
// GET /api/users/check-enroll/:courseId
// Never fails for a non-member; the answer is just false.
func (h *UserHandler) CheckEnroll(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID, ok := pathID(c, "courseId")
	if !ok {
		response.Success(c, http.StatusOK, checkEnrollResponse{IsEnrolled: false})
		return
	}

	enrolled, err := h.enrollmentService.IsEnrolled(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		failService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, checkEnrollResponse{IsEnrolled: enrolled})
}

// UpdateProfile godoc
// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpdateProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), claims.UserID, req.Name)
	if err != nil {
		failService(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, profileResponse{
		Msg:  "Profil berhasil diperbarui",
		User: user,
	})
}

// Me godoc
// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		failService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// List godoc
// GET /api/users
// Mounted behind middleware.RequireAdmin.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context())
	if err != nil {
		failService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}
