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

// CommentHandler handles course discussion threads.
type CommentHandler struct {
	commentService *service.CommentService
	log            zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *service.CommentService, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		log:            log.With().Str("component", "comment_handler").Logger(),
	}
}

// ListByCourse godoc
// GET /api/comments/:courseId
// Newest first, with author name and role.
func (h *CommentHandler) ListByCourse(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		response.Success(c, http.StatusOK, []model.CommentView{})
		return
	}

	comments, err := h.commentService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		failService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, comments)
}

// Create godoc
// POST /api/comments/:courseId
func (h *CommentHandler) Create(c *gin.Context) {
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

	var req model.CreateCommentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), claims.UserID, courseID, req.Text)
	if err != nil {
		failService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, comment)
}

// Delete godoc
// DELETE /api/comments/:id
// Author only.
func (h *CommentHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrCommentNotFound)
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		failService(c, h.log, err)
		return
	}
	response.Ack(c, http.StatusOK, "Komentar dihapus")
}
