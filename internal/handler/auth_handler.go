package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/nexlearn/nexlearn-backend/internal/response"
	"github.com/nexlearn/nexlearn-backend/internal/service"
	"github.com/nexlearn/nexlearn-backend/internal/validator"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Register godoc
// POST /api/auth/register
// Creates a student account. No token is returned.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), &req); err != nil {
		failService(c, h.log, err)
		return
	}

	response.Ack(c, http.StatusCreated, "Registrasi berhasil")
}

// Login godoc
// POST /api/auth/login
// Validates email + password and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusBadRequest, response.ErrUserNotFound)
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidCredentials)
		default:
			failService(c, h.log, err)
		}
		return
	}

	response.Success(c, http.StatusOK, model.LoginResponse{
		Token: token,
		User:  user.Summary(),
	})
}
