package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/nexlearn/nexlearn-backend/internal/response"
	"github.com/nexlearn/nexlearn-backend/internal/service"
	"github.com/nexlearn/nexlearn-backend/internal/validator"
	"github.com/rs/zerolog"
)

// ContactHandler accepts contact-form submissions.
type ContactHandler struct {
	contactService *service.ContactService
	log            zerolog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *service.ContactService, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		log:            log.With().Str("component", "contact_handler").Logger(),
	}
}

type contactResponse struct {
	Success   bool             `json:"success"`
	Msg       string           `json:"msg"`
	Code      response.ErrCode `json:"code,omitempty"`
	RequestID string           `json:"requestId,omitempty"`
}

// Submit godoc
// POST /api/contact
// Queues the message for the notification worker; delivery is asynchronous.
func (h *ContactHandler) Submit(c *gin.Context) {
	var msg model.ContactMessage
	if fields := validator.Bind(c, &msg); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.contactService.Submit(c.Request.Context(), &msg); err != nil {
		h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Contact submission failed")
		response.Success(c, http.StatusInternalServerError, contactResponse{
			Success:   false,
			Msg:       response.GetMessage(response.ErrContactFailed),
			Code:      response.ErrContactFailed,
			RequestID: response.RequestID(c),
		})
		return
	}

	response.Success(c, http.StatusOK, contactResponse{
		Success: true,
		Msg:     "Pesan berhasil dikirim ke email!",
	})
}
