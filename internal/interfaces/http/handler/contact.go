package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/innolink/backend/internal/infrastructure/mail"
	"github.com/innolink/backend/internal/interfaces/http/middleware"
)

// ContactHandler handles public contact form submissions
type ContactHandler struct {
	BaseHandler
	mailer mail.Mailer
}

// NewContactHandler creates a new contact handler
func NewContactHandler(mailer mail.Mailer) *ContactHandler {
	return &ContactHandler{
		mailer: mailer,
	}
}

// ContactRequest is a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Submit forwards a contact form submission to the configured inbox
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	err := h.mailer.SendContactMessage(c.Request.Context(), mail.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.InternalError(c, "Failed to send message")
		return
	}

	h.Success(c, gin.H{"sent": true})
}
