package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/innolink/backend/internal/application/billing"
	"github.com/innolink/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles pro upgrade HTTP requests
type PaymentHandler struct {
	BaseHandler
	paymentService *billing.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *billing.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreateSessionRequest is the request body for opening a checkout session
type CreateSessionRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
	Plan  string          `json:"plan"`
}

// ConfirmUpgradeRequest is the request body for completing an upgrade
type ConfirmUpgradeRequest struct {
	Plan string `json:"plan"`
}

// CreateSession opens a checkout session and returns the redirect URL
func (h *PaymentHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.paymentService.CreateCheckoutSession(c.Request.Context(), billing.CreateCheckoutInput{
		UserID:   userID,
		Username: getUsername(c),
		Price:    req.Price,
		Plan:     req.Plan,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"session_id": result.SessionID,
		"url":        result.URL,
	})
}

// ConfirmUpgrade marks the caller as pro after a completed payment
func (h *PaymentHandler) ConfirmUpgrade(c *gin.Context) {
	var req ConfirmUpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.paymentService.ConfirmUpgrade(c.Request.Context(), billing.ConfirmUpgradeInput{
		UserID: userID,
		Plan:   req.Plan,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"access_token": result.AccessToken,
		"expires_at":   result.ExpiresAt,
		"token_type":   result.TokenType,
		"is_pro":       result.IsPro,
		"active_plan":  result.ActivePlan,
	})
}
