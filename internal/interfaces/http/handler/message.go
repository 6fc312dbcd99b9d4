package handler

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/innolink/backend/internal/application/messaging"
	"github.com/innolink/backend/internal/infrastructure/realtime"
	"github.com/innolink/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// MessageHandler handles direct messaging HTTP requests, including the
// SSE stream used for realtime delivery.
type MessageHandler struct {
	BaseHandler
	messageService *messaging.MessageService
	bus            realtime.MessageBus
	logger         *zap.Logger
	heartbeat      time.Duration
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *messaging.MessageService, bus realtime.MessageBus, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		bus:            bus,
		logger:         logger,
		heartbeat:      30 * time.Second,
	}
}

// SendMessageRequest is the request body for sending a direct message
type SendMessageRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Body      string `json:"body" binding:"required"`
}

// MessageResponse is a single direct message
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Send persists a direct message and pushes it to the recipient's stream
func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.messageService.Send(c.Request.Context(), messaging.SendMessageInput{
		Sender:    getUsername(c),
		Recipient: req.Recipient,
		Body:      req.Body,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toMessageResponse(*result))
}

// Conversation returns all messages between the caller and a peer
func (h *MessageHandler) Conversation(c *gin.Context) {
	peer := c.Param("username")
	caller := getUsername(c)

	messages, err := h.messageService.Conversation(c.Request.Context(), messaging.ConversationInput{
		Requester: caller,
		PeerA:     caller,
		PeerB:     peer,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, toMessageResponse(m))
	}
	h.Success(c, result)
}

// Users returns every registered username for the chat directory
func (h *MessageHandler) Users(c *gin.Context) {
	usernames, err := h.messageService.ListUsernames(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, usernames)
}

// Stream opens an SSE connection delivering the caller's incoming messages
func (h *MessageHandler) Stream(c *gin.Context) {
	username := getUsername(c)
	if username == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	reqCtx := c.Request.Context()
	events, cancel, err := h.bus.Subscribe(reqCtx, messaging.InboxChannel(username))
	if err != nil {
		h.InternalError(c, "Failed to open message stream")
		return
	}
	defer cancel()

	h.logger.Info("Message stream connected", zap.String("username", username))

	sendEvent(c.Writer, "connected", fmt.Sprintf(`{"username":%q,"timestamp":%d}`, username, time.Now().Unix()))
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("Message stream disconnected", zap.String("username", username))
			return
		case <-ticker.C:
			sendEvent(c.Writer, "heartbeat", fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()))
			c.Writer.Flush()
		case payload, ok := <-events:
			if !ok {
				return
			}
			sendEvent(c.Writer, "message", string(payload))
			c.Writer.Flush()
		}
	}
}

// sendEvent writes an SSE event to the response writer
func sendEvent(w io.Writer, event, data string) {
	if event != "" {
		fmt.Fprintf(w, "event: %s\n", event)
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}

func toMessageResponse(m messaging.MessageInfo) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Sender:    m.Sender,
		Recipient: m.Recipient,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}
