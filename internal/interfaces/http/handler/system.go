package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/innolink/backend/internal/infrastructure/scheduler"
)

// SystemHandler handles health and operational endpoints
type SystemHandler struct {
	BaseHandler
	botScheduler *scheduler.BotScheduler
	startTime    time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(botScheduler *scheduler.BotScheduler) *SystemHandler {
	return &SystemHandler{
		botScheduler: botScheduler,
		startTime:    time.Now(),
	}
}

// Health reports service liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":     "ok",
		"go_version": runtime.Version(),
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
	})
}

// BotStatus reports the bot scheduler state
func (h *SystemHandler) BotStatus(c *gin.Context) {
	if h.botScheduler == nil {
		h.Success(c, gin.H{"enabled": false})
		return
	}
	h.Success(c, h.botScheduler.GetStatus())
}

// TriggerBotRun manually triggers one bot posting run
func (h *SystemHandler) TriggerBotRun(c *gin.Context) {
	if h.botScheduler == nil {
		h.InternalError(c, "Bot scheduler not configured")
		return
	}

	if err := h.botScheduler.TriggerManualRun(); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Bot posting run triggered"})
}
