package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/innolink/backend/internal/application/feed"
	"github.com/innolink/backend/internal/application/identity"
	"github.com/innolink/backend/internal/domain/shared"
	"github.com/innolink/backend/internal/interfaces/http/dto"
	"github.com/innolink/backend/internal/interfaces/http/middleware"
)

// IdeaHandler handles the idea feed HTTP requests
type IdeaHandler struct {
	BaseHandler
	ideaService *feed.IdeaService
	authService *identity.AuthService
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(ideaService *feed.IdeaService, authService *identity.AuthService) *IdeaHandler {
	return &IdeaHandler{
		ideaService: ideaService,
		authService: authService,
	}
}

// CreateIdeaRequest is the request body for publishing an idea
type CreateIdeaRequest struct {
	Topic       string `json:"topic" binding:"required"`
	Description string `json:"description" binding:"required"`
	Stage       string `json:"stage"`
	Market      string `json:"market"`
	Goals       string `json:"goals"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	StartupName string `json:"startup_name"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
}

// UpdateIdeaRequest is the request body for editing an idea
type UpdateIdeaRequest struct {
	Description string `json:"description" binding:"required"`
}

// CommentRequest is the request body for commenting on an idea
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse is a single comment
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// IdeaResponse is the full read model of an idea
type IdeaResponse struct {
	ID          uuid.UUID         `json:"id"`
	Username    string            `json:"username"`
	Topic       string            `json:"topic"`
	Description string            `json:"description"`
	Stage       string            `json:"stage,omitempty"`
	Market      string            `json:"market,omitempty"`
	Goals       string            `json:"goals,omitempty"`
	FullName    string            `json:"full_name,omitempty"`
	Role        string            `json:"role,omitempty"`
	StartupName string            `json:"startup_name,omitempty"`
	Industry    string            `json:"industry,omitempty"`
	Website     string            `json:"website,omitempty"`
	Comments    []CommentResponse `json:"comments"`
	Likes       []string          `json:"likes"`
	LikeCount   int               `json:"like_count"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Create publishes a new idea attributed to the authenticated user
func (h *IdeaHandler) Create(c *gin.Context) {
	var req CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.ideaService.Create(c.Request.Context(), feed.CreateIdeaInput{
		Username:    user.Username,
		Email:       user.Email,
		Topic:       req.Topic,
		Description: req.Description,
		Stage:       req.Stage,
		Market:      req.Market,
		Goals:       req.Goals,
		FullName:    req.FullName,
		Role:        req.Role,
		StartupName: req.StartupName,
		Industry:    req.Industry,
		Website:     req.Website,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toIdeaResponse(result))
}

// List returns one page of the feed, newest first
func (h *IdeaHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	result, err := h.ideaService.List(c.Request.Context(), feed.ListIdeasInput{
		Filter: shared.Filter{Page: req.Page, PageSize: req.PageSize},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ideas := make([]IdeaResponse, 0, len(result.Ideas))
	for i := range result.Ideas {
		ideas = append(ideas, toIdeaResponse(&result.Ideas[i]))
	}
	h.SuccessWithMeta(c, ideas, result.Total, req.Page, req.PageSize)
}

// Get returns a single idea
func (h *IdeaHandler) Get(c *gin.Context) {
	ideaID, ok := h.parseIdeaID(c)
	if !ok {
		return
	}

	result, err := h.ideaService.Get(c.Request.Context(), ideaID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toIdeaResponse(result))
}

// Update edits an idea's description. Only the author may edit.
func (h *IdeaHandler) Update(c *gin.Context) {
	ideaID, ok := h.parseIdeaID(c)
	if !ok {
		return
	}

	var req UpdateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.ideaService.UpdateDescription(c.Request.Context(), feed.UpdateDescriptionInput{
		IdeaID:      ideaID,
		Username:    getUsername(c),
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toIdeaResponse(result))
}

// Delete removes an idea. Only the author may delete.
func (h *IdeaHandler) Delete(c *gin.Context) {
	ideaID, ok := h.parseIdeaID(c)
	if !ok {
		return
	}

	if err := h.ideaService.Delete(c.Request.Context(), ideaID, getUsername(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Comment appends a comment to an idea
func (h *IdeaHandler) Comment(c *gin.Context) {
	ideaID, ok := h.parseIdeaID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	comment, err := h.ideaService.AddComment(c.Request.Context(), feed.AddCommentInput{
		IdeaID:   ideaID,
		Username: getUsername(c),
		Text:     req.Text,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, CommentResponse{
		ID:        comment.ID,
		Username:  comment.Username,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
}

// Like toggles the caller's like on an idea
func (h *IdeaHandler) Like(c *gin.Context) {
	ideaID, ok := h.parseIdeaID(c)
	if !ok {
		return
	}

	count, err := h.ideaService.ToggleLike(c.Request.Context(), feed.ToggleLikeInput{
		IdeaID:   ideaID,
		Username: getUsername(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"like_count": count})
}

func (h *IdeaHandler) parseIdeaID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid idea ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid idea ID")
		return uuid.Nil, false
	}
	return id, true
}

func toIdeaResponse(idea *feed.IdeaInfo) IdeaResponse {
	comments := make([]CommentResponse, 0, len(idea.Comments))
	for _, comment := range idea.Comments {
		comments = append(comments, CommentResponse{
			ID:        comment.ID,
			Username:  comment.Username,
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}
	return IdeaResponse{
		ID:          idea.ID,
		Username:    idea.Username,
		Topic:       idea.Topic,
		Description: idea.Description,
		Stage:       idea.Stage,
		Market:      idea.Market,
		Goals:       idea.Goals,
		FullName:    idea.FullName,
		Role:        idea.Role,
		StartupName: idea.StartupName,
		Industry:    idea.Industry,
		Website:     idea.Website,
		Comments:    comments,
		Likes:       idea.Likes,
		LikeCount:   idea.LikeCount,
		CreatedAt:   idea.CreatedAt,
		UpdatedAt:   idea.UpdatedAt,
	}
}
