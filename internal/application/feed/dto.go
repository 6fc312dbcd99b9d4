package feed

import (
	"time"

	"github.com/google/uuid"
	"github.com/innolink/backend/internal/domain/shared"
)

// CreateIdeaInput contains the input for publishing a new idea
type CreateIdeaInput struct {
	Username    string
	Email       string
	Topic       string
	Description string
	Stage       string
	Market      string
	Goals       string
	FullName    string
	Role        string
	StartupName string
	Industry    string
	Website     string
}

// UpdateDescriptionInput contains the input for editing an idea's description
type UpdateDescriptionInput struct {
	IdeaID      uuid.UUID
	Username    string
	Description string
}

// AddCommentInput contains the input for commenting on an idea
type AddCommentInput struct {
	IdeaID   uuid.UUID
	Username string
	Text     string
}

// ToggleLikeInput contains the input for liking or unliking an idea
type ToggleLikeInput struct {
	IdeaID   uuid.UUID
	Username string
}

// ListIdeasInput contains pagination for the feed
type ListIdeasInput struct {
	Filter shared.Filter
}

// ListIdeasResult is one page of the feed plus the total count
type ListIdeasResult struct {
	Ideas []IdeaInfo
	Total int64
}

// CommentInfo is a single comment on an idea
type CommentInfo struct {
	ID        uuid.UUID
	Username  string
	Text      string
	CreatedAt time.Time
}

// IdeaInfo is the full read model of an idea
type IdeaInfo struct {
	ID          uuid.UUID
	Username    string
	Email       string
	Topic       string
	Description string
	Stage       string
	Market      string
	Goals       string
	FullName    string
	Role        string
	StartupName string
	Industry    string
	Website     string
	Comments    []CommentInfo
	Likes       []string
	LikeCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
