package feed

import (
	"slices"
	"strings"
	"time"

	"github.com/innolink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Idea represents a posted startup idea.
// It is the aggregate root for the feed; comments and likes belong to it.
type Idea struct {
	shared.BaseEntity
	Username    string
	Email       string
	FullName    string
	Topic       string
	Description string
	Stage       string
	Market      string
	Goals       string
	Role        string
	StartupName string
	Industry    string
	Website     string
	Comments    []Comment
	Likes       []string // usernames that liked the idea
}

// Comment is a user comment attached to an idea
type Comment struct {
	ID        uuid.UUID
	IdeaID    uuid.UUID
	Username  string
	Text      string
	CreatedAt time.Time
}

// NewIdea creates a new idea post attributed to the given account
func NewIdea(username, email string) *Idea {
	return &Idea{
		BaseEntity: shared.NewBaseEntity(),
		Username:   username,
		Email:      email,
		Comments:   make([]Comment, 0),
		Likes:      make([]string, 0),
	}
}

// IsOwnedBy reports whether the idea was posted by the given username
func (i *Idea) IsOwnedBy(username string) bool {
	return i.Username == username
}

// UpdateDescription replaces the idea description
func (i *Idea) UpdateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description is required")
	}
	i.Description = description
	i.Touch()
	return nil
}

// AddComment appends a comment and returns it
func (i *Idea) AddComment(username, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment text is required")
	}
	comment := Comment{
		ID:        uuid.New(),
		IdeaID:    i.ID,
		Username:  username,
		Text:      text,
		CreatedAt: time.Now(),
	}
	i.Comments = append(i.Comments, comment)
	i.Touch()
	return &comment, nil
}

// ToggleLike adds the username to the like set, or removes it if already
// present. Returns the resulting like count.
func (i *Idea) ToggleLike(username string) int {
	if idx := slices.Index(i.Likes, username); idx >= 0 {
		i.Likes = slices.Delete(i.Likes, idx, idx+1)
	} else {
		i.Likes = append(i.Likes, username)
	}
	i.Touch()
	return len(i.Likes)
}

// LikeCount returns the number of likes
func (i *Idea) LikeCount() int {
	return len(i.Likes)
}
