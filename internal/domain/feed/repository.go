package feed

import (
	"context"

	"github.com/innolink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IdeaRepository defines persistence operations for ideas
type IdeaRepository interface {
	Create(ctx context.Context, idea *Idea) error
	Update(ctx context.Context, idea *Idea) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Idea, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Idea, int64, error)
	// SaveComment appends a single comment without rewriting the aggregate.
	SaveComment(ctx context.Context, comment *Comment) error
	// ReplaceLikes persists the full like set for the idea.
	ReplaceLikes(ctx context.Context, ideaID uuid.UUID, usernames []string) error
}
