package feed

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/innolink/backend/internal/domain/feed"
	"github.com/innolink/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdeaService handles the idea feed: publishing, editing, comments and likes
type IdeaService struct {
	ideaRepo feed.IdeaRepository
	logger   *zap.Logger
}

// NewIdeaService creates a new idea service
func NewIdeaService(ideaRepo feed.IdeaRepository, logger *zap.Logger) *IdeaService {
	return &IdeaService{
		ideaRepo: ideaRepo,
		logger:   logger,
	}
}

// Create publishes a new idea attributed to the authenticated user
func (s *IdeaService) Create(ctx context.Context, input CreateIdeaInput) (*IdeaInfo, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Topic is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Description is required")
	}

	idea := feed.NewIdea(input.Username, input.Email)
	idea.Topic = input.Topic
	idea.Description = input.Description
	idea.Stage = input.Stage
	idea.Market = input.Market
	idea.Goals = input.Goals
	idea.FullName = input.FullName
	idea.Role = input.Role
	idea.StartupName = input.StartupName
	idea.Industry = input.Industry
	idea.Website = input.Website

	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		s.logger.Error("Failed to create idea", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Idea published",
		zap.String("idea_id", idea.GetID().String()),
		zap.String("username", input.Username))

	info := toIdeaInfo(idea)
	return &info, nil
}

// List returns one page of the feed, newest first
func (s *IdeaService) List(ctx context.Context, input ListIdeasInput) (*ListIdeasResult, error) {
	ideas, total, err := s.ideaRepo.FindAll(ctx, input.Filter)
	if err != nil {
		s.logger.Error("Failed to list ideas", zap.Error(err))
		return nil, err
	}

	result := &ListIdeasResult{
		Ideas: make([]IdeaInfo, 0, len(ideas)),
		Total: total,
	}
	for _, idea := range ideas {
		result.Ideas = append(result.Ideas, toIdeaInfo(idea))
	}
	return result, nil
}

// Get returns a single idea by ID
func (s *IdeaService) Get(ctx context.Context, ideaID uuid.UUID) (*IdeaInfo, error) {
	idea, err := s.ideaRepo.FindByID(ctx, ideaID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	info := toIdeaInfo(idea)
	return &info, nil
}

// UpdateDescription edits an idea's description. Only the owner may edit.
func (s *IdeaService) UpdateDescription(ctx context.Context, input UpdateDescriptionInput) (*IdeaInfo, error) {
	idea, err := s.ideaRepo.FindByID(ctx, input.IdeaID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !idea.IsOwnedBy(input.Username) {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the author can edit this idea")
	}

	if err := idea.UpdateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := s.ideaRepo.Update(ctx, idea); err != nil {
		s.logger.Error("Failed to update idea", zap.Error(err))
		return nil, err
	}

	info := toIdeaInfo(idea)
	return &info, nil
}

// Delete removes an idea together with its comments and likes. Only the
// owner may delete.
func (s *IdeaService) Delete(ctx context.Context, ideaID uuid.UUID, username string) error {
	idea, err := s.ideaRepo.FindByID(ctx, ideaID)
	if err != nil {
		return shared.ErrNotFound
	}
	if !idea.IsOwnedBy(username) {
		return shared.NewDomainError("FORBIDDEN", "Only the author can delete this idea")
	}

	if err := s.ideaRepo.Delete(ctx, ideaID); err != nil {
		s.logger.Error("Failed to delete idea", zap.Error(err))
		return err
	}

	s.logger.Info("Idea deleted",
		zap.String("idea_id", ideaID.String()),
		zap.String("username", username))
	return nil
}

// AddComment appends a comment to an idea. Any authenticated user may comment.
func (s *IdeaService) AddComment(ctx context.Context, input AddCommentInput) (*CommentInfo, error) {
	idea, err := s.ideaRepo.FindByID(ctx, input.IdeaID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	comment, err := idea.AddComment(input.Username, input.Text)
	if err != nil {
		return nil, err
	}
	if err := s.ideaRepo.SaveComment(ctx, comment); err != nil {
		s.logger.Error("Failed to save comment", zap.Error(err))
		return nil, err
	}

	return &CommentInfo{
		ID:        comment.ID,
		Username:  comment.Username,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}, nil
}

// ToggleLike flips the caller's like on an idea and returns the new count
func (s *IdeaService) ToggleLike(ctx context.Context, input ToggleLikeInput) (int, error) {
	idea, err := s.ideaRepo.FindByID(ctx, input.IdeaID)
	if err != nil {
		return 0, shared.ErrNotFound
	}

	count := idea.ToggleLike(input.Username)
	if err := s.ideaRepo.ReplaceLikes(ctx, idea.GetID(), idea.Likes); err != nil {
		s.logger.Error("Failed to persist likes", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func toIdeaInfo(idea *feed.Idea) IdeaInfo {
	comments := make([]CommentInfo, 0, len(idea.Comments))
	for _, c := range idea.Comments {
		comments = append(comments, CommentInfo{
			ID:        c.ID,
			Username:  c.Username,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return IdeaInfo{
		ID:          idea.GetID(),
		Username:    idea.Username,
		Email:       idea.Email,
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
		LikeCount:   idea.LikeCount(),
		CreatedAt:   idea.GetCreatedAt(),
		UpdatedAt:   idea.GetUpdatedAt(),
	}
}
