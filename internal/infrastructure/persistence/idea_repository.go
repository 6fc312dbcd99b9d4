package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/innolink/backend/internal/domain/feed"
	"github.com/innolink/backend/internal/domain/shared"
	"github.com/innolink/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormIdeaRepository implements IdeaRepository using GORM
type GormIdeaRepository struct {
	db *gorm.DB
}

// NewGormIdeaRepository creates a new GormIdeaRepository
func NewGormIdeaRepository(db *gorm.DB) *GormIdeaRepository {
	return &GormIdeaRepository{db: db}
}

// Create creates a new idea
func (r *GormIdeaRepository) Create(ctx context.Context, idea *feed.Idea) error {
	model := models.IdeaModelFromDomain(idea)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing idea
func (r *GormIdeaRepository) Update(ctx context.Context, idea *feed.Idea) error {
	model := models.IdeaModelFromDomain(idea)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an idea and its comments and likes
func (r *GormIdeaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("idea_id = ?", id).Delete(&models.IdeaCommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("idea_id = ?", id).Delete(&models.IdeaLikeModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.IdeaModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds an idea by ID with comments and likes loaded
func (r *GormIdeaRepository) FindByID(ctx context.Context, id uuid.UUID) (*feed.Idea, error) {
	var model models.IdeaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	idea := model.ToDomain()
	if err := r.loadCommentsAndLikes(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

// FindAll returns ideas ordered newest first, with comments and likes loaded
func (r *GormIdeaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*feed.Idea, int64, error) {
	var ideaModels []*models.IdeaModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.IdeaModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&ideaModels).Error; err != nil {
		return nil, 0, err
	}

	ideas := make([]*feed.Idea, len(ideaModels))
	for i, model := range ideaModels {
		ideas[i] = model.ToDomain()
		if err := r.loadCommentsAndLikes(ctx, ideas[i]); err != nil {
			return nil, 0, err
		}
	}
	return ideas, total, nil
}

// SaveComment appends a single comment
func (r *GormIdeaRepository) SaveComment(ctx context.Context, comment *feed.Comment) error {
	model := &models.IdeaCommentModel{
		ID:        comment.ID,
		IdeaID:    comment.IdeaID,
		Username:  comment.Username,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// ReplaceLikes persists the full like set for the idea
func (r *GormIdeaRepository) ReplaceLikes(ctx context.Context, ideaID uuid.UUID, usernames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("idea_id = ?", ideaID).Delete(&models.IdeaLikeModel{}).Error; err != nil {
			return err
		}
		if len(usernames) == 0 {
			return nil
		}
		likes := make([]models.IdeaLikeModel, len(usernames))
		now := time.Now()
		for i, username := range usernames {
			likes[i] = models.IdeaLikeModel{
				IdeaID:    ideaID,
				Username:  username,
				CreatedAt: now,
			}
		}
		return tx.Create(&likes).Error
	})
}

func (r *GormIdeaRepository) loadCommentsAndLikes(ctx context.Context, idea *feed.Idea) error {
	var commentModels []models.IdeaCommentModel
	if err := r.db.WithContext(ctx).
		Where("idea_id = ?", idea.ID).
		Order("created_at ASC").
		Find(&commentModels).Error; err != nil {
		return err
	}
	idea.Comments = make([]feed.Comment, len(commentModels))
	for i, m := range commentModels {
		idea.Comments[i] = m.ToDomain()
	}

	var likes []string
	if err := r.db.WithContext(ctx).
		Model(&models.IdeaLikeModel{}).
		Where("idea_id = ?", idea.ID).
		Pluck("username", &likes).Error; err != nil {
		return err
	}
	idea.Likes = likes
	return nil
}

// Ensure GormIdeaRepository implements IdeaRepository
var _ feed.IdeaRepository = (*GormIdeaRepository)(nil)
