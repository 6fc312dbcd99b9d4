package persistence

import (
	"context"

	"github.com/innolink/backend/internal/domain/messaging"
	"github.com/innolink/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMessageRepository implements MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create persists a new message
func (r *GormMessageRepository) Create(ctx context.Context, message *messaging.Message) error {
	model := models.MessageModelFromDomain(message)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindConversation returns all messages exchanged between the two users in
// either direction, oldest first
func (r *GormMessageRepository) FindConversation(ctx context.Context, a, b string) ([]*messaging.Message, error) {
	var messageModels []*models.MessageModel
	if err := r.db.WithContext(ctx).
		Where("(sender = ? AND recipient = ?) OR (sender = ? AND recipient = ?)", a, b, b, a).
		Order("created_at ASC").
		Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]*messaging.Message, len(messageModels))
	for i, model := range messageModels {
		messages[i] = model.ToDomain()
	}
	return messages, nil
}

// Ensure GormMessageRepository implements MessageRepository
var _ messaging.MessageRepository = (*GormMessageRepository)(nil)
