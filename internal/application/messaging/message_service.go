package messaging

import (
	"context"
	"encoding/json"

	"github.com/innolink/backend/internal/domain/messaging"
	"github.com/innolink/backend/internal/domain/shared"
	"github.com/innolink/backend/internal/infrastructure/realtime"
	"go.uber.org/zap"
)

// UsernameLister provides the directory of usernames shown in the chat UI
type UsernameLister interface {
	ListUsernames(ctx context.Context) ([]string, error)
}

// MessageService handles direct messages between users. Sent messages are
// persisted first, then pushed to the recipient's realtime channel.
type MessageService struct {
	messageRepo messaging.MessageRepository
	users       UsernameLister
	bus         realtime.MessageBus
	logger      *zap.Logger
}

// NewMessageService creates a new message service
func NewMessageService(
	messageRepo messaging.MessageRepository,
	users UsernameLister,
	bus realtime.MessageBus,
	logger *zap.Logger,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		users:       users,
		bus:         bus,
		logger:      logger,
	}
}

// InboxChannel is the realtime channel a user subscribes to for incoming
// direct messages.
func InboxChannel(username string) string {
	return "dm:" + username
}

// Send persists a direct message and publishes it to the recipient's inbox
// channel. Delivery is best-effort; publish failures do not fail the send.
func (s *MessageService) Send(ctx context.Context, input SendMessageInput) (*MessageInfo, error) {
	message, err := messaging.NewMessage(input.Sender, input.Recipient, input.Body)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		s.logger.Error("Failed to persist message", zap.Error(err))
		return nil, err
	}

	info := toMessageInfo(message)
	if payload, err := json.Marshal(info); err == nil {
		if err := s.bus.Publish(ctx, InboxChannel(message.Recipient), payload); err != nil {
			s.logger.Warn("Failed to publish message to realtime bus",
				zap.String("recipient", message.Recipient),
				zap.Error(err))
		}
	}

	return &info, nil
}

// Conversation returns all messages between two users, oldest first. The
// requester must be one of the participants.
func (s *MessageService) Conversation(ctx context.Context, input ConversationInput) ([]MessageInfo, error) {
	if input.Requester != input.PeerA && input.Requester != input.PeerB {
		return nil, shared.NewDomainError("FORBIDDEN", "Not a participant in this conversation")
	}

	messages, err := s.messageRepo.FindConversation(ctx, input.PeerA, input.PeerB)
	if err != nil {
		s.logger.Error("Failed to load conversation", zap.Error(err))
		return nil, err
	}

	result := make([]MessageInfo, 0, len(messages))
	for _, m := range messages {
		result = append(result, toMessageInfo(m))
	}
	return result, nil
}

// ListUsernames returns every registered username for the chat directory
func (s *MessageService) ListUsernames(ctx context.Context) ([]string, error) {
	return s.users.ListUsernames(ctx)
}

func toMessageInfo(m *messaging.Message) MessageInfo {
	return MessageInfo{
		ID:        m.GetID(),
		Sender:    m.Sender,
		Recipient: m.Recipient,
		Body:      m.Body,
		CreatedAt: m.GetCreatedAt(),
	}
}
