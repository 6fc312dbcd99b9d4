package messaging

import (
	"context"
	"strings"

	"github.com/innolink/backend/internal/domain/shared"
)

// Message is a direct message between two users
type Message struct {
	shared.BaseEntity
	Sender    string
	Recipient string
	Body      string
}

// NewMessage creates a validated direct message
func NewMessage(sender, recipient, body string) (*Message, error) {
	sender = strings.TrimSpace(sender)
	recipient = strings.TrimSpace(recipient)
	if sender == "" || recipient == "" || strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Sender, recipient, and message are required")
	}
	if sender == recipient {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Cannot send a message to yourself")
	}
	return &Message{
		BaseEntity: shared.NewBaseEntity(),
		Sender:     sender,
		Recipient:  recipient,
		Body:       body,
	}, nil
}

// Involves reports whether the given username is a participant
func (m *Message) Involves(username string) bool {
	return m.Sender == username || m.Recipient == username
}

// MessageRepository defines persistence operations for direct messages
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	// FindConversation returns all messages exchanged between the two users,
	// in either direction, ordered by creation time.
	FindConversation(ctx context.Context, a, b string) ([]*Message, error)
}
