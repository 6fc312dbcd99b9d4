package messaging

import (
	"time"

	"github.com/google/uuid"
)

// SendMessageInput contains the input for sending a direct message
type SendMessageInput struct {
	Sender    string
	Recipient string
	Body      string
}

// ConversationInput identifies a two-party conversation. Requester must be
// one of the two participants.
type ConversationInput struct {
	Requester string
	PeerA     string
	PeerB     string
}

// MessageInfo is a single direct message
type MessageInfo struct {
	ID        uuid.UUID
	Sender    string
	Recipient string
	Body      string
	CreatedAt time.Time
}
