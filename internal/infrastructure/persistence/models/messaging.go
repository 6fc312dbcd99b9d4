package models

import (
	"github.com/innolink/backend/internal/domain/messaging"
)

// MessageModel is the persistence model for direct messages.
type MessageModel struct {
	BaseModel
	Sender    string `gorm:"type:varchar(100);not null;index:idx_messages_pair"`
	Recipient string `gorm:"type:varchar(100);not null;index:idx_messages_pair"`
	Body      string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts the persistence model to a domain Message entity
func (m *MessageModel) ToDomain() *messaging.Message {
	return &messaging.Message{
		BaseEntity: m.BaseModel.ToDomain(),
		Sender:     m.Sender,
		Recipient:  m.Recipient,
		Body:       m.Body,
	}
}

// MessageModelFromDomain creates a persistence model from a domain Message
func MessageModelFromDomain(msg *messaging.Message) *MessageModel {
	m := &MessageModel{}
	m.FromDomainBaseEntity(msg.BaseEntity)
	m.Sender = msg.Sender
	m.Recipient = msg.Recipient
	m.Body = msg.Body
	return m
}
