package models

import (
	"time"

	"github.com/innolink/backend/internal/domain/feed"
	"github.com/google/uuid"
)

// IdeaModel is the persistence model for the Idea aggregate.
// Comments and likes live in their own tables.
type IdeaModel struct {
	BaseModel
	Username    string `gorm:"type:varchar(100);not null;index"`
	Email       string `gorm:"type:varchar(200)"`
	FullName    string `gorm:"type:varchar(200)"`
	Topic       string `gorm:"type:varchar(300);not null"`
	Description string `gorm:"type:text;not null"`
	Stage       string `gorm:"type:varchar(50)"`
	Market      string `gorm:"type:varchar(100)"`
	Goals       string `gorm:"type:varchar(50)"`
	Role        string `gorm:"type:varchar(100)"`
	StartupName string `gorm:"type:varchar(200)"`
	Industry    string `gorm:"type:varchar(50)"`
	Website     string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (IdeaModel) TableName() string {
	return "ideas"
}

// IdeaCommentModel is the persistence model for idea comments.
type IdeaCommentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	IdeaID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Username  string    `gorm:"type:varchar(100);not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (IdeaCommentModel) TableName() string {
	return "idea_comments"
}

// IdeaLikeModel records one user's like of one idea.
type IdeaLikeModel struct {
	IdeaID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(100);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (IdeaLikeModel) TableName() string {
	return "idea_likes"
}

// ToDomain converts the persistence model to a domain Idea entity.
// Comments and likes must be loaded separately by the repository.
func (m *IdeaModel) ToDomain() *feed.Idea {
	return &feed.Idea{
		BaseEntity:  m.BaseModel.ToDomain(),
		Username:    m.Username,
		Email:       m.Email,
		FullName:    m.FullName,
		Topic:       m.Topic,
		Description: m.Description,
		Stage:       m.Stage,
		Market:      m.Market,
		Goals:       m.Goals,
		Role:        m.Role,
		StartupName: m.StartupName,
		Industry:    m.Industry,
		Website:     m.Website,
		Comments:    make([]feed.Comment, 0),
		Likes:       make([]string, 0),
	}
}

// FromDomain populates the persistence model from a domain Idea entity
func (m *IdeaModel) FromDomain(i *feed.Idea) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.Username = i.Username
	m.Email = i.Email
	m.FullName = i.FullName
	m.Topic = i.Topic
	m.Description = i.Description
	m.Stage = i.Stage
	m.Market = i.Market
	m.Goals = i.Goals
	m.Role = i.Role
	m.StartupName = i.StartupName
	m.Industry = i.Industry
	m.Website = i.Website
}

// IdeaModelFromDomain creates a persistence model from a domain Idea entity
func IdeaModelFromDomain(i *feed.Idea) *IdeaModel {
	m := &IdeaModel{}
	m.FromDomain(i)
	return m
}

// ToDomain converts a comment row to a domain Comment
func (m *IdeaCommentModel) ToDomain() feed.Comment {
	return feed.Comment{
		ID:        m.ID,
		IdeaID:    m.IdeaID,
		Username:  m.Username,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}
