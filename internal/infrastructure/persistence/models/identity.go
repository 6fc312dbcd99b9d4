package models

import (
	"github.com/innolink/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string `gorm:"type:varchar(200);uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsPro        bool   `gorm:"not null;default:false"`
	IsVerified   bool   `gorm:"not null;default:false"`
	IsBot        bool   `gorm:"not null;default:false;index"`
	ActivePlan   string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsPro:        m.IsPro,
		IsVerified:   m.IsVerified,
		IsBot:        m.IsBot,
		ActivePlan:   m.ActivePlan,
	}
}

// FromDomain populates the persistence model from a domain User entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.IsPro = u.IsPro
	m.IsVerified = u.IsVerified
	m.IsBot = u.IsBot
	m.ActivePlan = u.ActivePlan
}

// UserModelFromDomain creates a persistence model from a domain User entity
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
