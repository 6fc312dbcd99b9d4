package identity

import (
	"time"

	"github.com/google/uuid"
)

// SignupInput contains the input for account registration
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// AuthResult contains the result of a successful signup or login
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	User        UserInfo
}

// UserInfo contains basic user information returned to clients
type UserInfo struct {
	ID         uuid.UUID
	Username   string
	Email      string
	IsPro      bool
	IsVerified bool
	IsBot      bool
	ActivePlan string
	CreatedAt  time.Time
}
