package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/innolink/backend/internal/application/identity"
)

// SignupRequest is the request body for account registration
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
}

// AuthUserResponse is the user profile returned by auth endpoints
type AuthUserResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsPro      bool      `json:"is_pro"`
	IsVerified bool      `json:"is_verified"`
	IsBot      bool      `json:"is_bot"`
	ActivePlan string    `json:"active_plan,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuthResponse is the combined token and user payload
type AuthResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

func toAuthResponse(result *identity.AuthResult) AuthResponse {
	return AuthResponse{
		Token: TokenResponse{
			AccessToken: result.AccessToken,
			ExpiresAt:   result.ExpiresAt,
			TokenType:   result.TokenType,
		},
		User: toAuthUserResponse(result.User),
	}
}

func toAuthUserResponse(user identity.UserInfo) AuthUserResponse {
	return AuthUserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		IsPro:      user.IsPro,
		IsVerified: user.IsVerified,
		IsBot:      user.IsBot,
		ActivePlan: user.ActivePlan,
		CreatedAt:  user.CreatedAt,
	}
}
