package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	// ExistsByUsernameOrEmail reports whether any account already uses the
	// given username or email.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// FindBots returns all accounts flagged as bots.
	FindBots(ctx context.Context) ([]*User, error)
	// ListUsernames returns every username, ordered alphabetically.
	ListUsernames(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
