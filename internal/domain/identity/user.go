package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/innolink/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 10

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.\-]{3,100}$`)
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a platform account.
// It is the aggregate root for account-related operations.
type User struct {
	shared.BaseEntity
	Username     string
	Email        string
	PasswordHash string
	IsPro        bool
	IsVerified   bool
	IsBot        bool
	ActivePlan   string
}

// NewUser creates a new user with required fields
func NewUser(username, email, password string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
	}, nil
}

// NewBotUser creates a new account flagged as bot and pre-verified.
// Bot accounts share a fixed credential, hashed before storage.
func NewBotUser(username, email, password string) (*User, error) {
	user, err := NewUser(username, email, password)
	if err != nil {
		return nil, err
	}
	user.IsBot = true
	user.IsVerified = true
	return user, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpgradeToPro marks the account as a paying member
func (u *User) UpgradeToPro(plan string) error {
	if u.IsPro {
		return shared.NewDomainError("ALREADY_PRO", "User is already a Pro member")
	}
	u.IsPro = true
	u.ActivePlan = plan
	u.UpdatedAt = time.Now()
	return nil
}

// MarkVerified flags the account as verified
func (u *User) MarkVerified() {
	u.IsVerified = true
	u.UpdatedAt = time.Now()
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username is required")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be 3-100 lowercase letters, digits, '_', '.' or '-'")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if len(email) > 200 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email is not valid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
