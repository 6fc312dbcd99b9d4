package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCheckoutInput contains the input for opening a checkout session
type CreateCheckoutInput struct {
	UserID   uuid.UUID
	Username string
	// Price is the amount in major currency units.
	Price decimal.Decimal
	// Plan is the subscription plan being purchased.
	Plan string
}

// CheckoutResult is the redirect target for a created checkout session
type CheckoutResult struct {
	SessionID string
	URL       string
}

// ConfirmUpgradeInput contains the input for completing an upgrade
type ConfirmUpgradeInput struct {
	UserID uuid.UUID
	Plan   string
}

// UpgradeResult carries the refreshed token after a successful upgrade
type UpgradeResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	IsPro       bool
	ActivePlan  string
}
