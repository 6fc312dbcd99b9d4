package payment

import (
	"context"
	"fmt"

	"github.com/innolink/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"go.uber.org/zap"
)

// CreateSessionInput carries the data needed to open a checkout session
type CreateSessionInput struct {
	Username string
	// Price is the amount in major currency units.
	Price decimal.Decimal
}

// CheckoutSession is the result of creating a Stripe checkout session
type CheckoutSession struct {
	SessionID string
	URL       string
}

// StripeAdapter creates Stripe checkout sessions for subscription upgrades
type StripeAdapter struct {
	config config.StripeConfig
	logger *zap.Logger
}

// NewStripeAdapter creates a new Stripe adapter
func NewStripeAdapter(cfg config.StripeConfig, logger *zap.Logger) (*StripeAdapter, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}
	stripe.Key = cfg.SecretKey

	return &StripeAdapter{
		config: cfg,
		logger: logger,
	}, nil
}

// CreateCheckoutSession opens a one-off payment session for the given amount
func (a *StripeAdapter) CreateCheckoutSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error) {
	unitAmount := input.Price.Mul(decimal.NewFromInt(100)).IntPart()
	if unitAmount <= 0 {
		return nil, fmt.Errorf("stripe: price must be positive")
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(a.config.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(a.config.ProductName),
					},
					UnitAmount: stripe.Int64(unitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(a.config.SuccessURL),
		CancelURL:  stripe.String(a.config.CancelURL),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		a.logger.Error("Failed to create checkout session",
			zap.String("username", input.Username),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	a.logger.Info("Created checkout session",
		zap.String("username", input.Username),
		zap.String("session_id", sess.ID))

	return &CheckoutSession{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}
