package billing

import (
	"context"

	"github.com/innolink/backend/internal/domain/identity"
	"github.com/innolink/backend/internal/domain/shared"
	"github.com/innolink/backend/internal/infrastructure/auth"
	"github.com/innolink/backend/internal/infrastructure/payment"
	"go.uber.org/zap"
)

// PaymentGateway abstracts the checkout provider
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input payment.CreateSessionInput) (*payment.CheckoutSession, error)
}

// PaymentService handles pro upgrades: opening checkout sessions and
// applying the upgrade once payment completes.
type PaymentService struct {
	userRepo   identity.UserRepository
	gateway    PaymentGateway
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	userRepo identity.UserRepository,
	gateway PaymentGateway,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		userRepo:   userRepo,
		gateway:    gateway,
		jwtService: jwtService,
		logger:     logger,
	}
}

// CreateCheckoutSession opens a payment session for the requested amount
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, input CreateCheckoutInput) (*CheckoutResult, error) {
	if s.gateway == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Payment gateway is not configured")
	}
	if !input.Price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if user.IsPro {
		return nil, shared.NewDomainError("ALREADY_PRO", "User is already a Pro member")
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, payment.CreateSessionInput{
		Username: user.Username,
		Price:    input.Price,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Checkout session created",
		zap.String("username", user.Username),
		zap.String("plan", input.Plan),
		zap.String("session_id", sess.SessionID))

	return &CheckoutResult{
		SessionID: sess.SessionID,
		URL:       sess.URL,
	}, nil
}

// ConfirmUpgrade marks the user as pro after a completed payment and
// re-issues the access token so the new status is reflected immediately.
func (s *PaymentService) ConfirmUpgrade(ctx context.Context, input ConfirmUpgradeInput) (*UpgradeResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := user.UpgradeToPro(input.Plan); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to persist upgrade", zap.Error(err))
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:     user.GetID(),
		Username:   user.Username,
		IsPro:      user.IsPro,
		ActivePlan: user.ActivePlan,
	})
	if err != nil {
		s.logger.Error("Failed to re-issue token after upgrade", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User upgraded to pro",
		zap.String("username", user.Username),
		zap.String("plan", user.ActivePlan))

	return &UpgradeResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		IsPro:       user.IsPro,
		ActivePlan:  user.ActivePlan,
	}, nil
}
