package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/innolink/backend/internal/domain/identity"
	"github.com/innolink/backend/internal/domain/shared"
	"github.com/innolink/backend/internal/infrastructure/auth"
	"github.com/innolink/backend/internal/infrastructure/config"
	"github.com/innolink/backend/internal/infrastructure/payment"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindBots(ctx context.Context) ([]*identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) ListUsernames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentGateway is a mock implementation of PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, input payment.CreateSessionInput) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func newTestPaymentService(repo *MockUserRepository, gateway PaymentGateway) *PaymentService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "innolink-test",
	})
	return NewPaymentService(repo, gateway, jwtService, zap.NewNop())
}

func freeUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	return user
}

func TestPaymentService_CreateCheckoutSession(t *testing.T) {
	t.Run("opens session for free user", func(t *testing.T) {
		repo := new(MockUserRepository)
		gateway := new(MockPaymentGateway)
		svc := newTestPaymentService(repo, gateway)

		user := freeUser(t)
		repo.On("FindByID", mock.Anything, user.GetID()).Return(user, nil)
		gateway.On("CreateCheckoutSession", mock.Anything, payment.CreateSessionInput{
			Username: "alice",
			Price:    decimal.NewFromInt(499),
		}).Return(&payment.CheckoutSession{SessionID: "cs_test_123", URL: "https://checkout.example.com/cs_test_123"}, nil)

		result, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutInput{
			UserID: user.GetID(),
			Price:  decimal.NewFromInt(499),
			Plan:   "pro-monthly",
		})

		require.NoError(t, err)
		assert.Equal(t, "cs_test_123", result.SessionID)
		assert.Equal(t, "https://checkout.example.com/cs_test_123", result.URL)
		gateway.AssertExpectations(t)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		repo := new(MockUserRepository)
		gateway := new(MockPaymentGateway)
		svc := newTestPaymentService(repo, gateway)

		for _, price := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			result, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutInput{
				UserID: uuid.New(),
				Price:  price,
			})

			assert.Nil(t, result)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_PRICE", domainErr.Code)
		}
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects pro member", func(t *testing.T) {
		repo := new(MockUserRepository)
		gateway := new(MockPaymentGateway)
		svc := newTestPaymentService(repo, gateway)

		user := freeUser(t)
		require.NoError(t, user.UpgradeToPro("pro-monthly"))
		repo.On("FindByID", mock.Anything, user.GetID()).Return(user, nil)

		result, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutInput{
			UserID: user.GetID(),
			Price:  decimal.NewFromInt(499),
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_PRO", domainErr.Code)
		gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	})

	t.Run("errors when gateway is not configured", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestPaymentService(repo, nil)

		result, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutInput{
			UserID: uuid.New(),
			Price:  decimal.NewFromInt(499),
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("propagates gateway failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		gateway := new(MockPaymentGateway)
		svc := newTestPaymentService(repo, gateway)

		user := freeUser(t)
		repo.On("FindByID", mock.Anything, user.GetID()).Return(user, nil)
		gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return(nil, errors.New("stripe unavailable"))

		_, err := svc.CreateCheckoutSession(context.Background(), CreateCheckoutInput{
			UserID: user.GetID(),
			Price:  decimal.NewFromInt(499),
		})

		assert.Error(t, err)
	})
}

func TestPaymentService_ConfirmUpgrade(t *testing.T) {
	t.Run("upgrades user and re-issues token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestPaymentService(repo, new(MockPaymentGateway))

		user := freeUser(t)
		repo.On("FindByID", mock.Anything, user.GetID()).Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		result, err := svc.ConfirmUpgrade(context.Background(), ConfirmUpgradeInput{
			UserID: user.GetID(),
			Plan:   "pro-monthly",
		})

		require.NoError(t, err)
		assert.True(t, result.IsPro)
		assert.Equal(t, "pro-monthly", result.ActivePlan)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
		repo.AssertExpectations(t)
	})

	t.Run("rejects already pro user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestPaymentService(repo, new(MockPaymentGateway))

		user := freeUser(t)
		require.NoError(t, user.UpgradeToPro("pro-monthly"))
		repo.On("FindByID", mock.Anything, user.GetID()).Return(user, nil)

		result, err := svc.ConfirmUpgrade(context.Background(), ConfirmUpgradeInput{
			UserID: user.GetID(),
			Plan:   "pro-monthly",
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_PRO", domainErr.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("maps missing user to not found", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestPaymentService(repo, new(MockPaymentGateway))

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.ConfirmUpgrade(context.Background(), ConfirmUpgradeInput{UserID: id, Plan: "pro-monthly"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
