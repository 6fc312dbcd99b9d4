package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/innolink/backend/internal/application/identity"
	"github.com/innolink/backend/internal/domain/identity"
	"github.com/innolink/backend/internal/infrastructure/auth"
	"github.com/innolink/backend/internal/infrastructure/config"
	"github.com/innolink/backend/internal/interfaces/http/middleware"
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

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-32-characters-long",
		Expiration: time.Hour,
		Issuer:     "innolink-test",
	})
}

func setupAuthRouter(handler *AuthHandler, jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/signup", handler.Signup)
		authGroup.POST("/login", handler.Login)
	}

	protectedGroup := r.Group("/api/v1/auth")
	protectedGroup.Use(middleware.JWTAuthMiddleware(jwtService))
	{
		protectedGroup.GET("/me", handler.Me)
	}

	return r
}

func newAuthTestStack(userRepo *MockUserRepository) (*gin.Engine, *auth.JWTService) {
	jwtService := newTestJWTService()
	authService := appidentity.NewAuthService(userRepo, jwtService, zap.NewNop())
	handler := NewAuthHandler(authService)
	return setupAuthRouter(handler, jwtService), jwtService
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("registers account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router, _ := newAuthTestStack(userRepo)

		userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(false, nil)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		w := postJSON(t, router, "/api/v1/auth/signup", SignupRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool         `json:"success"`
			Data    AuthResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "alice", resp.Data.User.Username)
		assert.NotEmpty(t, resp.Data.Token.AccessToken)
		assert.Equal(t, "Bearer", resp.Data.Token.TokenType)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router, _ := newAuthTestStack(userRepo)

		w := postJSON(t, router, "/api/v1/auth/signup", map[string]string{"username": "alice"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps duplicate account to conflict code", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router, _ := newAuthTestStack(userRepo)

		userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(true, nil)

		w := postJSON(t, router, "/api/v1/auth/signup", SignupRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "ERR_ALREADY_EXISTS", resp.Error.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("issues token for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router, _ := newAuthTestStack(userRepo)

		user, err := identity.NewUser("alice", "alice@example.com", "secret123")
		require.NoError(t, err)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		w := postJSON(t, router, "/api/v1/auth/login", LoginRequest{
			Username: "alice",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data AuthResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Data.Token.AccessToken)
	})

	t.Run("rejects wrong password with 401", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router, _ := newAuthTestStack(userRepo)

		user, err := identity.NewUser("alice", "alice@example.com", "secret123")
		require.NoError(t, err)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		w := postJSON(t, router, "/api/v1/auth/login", LoginRequest{
			Username: "alice",
			Password: "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns profile for valid token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router, jwtService := newAuthTestStack(userRepo)

		user, err := identity.NewUser("alice", "alice@example.com", "secret123")
		require.NoError(t, err)
		userRepo.On("FindByID", mock.Anything, user.GetID()).Return(user, nil)

		token, err := jwtService.GenerateToken(auth.GenerateTokenInput{
			UserID:   user.GetID(),
			Username: user.Username,
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data AuthUserResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.Data.Username)
		assert.Equal(t, "alice@example.com", resp.Data.Email)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router, _ := newAuthTestStack(userRepo)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
