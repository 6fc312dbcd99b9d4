package feed

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainfeed "github.com/innolink/backend/internal/domain/feed"
	"github.com/innolink/backend/internal/domain/shared"
)

// MockIdeaRepository is a mock implementation of feed.IdeaRepository
type MockIdeaRepository struct {
	mock.Mock
}

func (m *MockIdeaRepository) Create(ctx context.Context, idea *domainfeed.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *MockIdeaRepository) Update(ctx context.Context, idea *domainfeed.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *MockIdeaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIdeaRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainfeed.Idea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainfeed.Idea), args.Error(1)
}

func (m *MockIdeaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*domainfeed.Idea, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domainfeed.Idea), args.Get(1).(int64), args.Error(2)
}

func (m *MockIdeaRepository) SaveComment(ctx context.Context, comment *domainfeed.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockIdeaRepository) ReplaceLikes(ctx context.Context, ideaID uuid.UUID, usernames []string) error {
	args := m.Called(ctx, ideaID, usernames)
	return args.Error(0)
}

func publishedIdea(username string) *domainfeed.Idea {
	idea := domainfeed.NewIdea(username, username+"@example.com")
	idea.Topic = "AI crop monitoring"
	idea.Description = "Sensors for small farms"
	idea.Stage = "prototype"
	idea.Industry = "tech"
	return idea
}

func TestIdeaService_Create(t *testing.T) {
	t.Run("publishes idea with all fields", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		svc := NewIdeaService(repo, zap.NewNop())

		repo.On("Create", mock.Anything, mock.AnythingOfType("*feed.Idea")).Return(nil)

		info, err := svc.Create(context.Background(), CreateIdeaInput{
			Username:    "alice",
			Email:       "alice@example.com",
			Topic:       "AI crop monitoring",
			Description: "Sensors for small farms",
			Stage:       "prototype",
			Market:      "Smallholder farmers",
			Goals:       "long",
			FullName:    "Alice Stone",
			Role:        "founder",
			StartupName: "CropSense",
			Industry:    "tech",
			Website:     "https://cropsense.example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", info.Username)
		assert.Equal(t, "AI crop monitoring", info.Topic)
		assert.Equal(t, "long", info.Goals)
		assert.Equal(t, 0, info.LikeCount)

		saved := repo.Calls[0].Arguments.Get(1).(*domainfeed.Idea)
		assert.Equal(t, "CropSense", saved.StartupName)
		assert.Equal(t, "https://cropsense.example.com", saved.Website)
	})

	t.Run("requires topic and description", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		svc := NewIdeaService(repo, zap.NewNop())

		_, err := svc.Create(context.Background(), CreateIdeaInput{
			Username: "alice", Email: "alice@example.com", Description: "x",
		})
		assert.Error(t, err)

		_, err = svc.Create(context.Background(), CreateIdeaInput{
			Username: "alice", Email: "alice@example.com", Topic: "x",
		})
		assert.Error(t, err)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestIdeaService_List(t *testing.T) {
	repo := new(MockIdeaRepository)
	svc := NewIdeaService(repo, zap.NewNop())

	ideas := []*domainfeed.Idea{publishedIdea("alice"), publishedIdea("bob")}
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(ideas, int64(42), nil)

	result, err := svc.List(context.Background(), ListIdeasInput{Filter: shared.Filter{Page: 1, PageSize: 2}})

	require.NoError(t, err)
	assert.Equal(t, int64(42), result.Total)
	require.Len(t, result.Ideas, 2)
	assert.Equal(t, "alice", result.Ideas[0].Username)
}

func TestIdeaService_Get(t *testing.T) {
	t.Run("returns idea", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		svc := NewIdeaService(repo, zap.NewNop())

		idea := publishedIdea("alice")
		repo.On("FindByID", mock.Anything, idea.GetID()).Return(idea, nil)

		info, err := svc.Get(context.Background(), idea.GetID())

		require.NoError(t, err)
		assert.Equal(t, idea.GetID(), info.ID)
	})

	t.Run("maps missing idea to not found", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		svc := NewIdeaService(repo, zap.NewNop())

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Get(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestIdeaService_UpdateDescription(t *testing.T) {
	t.Run("owner edits description", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		svc := NewIdeaService(repo, zap.NewNop())

		idea := publishedIdea("alice")
		repo.On("FindByID", mock.Anything, idea.GetID()).Return(idea, nil)
		repo.On("Update", mock.Anything, idea).Return(nil)

		info, err := svc.UpdateDescription(context.Background(), UpdateDescriptionInput{
			IdeaID:      idea.GetID(),
			Username:    "alice",
			Description: "a sharper pitch",
		})

		require.NoError(t, err)
		assert.Equal(t, "a sharper pitch", info.Description)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		svc := NewIdeaService(repo, zap.NewNop())

		idea := publishedIdea("alice")
		repo.On("FindByID", mock.Anything, idea.GetID()).Return(idea, nil)

		_, err := svc.UpdateDescription(context.Background(), UpdateDescriptionInput{
			IdeaID:      idea.GetID(),
			Username:    "mallory",
			Description: "hijacked",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestIdeaService_Delete(t *testing.T) {
	t.Run("owner deletes idea", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		svc := NewIdeaService(repo, zap.NewNop())

		idea := publishedIdea("alice")
		repo.On("FindByID", mock.Anything, idea.GetID()).Return(idea, nil)
		repo.On("Delete", mock.Anything, idea.GetID()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), idea.GetID(), "alice"))
		repo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		svc := NewIdeaService(repo, zap.NewNop())

		idea := publishedIdea("alice")
		repo.On("FindByID", mock.Anything, idea.GetID()).Return(idea, nil)

		err := svc.Delete(context.Background(), idea.GetID(), "mallory")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestIdeaService_AddComment(t *testing.T) {
	t.Run("any user may comment", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		svc := NewIdeaService(repo, zap.NewNop())

		idea := publishedIdea("alice")
		repo.On("FindByID", mock.Anything, idea.GetID()).Return(idea, nil)
		repo.On("SaveComment", mock.Anything, mock.AnythingOfType("*feed.Comment")).Return(nil)

		comment, err := svc.AddComment(context.Background(), AddCommentInput{
			IdeaID:   idea.GetID(),
			Username: "bob",
			Text:     "love it",
		})

		require.NoError(t, err)
		assert.Equal(t, "bob", comment.Username)
		assert.Equal(t, "love it", comment.Text)
	})

	t.Run("blank comment is rejected", func(t *testing.T) {
		repo := new(MockIdeaRepository)
		svc := NewIdeaService(repo, zap.NewNop())

		idea := publishedIdea("alice")
		repo.On("FindByID", mock.Anything, idea.GetID()).Return(idea, nil)

		_, err := svc.AddComment(context.Background(), AddCommentInput{
			IdeaID:   idea.GetID(),
			Username: "bob",
			Text:     "   ",
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "SaveComment", mock.Anything, mock.Anything)
	})
}

func TestIdeaService_ToggleLike(t *testing.T) {
	repo := new(MockIdeaRepository)
	svc := NewIdeaService(repo, zap.NewNop())

	idea := publishedIdea("alice")
	repo.On("FindByID", mock.Anything, idea.GetID()).Return(idea, nil)
	repo.On("ReplaceLikes", mock.Anything, idea.GetID(), []string{"bob"}).Return(nil).Once()
	repo.On("ReplaceLikes", mock.Anything, idea.GetID(), []string{}).Return(nil).Once()

	count, err := svc.ToggleLike(context.Background(), ToggleLikeInput{IdeaID: idea.GetID(), Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.ToggleLike(context.Background(), ToggleLikeInput{IdeaID: idea.GetID(), Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	repo.AssertExpectations(t)
}
