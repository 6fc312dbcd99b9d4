package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainmessaging "github.com/innolink/backend/internal/domain/messaging"
	"github.com/innolink/backend/internal/domain/shared"
	"github.com/innolink/backend/internal/infrastructure/realtime"
)

// MockMessageRepository is a mock implementation of messaging.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domainmessaging.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) FindConversation(ctx context.Context, a, b string) ([]*domainmessaging.Message, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainmessaging.Message), args.Error(1)
}

// MockUsernameLister is a mock implementation of UsernameLister
type MockUsernameLister struct {
	mock.Mock
}

func (m *MockUsernameLister) ListUsernames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newTestMessageService(repo *MockMessageRepository, users *MockUsernameLister, bus realtime.MessageBus) *MessageService {
	return NewMessageService(repo, users, bus, zap.NewNop())
}

func TestMessageService_Send(t *testing.T) {
	t.Run("persists and publishes to recipient inbox", func(t *testing.T) {
		repo := new(MockMessageRepository)
		bus := realtime.NewInMemoryBus()
		defer bus.Close()
		svc := newTestMessageService(repo, new(MockUsernameLister), bus)

		inbox, cancel, err := bus.Subscribe(context.Background(), InboxChannel("bob"))
		require.NoError(t, err)
		defer cancel()

		repo.On("Create", mock.Anything, mock.AnythingOfType("*messaging.Message")).Return(nil)

		info, err := svc.Send(context.Background(), SendMessageInput{
			Sender:    "alice",
			Recipient: "bob",
			Body:      "hey bob",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", info.Sender)
		assert.Equal(t, "hey bob", info.Body)

		payload := <-inbox
		var delivered MessageInfo
		require.NoError(t, json.Unmarshal(payload, &delivered))
		assert.Equal(t, info.ID, delivered.ID)
		assert.Equal(t, "hey bob", delivered.Body)
	})

	t.Run("rejects invalid message without persisting", func(t *testing.T) {
		repo := new(MockMessageRepository)
		bus := realtime.NewInMemoryBus()
		defer bus.Close()
		svc := newTestMessageService(repo, new(MockUsernameLister), bus)

		info, err := svc.Send(context.Background(), SendMessageInput{
			Sender:    "alice",
			Recipient: "alice",
			Body:      "hi me",
		})

		assert.Nil(t, info)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure fails the send", func(t *testing.T) {
		repo := new(MockMessageRepository)
		bus := realtime.NewInMemoryBus()
		defer bus.Close()
		svc := newTestMessageService(repo, new(MockUsernameLister), bus)

		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		info, err := svc.Send(context.Background(), SendMessageInput{
			Sender:    "alice",
			Recipient: "bob",
			Body:      "hey",
		})

		assert.Nil(t, info)
		assert.Error(t, err)
	})
}

func TestMessageService_Conversation(t *testing.T) {
	t.Run("participant reads conversation", func(t *testing.T) {
		repo := new(MockMessageRepository)
		svc := newTestMessageService(repo, new(MockUsernameLister), realtime.NewInMemoryBus())

		m1, err := domainmessaging.NewMessage("alice", "bob", "hi")
		require.NoError(t, err)
		m2, err := domainmessaging.NewMessage("bob", "alice", "hello")
		require.NoError(t, err)
		repo.On("FindConversation", mock.Anything, "alice", "bob").Return([]*domainmessaging.Message{m1, m2}, nil)

		messages, err := svc.Conversation(context.Background(), ConversationInput{
			Requester: "alice",
			PeerA:     "alice",
			PeerB:     "bob",
		})

		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "hi", messages[0].Body)
		assert.Equal(t, "bob", messages[1].Sender)
	})

	t.Run("outsider is rejected", func(t *testing.T) {
		repo := new(MockMessageRepository)
		svc := newTestMessageService(repo, new(MockUsernameLister), realtime.NewInMemoryBus())

		messages, err := svc.Conversation(context.Background(), ConversationInput{
			Requester: "mallory",
			PeerA:     "alice",
			PeerB:     "bob",
		})

		assert.Nil(t, messages)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		repo.AssertNotCalled(t, "FindConversation", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMessageService_ListUsernames(t *testing.T) {
	users := new(MockUsernameLister)
	svc := newTestMessageService(new(MockMessageRepository), users, realtime.NewInMemoryBus())

	users.On("ListUsernames", mock.Anything).Return([]string{"alice", "bob"}, nil)

	usernames, err := svc.ListUsernames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, usernames)
}

func TestInboxChannel(t *testing.T) {
	assert.Equal(t, "dm:alice", InboxChannel("alice"))
}
