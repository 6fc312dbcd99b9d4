package feed

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innolink/backend/internal/domain/shared"
)

func TestNewIdea(t *testing.T) {
	idea := NewIdea("alice", "alice@example.com")

	assert.NotEqual(t, uuid.Nil, idea.ID)
	assert.Equal(t, "alice", idea.Username)
	assert.Equal(t, "alice@example.com", idea.Email)
	assert.Empty(t, idea.Comments)
	assert.Empty(t, idea.Likes)
}

func TestIdeaIsOwnedBy(t *testing.T) {
	idea := NewIdea("alice", "alice@example.com")

	assert.True(t, idea.IsOwnedBy("alice"))
	assert.False(t, idea.IsOwnedBy("bob"))
}

func TestIdeaUpdateDescription(t *testing.T) {
	t.Run("replaces description", func(t *testing.T) {
		idea := NewIdea("alice", "alice@example.com")
		idea.Description = "old"

		require.NoError(t, idea.UpdateDescription("  a better pitch  "))
		assert.Equal(t, "a better pitch", idea.Description)
	})

	t.Run("rejects blank description", func(t *testing.T) {
		idea := NewIdea("alice", "alice@example.com")
		idea.Description = "old"

		err := idea.UpdateDescription("   ")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DESCRIPTION", domainErr.Code)
		assert.Equal(t, "old", idea.Description)
	})
}

func TestIdeaAddComment(t *testing.T) {
	t.Run("appends comment", func(t *testing.T) {
		idea := NewIdea("alice", "alice@example.com")

		comment, err := idea.AddComment("bob", "great idea")

		require.NoError(t, err)
		assert.Equal(t, idea.ID, comment.IdeaID)
		assert.Equal(t, "bob", comment.Username)
		assert.Equal(t, "great idea", comment.Text)
		require.Len(t, idea.Comments, 1)
		assert.Equal(t, comment.ID, idea.Comments[0].ID)
	})

	t.Run("rejects blank comment", func(t *testing.T) {
		idea := NewIdea("alice", "alice@example.com")

		comment, err := idea.AddComment("bob", "  ")

		assert.Nil(t, comment)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_COMMENT", domainErr.Code)
		assert.Empty(t, idea.Comments)
	})
}

func TestIdeaToggleLike(t *testing.T) {
	idea := NewIdea("alice", "alice@example.com")

	assert.Equal(t, 1, idea.ToggleLike("bob"))
	assert.Equal(t, 2, idea.ToggleLike("carol"))
	assert.Equal(t, 2, idea.LikeCount())

	// same user toggling again removes the like
	assert.Equal(t, 1, idea.ToggleLike("bob"))
	assert.Equal(t, []string{"carol"}, idea.Likes)
}
