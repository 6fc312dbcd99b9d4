package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContent() IdeaContent {
	return IdeaContent{
		Topic:       "AI-powered crop monitoring",
		Description: "Satellite imagery and on-field sensors for small farms.",
		Stage:       "prototype",
		Market:      "Smallholder farmers in Southeast Asia",
		Goals:       "long",
		FullName:    "Ava Stone",
		Role:        "founder",
		StartupName: "CropSense",
		Industry:    "tech",
	}
}

func TestIdeaContentValidate(t *testing.T) {
	t.Run("accepts content within allowed sets", func(t *testing.T) {
		c := validContent()
		require.NoError(t, c.Validate())
	})

	t.Run("requires topic and description", func(t *testing.T) {
		c := validContent()
		c.Topic = ""
		assert.Error(t, c.Validate())

		c = validContent()
		c.Description = ""
		assert.Error(t, c.Validate())
	})

	t.Run("rejects stage outside allowed set", func(t *testing.T) {
		c := validContent()
		c.Stage = "scaling"

		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stage")
	})

	t.Run("rejects goals outside allowed set", func(t *testing.T) {
		c := validContent()
		c.Goals = "world domination"

		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "goals")
	})

	t.Run("rejects industry outside allowed set", func(t *testing.T) {
		c := validContent()
		c.Industry = "aerospace"

		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "industry")
	})

	t.Run("accepts every allowed enum value", func(t *testing.T) {
		for _, stage := range AllowedStages {
			for _, goals := range AllowedGoals {
				c := validContent()
				c.Stage = stage
				c.Goals = goals
				assert.NoError(t, c.Validate())
			}
		}
		for _, industry := range AllowedIndustries {
			c := validContent()
			c.Industry = industry
			assert.NoError(t, c.Validate())
		}
	})
}
