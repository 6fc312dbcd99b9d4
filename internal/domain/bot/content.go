package bot

import (
	"context"
	"fmt"
	"slices"
)

// IdeaContent is the structured payload produced by the content synthesizer.
// Field names mirror the idea submission form.
type IdeaContent struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Stage       string `json:"stage"`
	Market      string `json:"market"`
	Goals       string `json:"goals"`
	FullName    string `json:"fullName"`
	Role        string `json:"role"`
	StartupName string `json:"startupName"`
	Industry    string `json:"industry"`
}

// Allowed values for the constrained fields. These match the dropdown options
// of the idea submission form.
var (
	AllowedIndustries = []string{"ecommerce", "health", "education", "tech", "food", "finance", "manufacturing", "fashion"}
	AllowedStages     = []string{"idea", "prototype", "launched"}
	AllowedGoals      = []string{"short", "long", "social"}
)

// Validate checks the constrained fields against the allowed value sets.
// It is only invoked when strict content validation is enabled; by default
// model output is persisted as returned.
func (c *IdeaContent) Validate() error {
	if c.Topic == "" || c.Description == "" {
		return fmt.Errorf("topic and description are required")
	}
	if !slices.Contains(AllowedStages, c.Stage) {
		return fmt.Errorf("stage %q not in allowed set %v", c.Stage, AllowedStages)
	}
	if !slices.Contains(AllowedGoals, c.Goals) {
		return fmt.Errorf("goals %q not in allowed set %v", c.Goals, AllowedGoals)
	}
	if !slices.Contains(AllowedIndustries, c.Industry) {
		return fmt.Errorf("industry %q not in allowed set %v", c.Industry, AllowedIndustries)
	}
	return nil
}

// ContentSynthesizer obtains a structured idea payload from a generative
// text model. A failed call or unparseable completion yields
// ErrSynthesisFailed; the caller aborts the run without persisting anything.
type ContentSynthesizer interface {
	SynthesizeIdea(ctx context.Context) (*IdeaContent, error)
}
