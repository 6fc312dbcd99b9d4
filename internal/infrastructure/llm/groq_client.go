package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/innolink/backend/internal/domain/bot"
	"github.com/innolink/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const chatCompletionsPath = "/chat/completions"

const systemPrompt = "You are a creative assistant that generates startup ideas " +
	"in structured JSON format for a platform. Each idea must match the allowed " +
	"dropdown options used in a web form."

const userPromptTemplate = `Generate a startup idea in JSON format with the following structure. Fields like "industry", "stage", and "goals" must randomly choose from these allowed options only:

industry: [%s]
stage: [%s]
goals: [%s]

Format:
{
  "topic": "string",
  "description": "string (short idea summary)",
  "stage": "one of allowed values",
  "market": "e.g., Global, India, B2B, etc.",
  "goals": "one of allowed values",
  "fullName": "realistic name",
  "role": "Founder or Innovator",
  "startupName": "realistic name",
  "industry": "one of allowed values"
}

Only return the pure JSON. No explanation, no markdown.`

// GroqClient synthesizes idea content via an OpenAI-compatible
// chat-completions endpoint. It implements bot.ContentSynthesizer.
type GroqClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	strict      bool
	client      *http.Client
	logger      *zap.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewGroqClient creates a new completion client
func NewGroqClient(cfg config.LLMConfig, strict bool, logger *zap.Logger) *GroqClient {
	return &GroqClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		strict:      strict,
		client:      &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
}

// SynthesizeIdea requests a single structured idea from the model. Any call
// or parse failure is reported as bot.ErrSynthesisFailed; the caller aborts
// the run without persisting a partial idea.
func (c *GroqClient) SynthesizeIdea(ctx context.Context) (*bot.IdeaContent, error) {
	raw, err := c.complete(ctx)
	if err != nil {
		c.logger.Warn("Idea synthesis call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", bot.ErrSynthesisFailed, err)
	}

	cleaned := stripFences(raw)

	var content bot.IdeaContent
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		c.logger.Warn("Completion was not valid JSON", zap.Error(err))
		return nil, fmt.Errorf("%w: completion is not valid JSON: %v", bot.ErrSynthesisFailed, err)
	}

	if c.strict {
		if err := content.Validate(); err != nil {
			c.logger.Warn("Synthesized idea violated the allowed value sets", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", bot.ErrSynthesisFailed, err)
		}
	}

	return &content, nil
}

func (c *GroqClient) complete(ctx context.Context) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("llm api key not configured")
	}

	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt()},
		},
		Temperature: c.temperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var parsed apiError
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("completion endpoint error (%d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("completion endpoint error (%d)", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func userPrompt() string {
	return fmt.Sprintf(userPromptTemplate,
		quoteJoin(bot.AllowedIndustries),
		quoteJoin(bot.AllowedStages),
		quoteJoin(bot.AllowedGoals),
	)
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + v + `"`
	}
	return strings.Join(quoted, ", ")
}

// stripFences removes any residual markdown code-fence markers the model may
// emit despite the prompt asking for pure JSON.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Ensure GroqClient implements ContentSynthesizer
var _ bot.ContentSynthesizer = (*GroqClient)(nil)
