package identitysource

import (
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

const personsPath = "/api/v1/persons?_quantity=1"

// Suffix ranges for generated usernames. Feed-derived identities get a
// four-digit suffix, fallback identities a five-digit one.
const (
	feedSuffixRange     = 10000
	fallbackSuffixRange = 100000
)

// FakerClient fetches candidate bot identities from a random-person feed.
// It implements bot.IdentitySource and never fails outward: any transport or
// parse failure yields a locally synthesized fallback identity.
type FakerClient struct {
	baseURL string
	client  *http.Client
	rand    bot.Rand
	logger  *zap.Logger
}

// personsResponse mirrors the feed's envelope. The upstream schema has varied
// across revisions, so only the fields we need are declared.
type personsResponse struct {
	Data []struct {
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
	} `json:"data"`
}

// NewFakerClient creates a new identity feed client
func NewFakerClient(cfg config.IdentityFeedConfig, rnd bot.Rand, logger *zap.Logger) *FakerClient {
	return &FakerClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		rand:    rnd,
		logger:  logger,
	}
}

// FetchIdentity returns a candidate identity. One outbound call per
// invocation, best effort, no retry at this layer.
func (c *FakerClient) FetchIdentity(ctx context.Context) bot.Identity {
	identity, err := c.fetchFromFeed(ctx)
	if err != nil {
		c.logger.Warn("Identity feed unavailable, using fallback identity", zap.Error(err))
		return c.fallbackIdentity()
	}
	c.logger.Debug("Fetched identity from feed",
		zap.String("full_name", identity.FullName),
		zap.String("username", identity.Username),
	)
	return identity
}

func (c *FakerClient) fetchFromFeed(ctx context.Context) (bot.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+personsPath, nil)
	if err != nil {
		return bot.Identity{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return bot.Identity{}, fmt.Errorf("identity feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return bot.Identity{}, fmt.Errorf("identity feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return bot.Identity{}, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed personsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return bot.Identity{}, fmt.Errorf("failed to decode persons response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return bot.Identity{}, fmt.Errorf("persons response contained no records")
	}

	first := strings.TrimSpace(parsed.Data[0].Firstname)
	last := strings.TrimSpace(parsed.Data[0].Lastname)
	if first == "" || last == "" {
		return bot.Identity{}, fmt.Errorf("person record missing name fields")
	}

	suffix := c.rand.IntN(feedSuffixRange)
	return bot.Identity{
		FullName: first + " " + last,
		Username: fmt.Sprintf("%s%s%d", slug(first), slug(last), suffix),
		Email:    fmt.Sprintf("%s.%s%d@example.com", slug(first), slug(last), suffix),
	}, nil
}

func (c *FakerClient) fallbackIdentity() bot.Identity {
	suffix := c.rand.IntN(fallbackSuffixRange)
	return bot.Identity{
		FullName: fmt.Sprintf("BotUser%d", suffix),
		Username: fmt.Sprintf("bot%d", suffix),
		Email:    fmt.Sprintf("bot%d@example.com", suffix),
	}
}

// slug lowercases a name part and keeps only ASCII letters and digits, so
// feed names with apostrophes or accents still yield valid usernames and
// email local parts.
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Ensure FakerClient implements IdentitySource
var _ bot.IdentitySource = (*FakerClient)(nil)
