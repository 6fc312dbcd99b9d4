package bot

import (
	"context"
	"fmt"

	botdomain "github.com/innolink/backend/internal/domain/bot"
	"github.com/innolink/backend/internal/domain/feed"
	"github.com/innolink/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// PosterConfig contains tunables for the posting pipeline
type PosterConfig struct {
	// MaxIdentityAttempts bounds the uniqueness negotiation loop.
	MaxIdentityAttempts int
	// ReuseExistingRate is the probability of reusing an existing bot
	// account instead of registering a new one.
	ReuseExistingRate float64
	// Password is the shared credential for new bot accounts.
	Password string
}

// DefaultPosterConfig returns default pipeline configuration
func DefaultPosterConfig() PosterConfig {
	return PosterConfig{
		MaxIdentityAttempts: 5,
		ReuseExistingRate:   0.5,
		Password:            "botsecure123",
	}
}

// PosterService runs the automated idea-posting pipeline: negotiate a unique
// identity, materialize a bot account, synthesize idea content, publish.
type PosterService struct {
	users       identity.UserRepository
	ideas       feed.IdeaRepository
	source      botdomain.IdentitySource
	synthesizer botdomain.ContentSynthesizer
	rand        botdomain.Rand
	config      PosterConfig
	logger      *zap.Logger
}

// NewPosterService creates a new poster service
func NewPosterService(
	users identity.UserRepository,
	ideas feed.IdeaRepository,
	source botdomain.IdentitySource,
	synthesizer botdomain.ContentSynthesizer,
	rnd botdomain.Rand,
	config PosterConfig,
	logger *zap.Logger,
) *PosterService {
	return &PosterService{
		users:       users,
		ideas:       ideas,
		source:      source,
		synthesizer: synthesizer,
		rand:        rnd,
		config:      config,
		logger:      logger,
	}
}

// PostIdea executes one full pipeline run. A failure at any step aborts the
// run; nothing written after the failing step is persisted. An account
// created before a later failure remains (no transaction spans the run).
func (s *PosterService) PostIdea(ctx context.Context) error {
	account, err := s.materializeAccount(ctx)
	if err != nil {
		return err
	}

	content, err := s.synthesizer.SynthesizeIdea(ctx)
	if err != nil {
		return err
	}

	idea, err := s.publishIdea(ctx, account, content)
	if err != nil {
		return err
	}

	s.logger.Info("Bot idea published",
		zap.String("username", account.Username),
		zap.String("idea_id", idea.ID.String()),
		zap.String("topic", content.Topic),
	)
	return nil
}

// materializeAccount either reuses a random existing bot account or
// registers a new one from a freshly negotiated identity.
func (s *PosterService) materializeAccount(ctx context.Context) (*identity.User, error) {
	existing, err := s.users.FindBots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bot accounts: %w", err)
	}

	if len(existing) > 0 && s.rand.Float64() < s.config.ReuseExistingRate {
		account := existing[s.rand.IntN(len(existing))]
		s.logger.Info("Reusing existing bot account", zap.String("username", account.Username))
		return account, nil
	}

	candidate, err := s.negotiateUniqueIdentity(ctx)
	if err != nil {
		return nil, err
	}

	account, err := identity.NewBotUser(candidate.Username, candidate.Email, s.config.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to build bot account: %w", err)
	}
	if err := s.users.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create bot account: %w", err)
	}

	s.logger.Info("New bot account registered", zap.String("username", account.Username))
	return account, nil
}

// negotiateUniqueIdentity fetches candidate identities until one is free of
// collisions in the account store, bounded by MaxIdentityAttempts. Two
// concurrent runs can still race past this check before either persists;
// the duplicate surfaces as a write failure handled by the scheduler.
func (s *PosterService) negotiateUniqueIdentity(ctx context.Context) (botdomain.Identity, error) {
	for attempt := 0; attempt < s.config.MaxIdentityAttempts; attempt++ {
		candidate := s.source.FetchIdentity(ctx)

		taken, err := s.users.ExistsByUsernameOrEmail(ctx, candidate.Username, candidate.Email)
		if err != nil {
			return botdomain.Identity{}, fmt.Errorf("uniqueness check failed: %w", err)
		}
		if !taken {
			return candidate, nil
		}

		s.logger.Debug("Candidate identity already taken",
			zap.String("username", candidate.Username),
			zap.Int("attempt", attempt+1),
		)
	}

	s.logger.Error("No unique bot identity found",
		zap.Int("attempts", s.config.MaxIdentityAttempts))
	return botdomain.Identity{}, botdomain.ErrMaxRetriesExceeded
}

// publishIdea merges the account identity and synthesized content into one
// persisted idea record. Single insert, no validation beyond what the
// synthesizer already applied: constrained fields are stored as returned.
func (s *PosterService) publishIdea(ctx context.Context, account *identity.User, content *botdomain.IdeaContent) (*feed.Idea, error) {
	idea := feed.NewIdea(account.Username, account.Email)
	idea.FullName = content.FullName
	idea.Topic = content.Topic
	idea.Description = content.Description
	idea.Stage = content.Stage
	idea.Market = content.Market
	idea.Goals = content.Goals
	idea.Role = content.Role
	idea.StartupName = content.StartupName
	idea.Industry = content.Industry

	if err := s.ideas.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to publish idea: %w", err)
	}
	return idea, nil
}
