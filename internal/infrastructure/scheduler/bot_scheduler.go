package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// IdeaPoster runs one bot posting pipeline execution
type IdeaPoster interface {
	PostIdea(ctx context.Context) error
}

// BotSchedulerConfig holds configuration for the bot posting scheduler
type BotSchedulerConfig struct {
	// Enabled gates execution. A disabled scheduler still ticks but skips
	// and logs every run.
	Enabled bool
	// Interval between pipeline runs.
	Interval time.Duration
}

// DefaultBotSchedulerConfig returns default scheduler configuration,
// running every 12 hours.
func DefaultBotSchedulerConfig() BotSchedulerConfig {
	return BotSchedulerConfig{
		Enabled:  false,
		Interval: 12 * time.Hour,
	}
}

// BotScheduler fires the bot posting pipeline on a fixed wall-clock
// interval. Errors and panics raised anywhere in the pipeline are caught at
// this boundary, logged, and swallowed: a failed run never crashes the host
// process and is not retried before the next tick. Overlapping runs are not
// guarded against.
type BotScheduler struct {
	config BotSchedulerConfig
	poster IdeaPoster
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRunAt *time.Time
	nextRunAt *time.Time
}

// NewBotScheduler creates a new bot posting scheduler
func NewBotScheduler(config BotSchedulerConfig, poster IdeaPoster, logger *zap.Logger) *BotScheduler {
	if config.Interval <= 0 {
		config.Interval = 12 * time.Hour
	}
	return &BotScheduler{
		config: config,
		poster: poster,
		logger: logger,
	}
}

// Start starts the scheduler loop
func (s *BotScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	next := time.Now().Add(s.config.Interval)
	s.nextRunAt = &next
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Bot posting scheduler started",
		zap.Bool("enabled", s.config.Enabled),
		zap.Duration("interval", s.config.Interval),
	)
	return nil
}

// Stop stops the scheduler and waits for the loop to exit
func (s *BotScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Bot posting scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Bot posting scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerManualRun runs the pipeline once, outside the schedule.
// Uses a background context so an HTTP caller disconnecting does not cancel
// the run mid-pipeline.
func (s *BotScheduler) TriggerManualRun() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	go s.runOnce(context.Background())
	return nil
}

// GetStatus returns the current scheduler state
func (s *BotScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"enabled":     s.config.Enabled,
		"is_running":  s.isRunning,
		"interval":    s.config.Interval.String(),
		"last_run_at": s.lastRunAt,
		"next_run_at": s.nextRunAt,
	}
}

func (s *BotScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
			s.mu.Lock()
			next := time.Now().Add(s.config.Interval)
			s.nextRunAt = &next
			s.mu.Unlock()
		}
	}
}

// runOnce executes a single pipeline run behind the feature flag and the
// panic/error absorption boundary.
func (s *BotScheduler) runOnce(ctx context.Context) {
	if !s.config.Enabled {
		s.logger.Info("Bot posting is disabled, skipping scheduled run")
		return
	}

	now := time.Now()
	s.mu.Lock()
	s.lastRunAt = &now
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Bot posting run panicked", zap.Any("panic", r))
		}
	}()

	s.logger.Info("Starting bot posting run")
	if err := s.poster.PostIdea(ctx); err != nil {
		s.logger.Error("Bot posting run failed", zap.Error(err))
		return
	}
	s.logger.Info("Bot posting run completed")
}
