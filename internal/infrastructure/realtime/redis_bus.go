package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/innolink/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBus implements MessageBus on top of Redis pub/sub so delivery
// works across multiple server instances.
type RedisBus struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisBus connects to Redis and verifies the connection
func NewRedisBus(cfg config.RedisConfig, logger *zap.Logger) (*RedisBus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("realtime: failed to connect to redis: %w", err)
	}

	return &RedisBus{
		client: client,
		logger: logger,
	}, nil
}

// Publish sends the payload to every subscriber of the channel
func (b *RedisBus) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("realtime: failed to publish to %s: %w", channel, err)
	}
	return nil
}

// Subscribe opens a Redis subscription and forwards messages until the
// returned cancel function is called or the context ends
func (b *RedisBus) Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error) {
	sub := b.client.Subscribe(ctx, channel)

	// Wait for the subscription to be confirmed before returning.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("realtime: failed to subscribe to %s: %w", channel, err)
	}

	out := make(chan []byte, 16)
	done := make(chan struct{})

	go func() {
		defer close(out)
		in := sub.Channel()
		for {
			select {
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				default:
					b.logger.Warn("Dropping realtime message for slow subscriber",
						zap.String("channel", channel))
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = sub.Close()
		})
	}
	return out, cancel, nil
}

// Close shuts down the underlying Redis client
func (b *RedisBus) Close() error {
	return b.client.Close()
}
