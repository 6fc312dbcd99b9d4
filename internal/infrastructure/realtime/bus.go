package realtime

import "context"

// MessageBus fans out events to subscribers grouped by channel. Channels
// are cheap string keys; delivery is at-most-once and best-effort.
type MessageBus interface {
	// Publish sends the payload to all current subscribers of the channel.
	Publish(ctx context.Context, channel string, payload []byte) error

	// Subscribe returns a stream of payloads for the channel and a cancel
	// function that releases the subscription.
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)

	// Close releases all subscriptions.
	Close() error
}
