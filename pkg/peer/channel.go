package peer

import "context"

// Frame is one payload received from a channel.
type Frame struct {
	From string
	Data []byte
}

// Channel is a broadcast transport. A frame published by one member is
// delivered, in publish order, to every other member subscribed at the time.
// Members never receive their own frames.
type Channel interface {
	// Name identifies the channel in logs and hooks.
	Name() string

	// Publish sends data to every other member.
	Publish(ctx context.Context, data []byte) error

	// Subscribe returns frames from other members until ctx is done or the
	// channel is closed, after which the returned channel is closed.
	Subscribe(ctx context.Context) (<-chan Frame, error)

	// Close leaves the channel and ends all subscriptions.
	Close() error
}
