package peer

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/scorpionlabs/tictac/pkg/errors"
)

// DefaultChannel is the pub/sub channel used when none is configured.
const DefaultChannel = "tictac:moves"

// RedisConfig configures a [RedisChannel].
type RedisConfig struct {
	Addr     string // host:port of the Redis server
	Password string
	DB       int
	Channel  string // pub/sub channel name, DefaultChannel if empty
	From     string // display name attached to published frames
}

// envelope wraps a payload on the wire. ID distinguishes this process from
// other members sharing the same display name, and lets a member drop its
// own echo since Redis delivers a publish to every subscriber.
type envelope struct {
	ID   string `json:"id"`
	From string `json:"from"`
	Data []byte `json:"data"`
}

// RedisChannel is a [Channel] backed by Redis pub/sub.
type RedisChannel struct {
	client  redis.UniversalClient
	owned   bool
	channel string
	from    string
	id      string

	mu     sync.Mutex
	subs   []*redis.PubSub
	closed bool
}

var _ Channel = (*RedisChannel)(nil)

// NewRedisChannel connects to Redis and verifies the connection with PING.
func NewRedisChannel(ctx context.Context, cfg RedisConfig) (*RedisChannel, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeDeliveryFailed, err, "connect to redis at %s", cfg.Addr)
	}
	ch, err := NewRedisChannelFromClient(client, cfg.Channel, cfg.From)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	ch.owned = true
	return ch, nil
}

// NewRedisChannelFromClient wraps an existing client. The client is not
// closed by [RedisChannel.Close].
func NewRedisChannelFromClient(client redis.UniversalClient, channel, from string) (*RedisChannel, error) {
	if channel == "" {
		channel = DefaultChannel
	}
	if err := errors.ValidateChannelName(channel); err != nil {
		return nil, err
	}
	return &RedisChannel{
		client:  client,
		channel: channel,
		from:    from,
		id:      uuid.NewString(),
	}, nil
}

func (r *RedisChannel) Name() string { return r.channel }

// ID returns the unique identity stamped on this member's frames.
func (r *RedisChannel) ID() string { return r.id }

// Publish wraps data in an envelope and publishes it. Redis failures are
// reported as retryable DELIVERY_FAILED errors.
func (r *RedisChannel) Publish(ctx context.Context, data []byte) error {
	payload, err := r.wrap(data)
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return errors.Retryable(errors.Wrap(errors.ErrCodeDeliveryFailed, err, "publish to %s", r.channel))
	}
	return nil
}

// Subscribe subscribes to the channel and waits for Redis to confirm before
// returning, so frames published afterwards are not missed.
func (r *RedisChannel) Subscribe(ctx context.Context) (<-chan Frame, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, errors.New(errors.ErrCodeClosed, "subscribe on closed channel %s", r.channel)
	}
	r.mu.Unlock()

	ps := r.client.Subscribe(ctx, r.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, errors.Wrap(errors.ErrCodeDeliveryFailed, err, "subscribe to %s", r.channel)
	}

	r.mu.Lock()
	r.subs = append(r.subs, ps)
	r.mu.Unlock()

	out := make(chan Frame, subscriptionBuffer)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				frame, own, err := r.unwrap([]byte(msg.Payload))
				if own {
					continue
				}
				if err != nil {
					// Hand the raw payload on so the session reports it.
					frame = Frame{Data: []byte(msg.Payload)}
				}
				select {
				case out <- frame:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close ends every subscription and, if the channel created its client,
// closes the client.
func (r *RedisChannel) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	for _, ps := range r.subs {
		_ = ps.Close()
	}
	r.subs = nil
	if r.owned {
		return r.client.Close()
	}
	return nil
}

func (r *RedisChannel) wrap(data []byte) ([]byte, error) {
	payload, err := json.Marshal(envelope{ID: r.id, From: r.from, Data: data})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "encode envelope")
	}
	return payload, nil
}

// unwrap decodes an envelope. own reports whether this member sent it.
func (r *RedisChannel) unwrap(payload []byte) (Frame, bool, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Frame{}, false, errors.Wrap(errors.ErrCodeSerialization, err, "decode envelope")
	}
	if env.ID == r.id {
		return Frame{}, true, nil
	}
	return Frame{From: env.From, Data: env.Data}, false, nil
}
