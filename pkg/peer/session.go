package peer

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/scorpionlabs/tictac/pkg/errors"
	"github.com/scorpionlabs/tictac/pkg/observability"
)

// Session sends and receives moves for one player on one channel.
type Session struct {
	name   string
	ch     Channel
	logger *log.Logger
}

// Handler receives decoded moves from other players.
type Handler func(ctx context.Context, m Move)

// NewSession creates a session for the player called name. A nil logger
// discards output.
func NewSession(name string, ch Channel, logger *log.Logger) (*Session, error) {
	if err := errors.ValidatePlayerName(name); err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "session requires a channel")
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Session{name: name, ch: ch, logger: logger}, nil
}

// Name returns the player's display name.
func (s *Session) Name() string { return s.name }

// Channel returns the underlying transport.
func (s *Session) Channel() Channel { return s.ch }

// Send publishes m. An empty originator is filled with the session name.
func (s *Session) Send(ctx context.Context, m Move) error {
	if m.Originator == "" {
		m.Originator = s.name
	}
	err := publish(ctx, s.ch, m)
	observability.Peer().OnSend(ctx, s.ch.Name(), m.Index, err)
	if err != nil {
		s.logger.Warn("send failed", "channel", s.ch.Name(), "index", m.Index, "error", err)
		return err
	}
	s.logger.Debug("sent move", "channel", s.ch.Name(), "index", m.Index)
	return nil
}

// SendWithRetry is like Send but retries transient delivery failures with
// exponential backoff.
func (s *Session) SendWithRetry(ctx context.Context, m Move) error {
	return errors.Retry(ctx, 3, 100*time.Millisecond, func() error {
		return s.Send(ctx, m)
	})
}

// Run subscribes to the channel and calls h for each received move until
// ctx is done or the channel closes. Frames that fail to decode are logged
// and skipped. Run returns nil on a clean shutdown.
func (s *Session) Run(ctx context.Context, h Handler) error {
	frames, err := s.ch.Subscribe(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("joined channel", "channel", s.ch.Name(), "name", s.name)

	for {
		select {
		case <-ctx.Done():
			return nil
		case f, ok := <-frames:
			if !ok {
				return nil
			}
			m, err := Decode(f.Data)
			if err != nil {
				observability.Peer().OnDecodeError(ctx, s.ch.Name(), err)
				s.logger.Warn("dropped frame", "channel", s.ch.Name(), "from", f.From, "error", err)
				continue
			}
			observability.Peer().OnReceive(ctx, s.ch.Name(), m.Originator, m.Index)
			s.logger.Info("received move", "from", m.Originator, "index", m.Index)
			h(ctx, m)
		}
	}
}

// Close leaves the channel.
func (s *Session) Close() error {
	return s.ch.Close()
}

// Broadcast publishes m on every channel concurrently. It returns the first
// error; the remaining publishes are cancelled.
func Broadcast(ctx context.Context, m Move, channels ...Channel) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, ch := range channels {
		g.Go(func() error {
			err := publish(ctx, ch, m)
			observability.Peer().OnSend(ctx, ch.Name(), m.Index, err)
			return err
		})
	}
	return g.Wait()
}

func publish(ctx context.Context, ch Channel, m Move) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := ch.Publish(ctx, data); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Retryable(errors.Wrap(errors.ErrCodeDeliveryFailed, err, "publish to %s", ch.Name()))
	}
	return nil
}
