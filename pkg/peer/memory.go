package peer

import (
	"context"
	"sync"

	"github.com/scorpionlabs/tictac/pkg/errors"
)

// subscriptionBuffer is the number of frames a subscriber may fall behind
// before publishers block.
const subscriptionBuffer = 64

// Hub is an in-process broadcast medium. Members join it by name and get a
// [MemoryChannel].
type Hub struct {
	name    string
	mu      sync.RWMutex
	members map[*MemoryChannel]struct{}
}

// NewHub creates an empty hub. name is reported by every member's Name.
func NewHub(name string) *Hub {
	return &Hub{name: name, members: make(map[*MemoryChannel]struct{})}
}

// Join adds a member identified by from.
func (h *Hub) Join(from string) *MemoryChannel {
	m := &MemoryChannel{hub: h, from: from, left: make(chan struct{})}
	h.mu.Lock()
	h.members[m] = struct{}{}
	h.mu.Unlock()
	return m
}

// Members returns the number of joined members.
func (h *Hub) Members() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members)
}

// subscription is one Subscribe call. done is closed as soon as the
// subscriber stops reading so blocked publishers can skip it.
type subscription struct {
	frames chan Frame
	done   chan struct{}
	once   sync.Once
}

func (s *subscription) stop() { s.once.Do(func() { close(s.done) }) }

// MemoryChannel is one member's view of a [Hub].
//
// The hub lock guards membership and is held for reading while frames are
// delivered; subscriptions are only closed under the write lock. mu guards
// the member's own subscription list so Close can release blocked publishers
// before it waits for the hub lock.
type MemoryChannel struct {
	hub  *Hub
	from string
	left chan struct{}

	mu     sync.Mutex
	subs   []*subscription
	closed bool
}

var _ Channel = (*MemoryChannel)(nil)

func (m *MemoryChannel) Name() string { return m.hub.name }

// Publish delivers data to every other member's subscriptions. It blocks while
// a subscriber's buffer is full, until ctx is done.
func (m *MemoryChannel) Publish(ctx context.Context, data []byte) error {
	h := m.hub
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.members[m]; !ok {
		return errors.New(errors.ErrCodeClosed, "publish on closed channel %s", h.name)
	}

	frame := Frame{From: m.from, Data: append([]byte(nil), data...)}
	for member := range h.members {
		if member == m {
			continue
		}
		for _, sub := range member.subscriptions() {
			select {
			case sub.frames <- frame:
			case <-sub.done:
			case <-ctx.Done():
				return errors.Retryable(errors.Wrap(errors.ErrCodeDeliveryFailed, ctx.Err(), "deliver to %s", member.from))
			}
		}
	}
	return nil
}

// Subscribe registers a new subscription. It ends when ctx is done or the
// member closes.
func (m *MemoryChannel) Subscribe(ctx context.Context) (<-chan Frame, error) {
	h := m.hub
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, errors.New(errors.ErrCodeClosed, "subscribe on closed channel %s", h.name)
	}

	sub := &subscription{
		frames: make(chan Frame, subscriptionBuffer),
		done:   make(chan struct{}),
	}
	m.subs = append(m.subs, sub)

	go func() {
		select {
		case <-ctx.Done():
		case <-m.left:
			return
		}
		sub.stop()
		h.mu.Lock()
		defer h.mu.Unlock()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subs {
			if s == sub {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				close(sub.frames)
				return
			}
		}
	}()
	return sub.frames, nil
}

// Close leaves the hub and closes every subscription. It is idempotent.
func (m *MemoryChannel) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.left)
	for _, s := range m.subs {
		s.stop()
	}
	m.mu.Unlock()

	h := m.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.members, m)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		close(s.frames)
	}
	m.subs = nil
	return nil
}

func (m *MemoryChannel) subscriptions() []*subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*subscription(nil), m.subs...)
}
