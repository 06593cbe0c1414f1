// Package notify pushes job completion events to connected clients.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type EventType string

const (
	ImageGenerated EventType = "image.generated"
	ImageFailed    EventType = "image.failed"
	ModelTrained   EventType = "model.trained"
	ModelFailed    EventType = "model.failed"
	CreditsGranted EventType = "credits.granted"
)

// Event is one state change visible to a single user.
type Event struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"userId"`
	ID        string    `json:"id,omitempty"`
	Status    string    `json:"status,omitempty"`
	URL       string    `json:"url,omitempty"`
	Credits   int       `json:"credits,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sink receives events. Implementations must not block the caller for long
// and must not fail it.
type Sink interface {
	Publish(ctx context.Context, ev Event)
}

// Fanout delivers each event to every sink in order.
type Fanout []Sink

func (f Fanout) Publish(ctx context.Context, ev Event) {
	for _, s := range f {
		if s != nil {
			s.Publish(ctx, ev)
		}
	}
}

// Hub keeps per-user subscriber channels in memory.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[chan Event]struct{}
	buffer int
	logger zerolog.Logger
}

func NewHub(buffer int, logger zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[string]map[chan Event]struct{}),
		buffer: buffer,
		logger: logger.With().Str("component", "notify").Logger(),
	}
}

// Subscribe registers a listener for userID. The returned cancel func must
// be called once the listener goes away; it closes the channel.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)
	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], ch)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish never blocks: a subscriber with a full buffer misses the event.
func (h *Hub) Publish(_ context.Context, ev Event) {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[ev.UserID] {
		select {
		case ch <- ev:
		default:
			h.logger.Warn().Str("user_id", ev.UserID).Str("type", string(ev.Type)).Msg("Dropping event for slow subscriber")
		}
	}
}

// Subscribers returns the number of open listeners for userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
