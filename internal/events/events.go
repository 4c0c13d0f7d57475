// Package events provides a small synchronous in-process event bus.
// Services publish data-change notifications on it; the dashboard refresh
// scheduler subscribes to know when cached aggregates are stale.
package events

import (
	"sync"
	"time"

	"monetra/internal/logger"
)

// Type identifies a kind of event.
type Type string

const (
	TransactionRecorded Type = "transaction.recorded"
	BudgetChanged       Type = "budget.changed"
)

// Event is the envelope published on the bus. UserID scopes the change so
// subscribers can invalidate only the affected user's data.
type Event struct {
	Type   Type
	UserID string
	At     time.Time
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(Event)

// Bus is a concurrency-safe synchronous event dispatcher.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Type][]Handler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[Type][]Handler)}
}

// Subscribe registers a handler for the given event type.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[t] = append(b.subscribers[t], h)
}

// Publish delivers the event to every handler registered for its type, in
// registration order. Panics in handlers are recovered and logged so a
// broken subscriber cannot fail the write that triggered the event.
func (b *Bus) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.subscribers[e.Type]))
	copy(handlers, b.subscribers[e.Type])
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Get().Errorw("event handler panic",
						"event", e.Type,
						"user_id", e.UserID,
						"panic", r,
					)
				}
			}()
			h(e)
		}()
	}
}
