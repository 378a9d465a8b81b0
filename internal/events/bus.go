package events

import (
	"context"
	"log/slog"
	"sync"
)

// Bus fans events out to subscribers and appends them to the log. Delivery
// is non-blocking: a subscriber that falls behind loses events rather than
// stalling a sync batch.
type Bus struct {
	mu     sync.Mutex
	subs   []chan Event
	log    *EventLog
	logger *slog.Logger
	closed bool
}

// NewBus creates an event bus. The EventLog is optional, pass nil to
// disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{log: log, logger: logger}
}

// Publish appends the event to the log and delivers it to every subscriber.
// A persistence failure is logged but never blocks delivery. Publishing on
// a closed bus is a no-op.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	subs := make([]chan Event, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	if b.log != nil {
		if _, err := b.log.Append(e); err != nil {
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
	return nil
}

// Subscribe returns a channel receiving every published event. The channel
// is closed by Unsubscribe or Close.
func (b *Bus) Subscribe(bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	b.subs = append(b.subs, ch)
	return ch
}

// Unsubscribe removes a subscription channel and closes it.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	return nil
}
