package repository

import (
	"context"
	"sync"
	"time"
)

// EventType describes the nature of a store change notification.
type EventType int

const (
	// EventTasksChanged indicates the task set for the given date changed
	// (added, edited, moved, or removed tasks).
	EventTasksChanged EventType = iota

	// EventMoodsChanged indicates a mood record was written or removed.
	EventMoodsChanged
)

// Event is delivered to Watch subscribers when underlying storage changes.
type Event struct {
	Type EventType
	Date time.Time // calendar date the change applies to; zero for bulk ops
}

// Hub fans store change notifications out to subscribers. Bursts of writes
// within the coalescing window collapse into one event per (type, date) so a
// rollover touching many rows produces a handful of notifications instead of
// one per row. Slow subscribers drop events rather than block writers; the
// contract is eventual delivery of "something changed", not a full stream.
type Hub struct {
	mu      sync.Mutex
	subs    map[chan Event]struct{}
	pending map[EventType]map[time.Time]struct{}
	timer   *time.Timer
	delay   time.Duration
}

// NewHub creates a Hub with the given coalescing window.
func NewHub(delay time.Duration) *Hub {
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	return &Hub{
		subs:    make(map[chan Event]struct{}),
		pending: make(map[EventType]map[time.Time]struct{}),
		delay:   delay,
	}
}

// Publish enqueues a change notification. Safe to call on a nil Hub so
// repositories can be wired without one.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}
	h.mu.Lock()
	if h.pending[ev.Type] == nil {
		h.pending[ev.Type] = make(map[time.Time]struct{})
	}
	h.pending[ev.Type][ev.Date] = struct{}{}
	if h.timer == nil {
		h.timer = time.AfterFunc(h.delay, h.flush)
	}
	h.mu.Unlock()
}

func (h *Hub) flush() {
	h.mu.Lock()
	defer h.mu.Unlock()

	pending := h.pending
	h.pending = make(map[EventType]map[time.Time]struct{})
	h.timer = nil

	// Sends stay under the lock so a concurrent unsubscribe cannot close a
	// channel mid-send; they never block because each send is best-effort.
	for eventType, dates := range pending {
		for date := range dates {
			ev := Event{Type: eventType, Date: date}
			for ch := range h.subs {
				select {
				case ch <- ev:
				default:
					// Subscriber not ready; it will catch up on the next
					// refresh rather than stall the writer.
				}
			}
		}
	}
}

// Watch streams change events until ctx is cancelled. The returned channel
// is closed once ctx is done.
func (h *Hub) Watch(ctx context.Context) <-chan Event {
	ch := make(chan Event, 64)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}
