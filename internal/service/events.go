package service

import (
	"sync"
	"sync/atomic"
	"time"
)

// EventType names a change to the feed
type EventType string

const (
	EventPostCreated EventType = "post_created"
	EventPostUpdated EventType = "post_updated"
	EventPostDeleted EventType = "post_deleted"
	EventUserCreated EventType = "user_created"
)

// Event is published after a write has committed
type Event struct {
	Type    EventType `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

// Name is the SSE event name
func (e Event) Name() string {
	return string(e.Type)
}

// EventBus fans committed changes out to subscriber channels. Delivery is
// best effort: a full subscriber channel loses the event.
type EventBus struct {
	mu      sync.RWMutex
	nextID  int
	subs    map[int]chan<- Event
	dropped atomic.Uint64
}

// NewEventBus creates an event bus with no subscribers
func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[int]chan<- Event)}
}

// Subscribe registers ch and returns a func that removes it again
func (eb *EventBus) Subscribe(ch chan<- Event) (unsubscribe func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	id := eb.nextID
	eb.nextID++
	eb.subs[id] = ch

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		delete(eb.subs, id)
	}
}

// Publish stamps and delivers event. A nil bus drops it.
func (eb *EventBus) Publish(event Event) {
	if eb == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subs {
		select {
		case ch <- event:
		default:
			eb.dropped.Add(1)
		}
	}
}

// Dropped counts deliveries lost to full subscriber channels
func (eb *EventBus) Dropped() uint64 {
	return eb.dropped.Load()
}
