// Package bus provides the process-local pub/sub channel that carries
// data-changed signals between independently constructed components.
// Subscriptions are keyed by record kind and event id; no component holds
// a reference to any other.
package bus

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind names the record family a signal refers to.
type Kind string

const (
	KindSections Kind = "sections"
	KindSessions Kind = "sessions"
)

// DataChanged announces that fresh data for (Kind, EventID) is available
// in the store. SectionID is optional and narrows the scope for session
// signals. UpdatedAt advances monotonically per publisher; the signal is
// level-semantic — re-reading the store on receipt is always correct, so
// missing an intermediate signal loses nothing.
type DataChanged struct {
	Kind      Kind      `json:"kind"`
	EventID   string    `json:"event_id"`
	SectionID string    `json:"section_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bus routes DataChanged messages to subscribers by (Kind, EventID) key.
// Publish never blocks: a subscriber whose buffer is full misses that
// signal and catches up on the next one.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan DataChanged // topic -> subscriber id -> channel
}

func New() *Bus {
	return &Bus{
		subs: make(map[string]map[string]chan DataChanged),
	}
}

const subscriberBuffer = 8

func topic(kind Kind, eventID string) string {
	return string(kind) + "/" + eventID
}

// Subscribe registers interest in signals for (kind, eventID) and returns
// the receive channel plus a cancel function. Cancel is idempotent and
// closes the channel.
func (b *Bus) Subscribe(kind Kind, eventID string) (<-chan DataChanged, func()) {
	ch := make(chan DataChanged, subscriberBuffer)
	id := uuid.NewString()
	key := topic(kind, eventID)

	b.mu.Lock()
	if _, ok := b.subs[key]; !ok {
		b.subs[key] = make(map[string]chan DataChanged)
	}
	b.subs[key][id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[key], id)
			if len(b.subs[key]) == 0 {
				delete(b.subs, key)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers msg to every subscriber of (msg.Kind, msg.EventID)
// without blocking.
func (b *Bus) Publish(msg DataChanged) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[topic(msg.Kind, msg.EventID)] {
		select {
		case ch <- msg:
		default:
			// Subscriber buffer full; it will re-read on the next signal.
		}
	}
}
