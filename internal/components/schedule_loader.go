package components

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"scheduleboard/internal/bus"
	"scheduleboard/internal/domain"
)

// State names a loader's position in its Idle → Loading → Stored loop.
// Stored is the rest state after a successful sync; a failed sync returns
// to Idle with the store untouched.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateStored  State = "stored"
)

// ScheduleLoader synchronizes an event's sections from the remote port
// into the store. Setting its event id triggers a fetch; a successful
// fetch replaces the event's sections wholesale and publishes a
// data-changed signal on the bus. Failures keep the last known good data.
type ScheduleLoader struct {
	store   domain.ScheduleStore
	port    domain.RemoteSectionsPort
	bus     *bus.Bus
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	eventID string
	gen     uint64
	state   State
}

func NewScheduleLoader(store domain.ScheduleStore, port domain.RemoteSectionsPort, b *bus.Bus, logger *slog.Logger, timeout time.Duration) *ScheduleLoader {
	return &ScheduleLoader{
		store:   store,
		port:    port,
		bus:     b,
		logger:  logger,
		timeout: timeout,
		state:   StateIdle,
	}
}

// SetEventID reacts to the event-scope attribute. An empty or unchanged
// value is ignored. A new value supersedes any fetch still in flight: the
// old fetch may finish and write its (differently keyed) result, but it
// no longer owns state transitions or the bus signal.
func (l *ScheduleLoader) SetEventID(ctx context.Context, eventID string) {
	l.mu.Lock()
	if eventID == "" || eventID == l.eventID {
		l.mu.Unlock()
		return
	}
	l.eventID = eventID
	l.gen++
	gen := l.gen
	l.state = StateLoading
	l.mu.Unlock()

	go l.load(ctx, eventID, gen)
}

// Refresh re-fetches the current event id, if one is set. This is the
// analogue of bumping the trigger attribute without changing its value.
func (l *ScheduleLoader) Refresh(ctx context.Context) {
	l.mu.Lock()
	if l.eventID == "" {
		l.mu.Unlock()
		return
	}
	eventID := l.eventID
	l.gen++
	gen := l.gen
	l.state = StateLoading
	l.mu.Unlock()

	go l.load(ctx, eventID, gen)
}

func (l *ScheduleLoader) load(ctx context.Context, eventID string, gen uint64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	sections, err := l.port.GetScheduleSections(ctx, eventID)
	if err != nil {
		// Keep the stale cache; readers hold on to last known good data.
		l.logger.Warn("section fetch failed, keeping cached data",
			"event_id", eventID, "error", err)
		l.settle(gen, StateIdle)
		return
	}

	valid := make([]*domain.Section, 0, len(sections))
	for _, section := range sections {
		section.EventID = eventID
		if err := section.Validate(); err != nil {
			l.logger.Warn("dropping malformed section", "event_id", eventID, "error", err)
			continue
		}
		valid = append(valid, section)
	}

	if err := l.store.ReplaceSections(ctx, eventID, valid); err != nil {
		l.logger.Error("section store write failed", "event_id", eventID, "error", err)
		l.settle(gen, StateIdle)
		return
	}

	if !l.settle(gen, StateStored) {
		// Superseded while in flight; the write above is keyed by the
		// triggering event id and therefore harmless, but the signal
		// belongs to the newest fetch.
		return
	}
	l.bus.Publish(bus.DataChanged{
		Kind:      bus.KindSections,
		EventID:   eventID,
		UpdatedAt: time.Now().UTC(),
	})
}

// settle applies the terminal state for generation gen. It reports false
// when a newer generation has taken over.
func (l *ScheduleLoader) settle(gen uint64, state State) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	l.state = state
	return true
}

// State returns the loader's current machine state.
func (l *ScheduleLoader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// EventID returns the currently bound event id.
func (l *ScheduleLoader) EventID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.eventID
}
