package components

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"scheduleboard/internal/bus"
	"scheduleboard/internal/domain"
)

// SessionLoader is the session-side counterpart of ScheduleLoader: it
// fetches the full session list for its event, replaces the event's
// sessions in the store, and publishes a session-kind data-changed signal
// that SessionScheduler instances observe.
type SessionLoader struct {
	store   domain.ScheduleStore
	port    domain.RemoteSessionsPort
	bus     *bus.Bus
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	eventID string
	gen     uint64
	state   State
}

func NewSessionLoader(store domain.ScheduleStore, port domain.RemoteSessionsPort, b *bus.Bus, logger *slog.Logger, timeout time.Duration) *SessionLoader {
	return &SessionLoader{
		store:   store,
		port:    port,
		bus:     b,
		logger:  logger,
		timeout: timeout,
		state:   StateIdle,
	}
}

// SetEventID reacts to the event-scope attribute with the same supersede
// semantics as ScheduleLoader.
func (l *SessionLoader) SetEventID(ctx context.Context, eventID string) {
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

// Refresh re-fetches the current event id, if one is set.
func (l *SessionLoader) Refresh(ctx context.Context) {
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

func (l *SessionLoader) load(ctx context.Context, eventID string, gen uint64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	sessions, err := l.port.GetSessions(ctx, eventID)
	if err != nil {
		l.logger.Warn("session fetch failed, keeping cached data",
			"event_id", eventID, "error", err)
		l.settle(gen, StateIdle)
		return
	}

	valid := make([]*domain.Session, 0, len(sessions))
	for _, session := range sessions {
		session.EventID = eventID
		if err := session.Validate(); err != nil {
			l.logger.Warn("dropping malformed session", "event_id", eventID, "error", err)
			continue
		}
		valid = append(valid, session)
	}

	if err := l.store.ReplaceSessions(ctx, eventID, valid); err != nil {
		l.logger.Error("session store write failed", "event_id", eventID, "error", err)
		l.settle(gen, StateIdle)
		return
	}

	if !l.settle(gen, StateStored) {
		return
	}
	l.bus.Publish(bus.DataChanged{
		Kind:      bus.KindSessions,
		EventID:   eventID,
		UpdatedAt: time.Now().UTC(),
	})
}

func (l *SessionLoader) settle(gen uint64, state State) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	l.state = state
	return true
}

// State returns the loader's current machine state.
func (l *SessionLoader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// EventID returns the currently bound event id.
func (l *SessionLoader) EventID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.eventID
}
