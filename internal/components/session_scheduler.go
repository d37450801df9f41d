package components

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"scheduleboard/internal/bus"
	"scheduleboard/internal/domain"
)

// SessionCard is one rendered child of the scheduler: a display-ready
// projection of a stored session.
type SessionCard struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TimeRange     string   `json:"time_range"`
	Tags          []string `json:"tags"`
	AttendeeCount int      `json:"attendee_count"`
}

// SessionScheduler is the read-only presentation component. It renders
// the sessions of one section, sorted by start time, straight out of the
// store, and re-renders whenever a session-kind data-changed signal for
// its event arrives. It performs no writes and calls no remote port; read
// failures keep the previous rendering.
type SessionScheduler struct {
	store  domain.ScheduleStore
	bus    *bus.Bus
	logger *slog.Logger

	mu        sync.RWMutex
	eventID   string
	sectionID string
	cards     []SessionCard
	unsub     func()
}

func NewSessionScheduler(store domain.ScheduleStore, b *bus.Bus, logger *slog.Logger) *SessionScheduler {
	return &SessionScheduler{
		store:  store,
		bus:    b,
		logger: logger,
	}
}

// SetEventID rebinds the scheduler to an event: it moves the bus
// subscription to the new key and re-renders. An empty or unchanged value
// is ignored.
func (s *SessionScheduler) SetEventID(ctx context.Context, eventID string) {
	s.mu.Lock()
	if eventID == "" || eventID == s.eventID {
		s.mu.Unlock()
		return
	}
	if s.unsub != nil {
		s.unsub()
	}
	s.eventID = eventID
	ch, cancel := s.bus.Subscribe(bus.KindSessions, eventID)
	s.unsub = cancel
	s.mu.Unlock()

	go s.watch(ch)
	s.render(ctx)
}

// SetSectionID narrows the rendered view to one section and re-renders.
func (s *SessionScheduler) SetSectionID(ctx context.Context, sectionID string) {
	s.mu.Lock()
	if sectionID == s.sectionID {
		s.mu.Unlock()
		return
	}
	s.sectionID = sectionID
	s.mu.Unlock()

	s.render(ctx)
}

// Close drops the bus subscription. The last rendering stays readable.
func (s *SessionScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *SessionScheduler) watch(ch <-chan bus.DataChanged) {
	for range ch {
		s.render(context.Background())
	}
}

// render recomputes the card list as a pure function of store contents.
func (s *SessionScheduler) render(ctx context.Context) {
	s.mu.RLock()
	eventID, sectionID := s.eventID, s.sectionID
	s.mu.RUnlock()
	if eventID == "" {
		return
	}

	sessions, err := s.store.ListSessions(ctx, eventID)
	if err != nil {
		s.logger.Warn("session read failed, keeping previous rendering",
			"event_id", eventID, "error", err)
		return
	}

	matched := make([]*domain.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.SectionID == sectionID {
			matched = append(matched, session)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].StartTime.Equal(matched[j].StartTime) {
			return matched[i].StartTime.Before(matched[j].StartTime)
		}
		return matched[i].ID < matched[j].ID
	})

	cards := make([]SessionCard, 0, len(matched))
	for _, session := range matched {
		cards = append(cards, SessionCard{
			ID:            session.ID,
			Title:         session.Title,
			Description:   session.Description,
			TimeRange:     session.StartTime.Format("15:04") + " - " + session.EndTime.Format("15:04"),
			Tags:          append([]string(nil), session.Tags...),
			AttendeeCount: len(session.Attendees),
		})
	}

	s.mu.Lock()
	s.cards = cards
	s.mu.Unlock()
}

// Cards returns the current rendering.
func (s *SessionScheduler) Cards() []SessionCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SessionCard(nil), s.cards...)
}
