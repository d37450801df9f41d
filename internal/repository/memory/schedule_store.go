// Package memory provides an in-process ScheduleStore used as a test
// double and for offline runs. All operations copy records on the way in
// and out so callers can never alias stored state.
package memory

import (
	"context"
	"sync"

	"scheduleboard/internal/domain"
)

// ScheduleStore is an in-memory implementation of domain.ScheduleStore.
// A single RWMutex stands in for the storage engine's per-key transaction
// isolation: batch operations happen under one lock hold, so readers see
// either none or all of a batch.
type ScheduleStore struct {
	mu       sync.RWMutex
	sections map[string]map[string]domain.Section // eventID -> sectionID -> Section
	sessions map[string]map[string]domain.Session // eventID -> sessionID -> Session
}

func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{
		sections: make(map[string]map[string]domain.Section),
		sessions: make(map[string]map[string]domain.Session),
	}
}

var _ domain.ScheduleStore = (*ScheduleStore)(nil)

// Init is a no-op; the maps are ready from construction.
func (s *ScheduleStore) Init(ctx context.Context) error {
	return nil
}

func (s *ScheduleStore) UpsertSection(ctx context.Context, eventID string, section *domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[eventID]; !ok {
		s.sections[eventID] = make(map[string]domain.Section)
	}
	s.sections[eventID][section.ID] = *section
	return nil
}

func (s *ScheduleStore) GetSection(ctx context.Context, eventID, id string) (*domain.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	section, ok := s.sections[eventID][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &section, nil
}

func (s *ScheduleStore) ListSections(ctx context.Context, eventID string) ([]*domain.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sections := []*domain.Section{}
	for _, section := range s.sections[eventID] {
		section := section
		sections = append(sections, &section)
	}
	return sections, nil
}

func (s *ScheduleStore) DeleteSection(ctx context.Context, eventID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sections[eventID], id)
	return nil
}

func (s *ScheduleStore) ReorderSections(ctx context.Context, eventID string, ordered []*domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.sections[eventID]
	for _, section := range ordered {
		existing, ok := stored[section.ID]
		if !ok {
			continue
		}
		existing.Order = section.Order
		stored[section.ID] = existing
	}
	return nil
}

func (s *ScheduleStore) ReplaceSections(ctx context.Context, eventID string, sections []*domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := make(map[string]domain.Section, len(sections))
	for _, section := range sections {
		fresh[section.ID] = *section
	}
	s.sections[eventID] = fresh
	return nil
}

func (s *ScheduleStore) UpsertSession(ctx context.Context, eventID string, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[eventID]; !ok {
		s.sessions[eventID] = make(map[string]domain.Session)
	}
	s.sessions[eventID][session.ID] = copySession(session)
	return nil
}

func (s *ScheduleStore) GetSession(ctx context.Context, eventID, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[eventID][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copySession(&session)
	return &out, nil
}

func (s *ScheduleStore) ListSessions(ctx context.Context, eventID string) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := []*domain.Session{}
	for _, session := range s.sessions[eventID] {
		out := copySession(&session)
		sessions = append(sessions, &out)
	}
	return sessions, nil
}

func (s *ScheduleStore) ListSessionsBySection(ctx context.Context, eventID, sectionID string) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := []*domain.Session{}
	for _, session := range s.sessions[eventID] {
		if session.SectionID != sectionID {
			continue
		}
		out := copySession(&session)
		sessions = append(sessions, &out)
	}
	return sessions, nil
}

func (s *ScheduleStore) DeleteSession(ctx context.Context, eventID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions[eventID], id)
	return nil
}

func (s *ScheduleStore) ReplaceSessions(ctx context.Context, eventID string, sessions []*domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := make(map[string]domain.Session, len(sessions))
	for _, session := range sessions {
		fresh[session.ID] = copySession(session)
	}
	s.sessions[eventID] = fresh
	return nil
}

func copySession(in *domain.Session) domain.Session {
	out := *in
	if in.Tags != nil {
		out.Tags = append([]string(nil), in.Tags...)
	}
	if in.Attendees != nil {
		out.Attendees = append([]string(nil), in.Attendees...)
	}
	return out
}
