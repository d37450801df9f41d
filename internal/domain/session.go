package domain

import (
	"fmt"
	"time"
)

// Session represents an individual scheduled talk or activity belonging
// to exactly one Section of an event.
type Session struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	SectionID   string    `json:"section_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Tags        []string  `json:"tags"`
	Attendees   []string  `json:"attendees"`
}

// NewSession returns a new Session with the given fields.
func NewSession(eventID, sectionID, id, title, description string, startTime, endTime time.Time, tags, attendees []string) *Session {
	return &Session{
		ID:          id,
		EventID:     eventID,
		SectionID:   sectionID,
		Title:       title,
		Description: description,
		StartTime:   startTime,
		EndTime:     endTime,
		Tags:        tags,
		Attendees:   attendees,
	}
}

// Validate checks the record shape before it may be persisted. The store
// does not enforce that SectionID references a live Section; a dangling
// reference is a valid, if stale, state.
func (s *Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidRecord)
	}
	if s.Title == "" {
		return fmt.Errorf("%w: session %q title is required", ErrInvalidRecord, s.ID)
	}
	if s.SectionID == "" {
		return fmt.Errorf("%w: session %q section id is required", ErrInvalidRecord, s.ID)
	}
	if !s.EndTime.IsZero() && !s.StartTime.IsZero() && s.EndTime.Before(s.StartTime) {
		return fmt.Errorf("%w: session %q ends before it starts", ErrInvalidRecord, s.ID)
	}
	return nil
}
