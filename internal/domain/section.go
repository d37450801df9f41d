package domain

import (
	"fmt"
	"time"
)

// Section represents a named, ordered subdivision of an event's schedule,
// such as a day or a track.
type Section struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
	Date    string `json:"date,omitempty"`
}

// NewSection returns a new Section with the given fields.
func NewSection(eventID, id, name string, order int, date string) *Section {
	return &Section{
		ID:      id,
		EventID: eventID,
		Name:    name,
		Order:   order,
		Date:    date,
	}
}

// Validate checks the record shape before it may be persisted.
// Order values carry no uniqueness requirement; ties are broken by ID.
func (s *Section) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: section id is required", ErrInvalidRecord)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: section %q name is required", ErrInvalidRecord, s.ID)
	}
	if s.Date != "" {
		if _, err := time.Parse("2006-01-02", s.Date); err != nil {
			return fmt.Errorf("%w: section %q date %q is not YYYY-MM-DD", ErrInvalidRecord, s.ID, s.Date)
		}
	}
	return nil
}
