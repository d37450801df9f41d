package domain

import "context"

// ScheduleStore defines durable, keyed persistence for Sections and
// Sessions, partitioned by event. Records are addressed by the composite
// key (eventID, id); a write with an existing key replaces the prior
// value whole. Per-key serialization is the storage engine's job; callers
// take no locks of their own.
type ScheduleStore interface {
	// Init opens or creates the underlying persistent structure. Idempotent;
	// concurrent callers all return once initialization has completed
	// exactly once.
	Init(ctx context.Context) error

	// UpsertSection inserts or replaces the section under
	// (eventID, section.ID).
	UpsertSection(ctx context.Context, eventID string, section *Section) error
	// GetSection returns the stored section or ErrNotFound.
	GetSection(ctx context.Context, eventID, id string) (*Section, error)
	// ListSections returns all sections for the event in no guaranteed
	// order; an empty slice when none exist.
	ListSections(ctx context.Context, eventID string) ([]*Section, error)
	// DeleteSection removes the section if present; absence is a no-op.
	DeleteSection(ctx context.Context, eventID, id string) error
	// ReorderSections replaces the stored Order field for each given
	// record in one atomic batch. Records not named in the input are left
	// untouched; Order values are never re-normalized.
	ReorderSections(ctx context.Context, eventID string, ordered []*Section) error
	// ReplaceSections atomically replaces every section stored for the
	// event with the given set. Other events' records are untouched.
	ReplaceSections(ctx context.Context, eventID string, sections []*Section) error

	// UpsertSession inserts or replaces the session under
	// (eventID, session.ID).
	UpsertSession(ctx context.Context, eventID string, session *Session) error
	// GetSession returns the stored session or ErrNotFound.
	GetSession(ctx context.Context, eventID, id string) (*Session, error)
	// ListSessions returns all sessions for the event in no guaranteed
	// order; an empty slice when none exist.
	ListSessions(ctx context.Context, eventID string) ([]*Session, error)
	// ListSessionsBySection returns the event's sessions whose SectionID
	// matches, in no guaranteed order.
	ListSessionsBySection(ctx context.Context, eventID, sectionID string) ([]*Session, error)
	// DeleteSession removes the session if present; absence is a no-op.
	DeleteSession(ctx context.Context, eventID, id string) error
	// ReplaceSessions atomically replaces every session stored for the
	// event with the given set.
	ReplaceSessions(ctx context.Context, eventID string, sessions []*Session) error
}
