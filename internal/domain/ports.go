package domain

import "context"

// RemoteSectionsPort fetches the section list for an event from the
// backend (or a test double). A returned error means "no fresh data";
// callers keep whatever they last stored.
type RemoteSectionsPort interface {
	GetScheduleSections(ctx context.Context, eventID string) ([]*Section, error)
}

// RemoteSessionsPort fetches the full session list for an event from the
// backend (or a test double). Same failure contract as the sections port.
type RemoteSessionsPort interface {
	GetSessions(ctx context.Context, eventID string) ([]*Session, error)
}
