package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"scheduleboard/internal/domain"

	"github.com/lib/pq"
)

// ScheduleStore is the durable ScheduleStore implementation on PostgreSQL.
// Per-key serialization is delegated to row-level locking; batch operations
// run in a single transaction.
type ScheduleStore struct {
	DB *sql.DB

	mu          sync.Mutex
	initialized bool
}

func NewScheduleStore(db *sql.DB) *ScheduleStore {
	return &ScheduleStore{
		DB: db,
	}
}

var _ domain.ScheduleStore = (*ScheduleStore)(nil)

const createSectionsTable = `
	CREATE TABLE IF NOT EXISTS schedule_sections (
		event_id   TEXT NOT NULL,
		id         TEXT NOT NULL,
		name       TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		date       TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (event_id, id)
	)
`

const createSessionsTable = `
	CREATE TABLE IF NOT EXISTS schedule_sessions (
		event_id    TEXT NOT NULL,
		id          TEXT NOT NULL,
		section_id  TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_time  TIMESTAMPTZ NOT NULL,
		end_time    TIMESTAMPTZ NOT NULL,
		tags        TEXT[] NOT NULL DEFAULT '{}',
		attendees   TEXT[] NOT NULL DEFAULT '{}',
		PRIMARY KEY (event_id, id)
	)
`

// Init creates the backing tables. Idempotent; a failed attempt may be
// retried, a successful one makes later calls a no-op.
func (s *ScheduleStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	for _, q := range []string{createSectionsTable, createSessionsTable} {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("%w: init schema: %v", domain.ErrStorageWrite, err)
		}
	}
	s.initialized = true
	return nil
}

func (s *ScheduleStore) UpsertSection(ctx context.Context, eventID string, section *domain.Section) error {
	query := `
		INSERT INTO schedule_sections (event_id, id, name, sort_order, date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, id) DO UPDATE
		SET name = EXCLUDED.name, sort_order = EXCLUDED.sort_order, date = EXCLUDED.date
	`
	if _, err := s.DB.ExecContext(ctx, query, eventID, section.ID, section.Name, section.Order, section.Date); err != nil {
		return fmt.Errorf("%w: upsert section %s: %v", domain.ErrStorageWrite, section.ID, err)
	}
	return nil
}

func (s *ScheduleStore) GetSection(ctx context.Context, eventID, id string) (*domain.Section, error) {
	query := `
		SELECT event_id, id, name, sort_order, date
		FROM schedule_sections
		WHERE event_id = $1 AND id = $2
	`
	section := &domain.Section{}
	err := s.DB.QueryRowContext(ctx, query, eventID, id).
		Scan(&section.EventID, &section.ID, &section.Name, &section.Order, &section.Date)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return section, nil
}

func (s *ScheduleStore) ListSections(ctx context.Context, eventID string) ([]*domain.Section, error) {
	query := `
		SELECT event_id, id, name, sort_order, date
		FROM schedule_sections
		WHERE event_id = $1
	`
	rows, err := s.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sections := []*domain.Section{}
	for rows.Next() {
		section := &domain.Section{}
		if err := rows.Scan(&section.EventID, &section.ID, &section.Name, &section.Order, &section.Date); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

func (s *ScheduleStore) DeleteSection(ctx context.Context, eventID, id string) error {
	query := `DELETE FROM schedule_sections WHERE event_id = $1 AND id = $2`
	if _, err := s.DB.ExecContext(ctx, query, eventID, id); err != nil {
		return fmt.Errorf("%w: delete section %s: %v", domain.ErrStorageWrite, id, err)
	}
	return nil
}

// ReorderSections updates only the sort_order of the given records, all in
// one transaction. Records absent from the store are skipped, not inserted.
func (s *ScheduleStore) ReorderSections(ctx context.Context, eventID string, ordered []*domain.Section) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin reorder: %v", domain.ErrStorageWrite, err)
	}
	query := `UPDATE schedule_sections SET sort_order = $3 WHERE event_id = $1 AND id = $2`
	for _, section := range ordered {
		if _, err := tx.ExecContext(ctx, query, eventID, section.ID, section.Order); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: reorder section %s: %v", domain.ErrStorageWrite, section.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit reorder: %v", domain.ErrStorageWrite, err)
	}
	return nil
}

// ReplaceSections swaps the event's whole section set in one transaction.
func (s *ScheduleStore) ReplaceSections(ctx context.Context, eventID string, sections []*domain.Section) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin replace: %v", domain.ErrStorageWrite, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_sections WHERE event_id = $1`, eventID); err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: clear sections: %v", domain.ErrStorageWrite, err)
	}
	query := `
		INSERT INTO schedule_sections (event_id, id, name, sort_order, date)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, section := range sections {
		if _, err := tx.ExecContext(ctx, query, eventID, section.ID, section.Name, section.Order, section.Date); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: insert section %s: %v", domain.ErrStorageWrite, section.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit replace: %v", domain.ErrStorageWrite, err)
	}
	return nil
}

func (s *ScheduleStore) UpsertSession(ctx context.Context, eventID string, session *domain.Session) error {
	query := `
		INSERT INTO schedule_sessions (event_id, id, section_id, title, description, start_time, end_time, tags, attendees)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (event_id, id) DO UPDATE
		SET section_id = EXCLUDED.section_id, title = EXCLUDED.title, description = EXCLUDED.description,
		    start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time,
		    tags = EXCLUDED.tags, attendees = EXCLUDED.attendees
	`
	_, err := s.DB.ExecContext(ctx, query,
		eventID, session.ID, session.SectionID, session.Title, session.Description,
		session.StartTime, session.EndTime, pq.Array(session.Tags), pq.Array(session.Attendees))
	if err != nil {
		return fmt.Errorf("%w: upsert session %s: %v", domain.ErrStorageWrite, session.ID, err)
	}
	return nil
}

func (s *ScheduleStore) GetSession(ctx context.Context, eventID, id string) (*domain.Session, error) {
	query := `
		SELECT event_id, id, section_id, title, description, start_time, end_time, tags, attendees
		FROM schedule_sessions
		WHERE event_id = $1 AND id = $2
	`
	session := &domain.Session{}
	err := s.DB.QueryRowContext(ctx, query, eventID, id).Scan(
		&session.EventID, &session.ID, &session.SectionID, &session.Title, &session.Description,
		&session.StartTime, &session.EndTime, pq.Array(&session.Tags), pq.Array(&session.Attendees))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *ScheduleStore) ListSessions(ctx context.Context, eventID string) ([]*domain.Session, error) {
	query := `
		SELECT event_id, id, section_id, title, description, start_time, end_time, tags, attendees
		FROM schedule_sessions
		WHERE event_id = $1
	`
	return s.querySessions(ctx, query, eventID)
}

func (s *ScheduleStore) ListSessionsBySection(ctx context.Context, eventID, sectionID string) ([]*domain.Session, error) {
	query := `
		SELECT event_id, id, section_id, title, description, start_time, end_time, tags, attendees
		FROM schedule_sessions
		WHERE event_id = $1 AND section_id = $2
	`
	return s.querySessions(ctx, query, eventID, sectionID)
}

func (s *ScheduleStore) querySessions(ctx context.Context, query string, args ...any) ([]*domain.Session, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := []*domain.Session{}
	for rows.Next() {
		session := &domain.Session{}
		if err := rows.Scan(
			&session.EventID, &session.ID, &session.SectionID, &session.Title, &session.Description,
			&session.StartTime, &session.EndTime, pq.Array(&session.Tags), pq.Array(&session.Attendees)); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *ScheduleStore) DeleteSession(ctx context.Context, eventID, id string) error {
	query := `DELETE FROM schedule_sessions WHERE event_id = $1 AND id = $2`
	if _, err := s.DB.ExecContext(ctx, query, eventID, id); err != nil {
		return fmt.Errorf("%w: delete session %s: %v", domain.ErrStorageWrite, id, err)
	}
	return nil
}

// ReplaceSessions swaps the event's whole session set in one transaction.
func (s *ScheduleStore) ReplaceSessions(ctx context.Context, eventID string, sessions []*domain.Session) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin replace: %v", domain.ErrStorageWrite, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_sessions WHERE event_id = $1`, eventID); err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: clear sessions: %v", domain.ErrStorageWrite, err)
	}
	query := `
		INSERT INTO schedule_sessions (event_id, id, section_id, title, description, start_time, end_time, tags, attendees)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, session := range sessions {
		if _, err := tx.ExecContext(ctx, query,
			eventID, session.ID, session.SectionID, session.Title, session.Description,
			session.StartTime, session.EndTime, pq.Array(session.Tags), pq.Array(session.Attendees)); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: insert session %s: %v", domain.ErrStorageWrite, session.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit replace: %v", domain.ErrStorageWrite, err)
	}
	return nil
}
