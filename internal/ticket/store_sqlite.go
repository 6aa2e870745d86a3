package ticket

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStore keeps tickets in a local SQLite file (service_desk.db by default).
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore takes ownership of db and creates the tickets table if needed.
func NewSQLiteStore(ctx context.Context, db *sql.DB, opts ...Option) (*SQLiteStore, error) {
	o := buildOptions(opts)
	s := &SQLiteStore{db: db, now: o.now}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS tickets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_name TEXT NOT NULL,
    issue TEXT NOT NULL,
    priority TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at TEXT,
    resolved_at TEXT
);
`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ticket store: migrate: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Create(ctx context.Context, userName, issue string, priority Priority) (int64, error) {
	if err := validateNew(userName, issue, priority); err != nil {
		return 0, err
	}

	const q = `
INSERT INTO tickets (user_name, issue, priority, status, created_at, resolved_at)
VALUES (?, ?, ?, ?, ?, '');
`
	res, err := s.db.ExecContext(ctx, q, userName, issue, string(priority), string(StatusOpen), formatTime(s.now()))
	if err != nil {
		return 0, fmt.Errorf("ticket store: create: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ticket store: create: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]Ticket, error) {
	return listAll(ctx, s.db)
}

func (s *SQLiteStore) CloseTicket(ctx context.Context, id int64) (bool, error) {
	const q = `
UPDATE tickets
SET status = ?, resolved_at = ?
WHERE id = ? AND status = ?;
`
	res, err := s.db.ExecContext(ctx, q, string(StatusClosed), formatTime(s.now()), id, string(StatusOpen))
	if err != nil {
		return false, fmt.Errorf("ticket store: close: %w", err)
	}
	return affectedOne(res)
}

func (s *SQLiteStore) Summary(ctx context.Context) (Summary, error) {
	return summary(ctx, s.db)
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
