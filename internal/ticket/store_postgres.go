package ticket

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore keeps the tickets table contract on PostgreSQL. Timestamps stay
// TEXT so rows read back exactly as they do from SQLite.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresStore(ctx context.Context, db *sql.DB, opts ...Option) (*PostgresStore, error) {
	o := buildOptions(opts)
	s := &PostgresStore{db: db, now: o.now}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS tickets (
    id BIGSERIAL PRIMARY KEY,
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

func (s *PostgresStore) Create(ctx context.Context, userName, issue string, priority Priority) (int64, error) {
	if err := validateNew(userName, issue, priority); err != nil {
		return 0, err
	}

	const q = `
INSERT INTO tickets (user_name, issue, priority, status, created_at, resolved_at)
VALUES ($1, $2, $3, $4, $5, '')
RETURNING id;
`
	var id int64
	err := s.db.QueryRowContext(ctx, q,
		userName, issue, string(priority), string(StatusOpen), formatTime(s.now()),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ticket store: create: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Ticket, error) {
	return listAll(ctx, s.db)
}

func (s *PostgresStore) CloseTicket(ctx context.Context, id int64) (bool, error) {
	const q = `
UPDATE tickets
SET status = $1, resolved_at = $2
WHERE id = $3 AND status = $4;
`
	res, err := s.db.ExecContext(ctx, q, string(StatusClosed), formatTime(s.now()), id, string(StatusOpen))
	if err != nil {
		return false, fmt.Errorf("ticket store: close: %w", err)
	}
	return affectedOne(res)
}

func (s *PostgresStore) Summary(ctx context.Context) (Summary, error) {
	return summary(ctx, s.db)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
