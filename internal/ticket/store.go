package ticket

import (
	"context"
	"sync"
	"time"
)

// Store owns every ticket row. Implementations must make CloseTicket a single
// atomic Open->Closed transition: it reports true only for the call that
// performed it, and false both for unknown ids and for tickets already closed.
type Store interface {
	Create(ctx context.Context, userName, issue string, priority Priority) (int64, error)
	ListAll(ctx context.Context) ([]Ticket, error)
	CloseTicket(ctx context.Context, id int64) (bool, error)
	Summary(ctx context.Context) (Summary, error)
	Ping(ctx context.Context) error
	Close() error
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for created_at and resolved_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

type InMemoryStore struct {
	mu     sync.RWMutex
	now    func() time.Time
	lastID int64
	rows   []Ticket
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	o := buildOptions(opts)
	return &InMemoryStore{now: o.now}
}

func (s *InMemoryStore) Create(ctx context.Context, userName, issue string, priority Priority) (int64, error) {
	_ = ctx

	if err := validateNew(userName, issue, priority); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	s.rows = append(s.rows, Ticket{
		ID:         s.lastID,
		UserName:   userName,
		Issue:      issue,
		Priority:   priority,
		Status:     StatusOpen,
		CreatedAt:  formatTime(s.now()),
		ResolvedAt: "",
	})
	return s.lastID, nil
}

func (s *InMemoryStore) ListAll(ctx context.Context) ([]Ticket, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Ticket, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *InMemoryStore) CloseTicket(ctx context.Context, id int64) (bool, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	// ids are dense and start at 1, so the row index is id-1.
	if id < 1 || id > int64(len(s.rows)) {
		return false, nil
	}
	t := &s.rows[id-1]
	if t.Status != StatusOpen {
		return false, nil
	}
	t.Status = StatusClosed
	t.ResolvedAt = formatTime(s.now())
	return true, nil
}

func (s *InMemoryStore) Summary(ctx context.Context) (Summary, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum Summary
	for _, t := range s.rows {
		switch t.Status {
		case StatusOpen:
			sum.Open++
		case StatusClosed:
			sum.Closed++
		}
	}
	return sum, nil
}

func (s *InMemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *InMemoryStore) Close() error { return nil }
