package ticket_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/k1networth/itdesk/internal/ticket"
)

// fakeClock advances one second per reading so created_at and resolved_at
// differ deterministically.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(time.Second)
	return now
}

type storeFactory func(t *testing.T, opts ...ticket.Option) ticket.Store

// runStoreSuite checks the lifecycle contract every backend must satisfy.
func runStoreSuite(t *testing.T, newStore storeFactory) {
	t.Run("CreateThenListAll", func(t *testing.T) {
		ctx := context.Background()
		clock := newFakeClock()
		s := newStore(t, ticket.WithClock(clock.Now))

		id, err := s.Create(ctx, "Alice", "Laptop won't boot", ticket.PriorityHigh)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if id != 1 {
			t.Fatalf("expected first id 1, got %d", id)
		}

		got, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 ticket, got %d", len(got))
		}
		want := ticket.Ticket{
			ID:         1,
			UserName:   "Alice",
			Issue:      "Laptop won't boot",
			Priority:   ticket.PriorityHigh,
			Status:     ticket.StatusOpen,
			CreatedAt:  "2024-03-01 09:30:00",
			ResolvedAt: "",
		}
		if got[0] != want {
			t.Fatalf("expected %+v, got %+v", want, got[0])
		}
	})

	t.Run("IDsStrictlyIncrease", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		var last int64
		for i := 0; i < 5; i++ {
			id, err := s.Create(ctx, "Bob", "VPN drops", ticket.PriorityMedium)
			if err != nil {
				t.Fatalf("create #%d: %v", i, err)
			}
			if id <= last {
				t.Fatalf("expected id > %d, got %d", last, id)
			}
			last = id
		}

		got, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("expected 5 tickets, got %d", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].ID <= got[i-1].ID {
				t.Fatalf("expected ascending ids, got %d after %d", got[i].ID, got[i-1].ID)
			}
		}
	})

	t.Run("InputsPreservedVerbatim", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		if _, err := s.Create(ctx, "  Carol ", "Printer jam\non floor 3", ticket.PriorityLow); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if got[0].UserName != "  Carol " {
			t.Fatalf("expected user_name preserved, got %q", got[0].UserName)
		}
		if got[0].Issue != "Printer jam\non floor 3" {
			t.Fatalf("expected issue preserved, got %q", got[0].Issue)
		}
	})

	t.Run("DuplicatesAllowed", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		a, err := s.Create(ctx, "Dan", "Monitor flickers", ticket.PriorityLow)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		b, err := s.Create(ctx, "Dan", "Monitor flickers", ticket.PriorityLow)
		if err != nil {
			t.Fatalf("create duplicate: %v", err)
		}
		if a == b {
			t.Fatalf("expected distinct ids, got %d twice", a)
		}
	})

	t.Run("CreateRejectsInvalidInput", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		cases := []struct {
			name     string
			user     string
			issue    string
			priority ticket.Priority
		}{
			{"empty user", "", "Issue", ticket.PriorityLow},
			{"blank user", "   ", "Issue", ticket.PriorityLow},
			{"blank issue", "Eve", " \t\n", ticket.PriorityLow},
			{"bad priority", "Eve", "Issue", ticket.Priority("Urgent")},
		}
		for _, tc := range cases {
			_, err := s.Create(ctx, tc.user, tc.issue, tc.priority)
			var verr ticket.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
			}
		}

		got, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no rows after rejected creates, got %d", len(got))
		}
	})

	t.Run("CloseOpenTicket", func(t *testing.T) {
		ctx := context.Background()
		clock := newFakeClock()
		s := newStore(t, ticket.WithClock(clock.Now))

		id, err := s.Create(ctx, "Alice", "Laptop won't boot", ticket.PriorityHigh)
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		ok, err := s.CloseTicket(ctx, id)
		if err != nil {
			t.Fatalf("close: %v", err)
		}
		if !ok {
			t.Fatalf("expected close to succeed")
		}

		got, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if got[0].Status != ticket.StatusClosed {
			t.Fatalf("expected status %q, got %q", ticket.StatusClosed, got[0].Status)
		}
		if got[0].ResolvedAt != "2024-03-01 09:30:01" {
			t.Fatalf("expected resolved_at %q, got %q", "2024-03-01 09:30:01", got[0].ResolvedAt)
		}
		if got[0].ResolvedAt < got[0].CreatedAt {
			t.Fatalf("expected resolved_at >= created_at, got %q < %q", got[0].ResolvedAt, got[0].CreatedAt)
		}
	})

	t.Run("SecondCloseIsRejected", func(t *testing.T) {
		ctx := context.Background()
		clock := newFakeClock()
		s := newStore(t, ticket.WithClock(clock.Now))

		id, err := s.Create(ctx, "Frank", "Email bounce", ticket.PriorityMedium)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if ok, err := s.CloseTicket(ctx, id); err != nil || !ok {
			t.Fatalf("first close: ok=%v err=%v", ok, err)
		}
		before, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		ok, err := s.CloseTicket(ctx, id)
		if err != nil {
			t.Fatalf("second close: %v", err)
		}
		if ok {
			t.Fatalf("expected second close to return false")
		}

		after, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if after[0] != before[0] {
			t.Fatalf("expected record unchanged, before=%+v after=%+v", before[0], after[0])
		}
	})

	t.Run("CloseUnknownID", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		for _, id := range []int64{999, 0, -1} {
			ok, err := s.CloseTicket(ctx, id)
			if err != nil {
				t.Fatalf("close %d: %v", id, err)
			}
			if ok {
				t.Fatalf("expected close(%d) on empty store to return false", id)
			}
		}

		if _, err := s.Create(ctx, "Gina", "Keyboard", ticket.PriorityLow); err != nil {
			t.Fatalf("create: %v", err)
		}
		before, _ := s.ListAll(ctx)
		if ok, _ := s.CloseTicket(ctx, 999); ok {
			t.Fatalf("expected close(999) to return false")
		}
		after, _ := s.ListAll(ctx)
		if len(after) != 1 || after[0] != before[0] {
			t.Fatalf("expected list unaffected, before=%+v after=%+v", before, after)
		}
	})

	t.Run("ListAllEmpty", func(t *testing.T) {
		s := newStore(t)

		got, err := s.ListAll(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("Summary", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		for _, u := range []string{"a", "b", "c"} {
			if _, err := s.Create(ctx, u, "issue", ticket.PriorityLow); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
		if ok, err := s.CloseTicket(ctx, 2); err != nil || !ok {
			t.Fatalf("close: ok=%v err=%v", ok, err)
		}

		sum, err := s.Summary(ctx)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if sum != (ticket.Summary{Open: 2, Closed: 1}) {
			t.Fatalf("expected open=2 closed=1, got %+v", sum)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		if err := s.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
