package ticket_test

import (
	"context"
	"sync"
	"testing"

	"github.com/k1networth/itdesk/internal/ticket"
)

func TestInMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T, opts ...ticket.Option) ticket.Store {
		return ticket.NewInMemoryStore(opts...)
	})
}

func TestInMemoryStoreListAllIsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := ticket.NewInMemoryStore()

	id, err := s.Create(ctx, "Hal", "Pod bay doors", ticket.PriorityHigh)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	snap, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if ok, _ := s.CloseTicket(ctx, id); !ok {
		t.Fatalf("expected close to succeed")
	}
	if snap[0].Status != ticket.StatusOpen {
		t.Fatalf("expected earlier snapshot to stay Open, got %q", snap[0].Status)
	}
}

func TestInMemoryStoreConcurrentCloseSucceedsOnce(t *testing.T) {
	ctx := context.Background()
	s := ticket.NewInMemoryStore()

	id, err := s.Create(ctx, "Ivy", "Shared drive", ticket.PriorityMedium)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	const workers = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.CloseTicket(ctx, id)
			if err != nil {
				t.Errorf("close: %v", err)
				return
			}
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one successful close, got %d", wins)
	}
}
