package experience

import (
	"sync"
	"testing"

	"github.com/agentica-go/agentica/core"
)

// Interface compliance (compile-time assertion)
var _ core.ExperienceStore = (*InMemoryStore)(nil)

func TestInMemoryStore_AppendAndEpisode(t *testing.T) {
	svc := NewInMemoryStore()

	episode, err := svc.Episode("s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(episode) != 0 {
		t.Fatalf("expected empty episode, got %#v", episode)
	}

	transitions := []core.Transition{
		{State: 1, Action: 2, Reward: 10, NextState: 3},
		{State: 3, Action: 1, Reward: 5, NextState: 4},
		{State: 4, Action: 3, Reward: 15, NextState: 0, Done: true},
	}
	for _, tr := range transitions {
		if err := svc.Append("s1", tr); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	episode, err = svc.Episode("s1")
	if err != nil {
		t.Fatalf("episode failed: %v", err)
	}
	if len(episode) != 3 {
		t.Fatalf("expected 3 transitions, got %d", len(episode))
	}
	for i, tr := range transitions {
		if episode[i] != tr {
			t.Fatalf("transition %d mismatch: got %#v want %#v", i, episode[i], tr)
		}
	}

	n, _ := svc.Len("s1")
	if n != 3 {
		t.Fatalf("expected length 3, got %d", n)
	}

	// mutation safety (returned slice is a copy)
	episode[0].Reward = 999
	again, _ := svc.Episode("s1")
	if again[0].Reward != 10 {
		t.Fatalf("expected copy isolation, got %v", again[0].Reward)
	}
}

func TestInMemoryStore_SessionIsolation(t *testing.T) {
	svc := NewInMemoryStore()
	_ = svc.Append("a", core.Transition{State: 0, Action: 1, Reward: 1, NextState: 1})
	_ = svc.Append("b", core.Transition{State: 2, Action: 0, Reward: -1, NextState: 2})

	na, _ := svc.Len("a")
	nb, _ := svc.Len("b")
	if na != 1 || nb != 1 {
		t.Fatalf("expected one transition per session, got %d and %d", na, nb)
	}

	ea, _ := svc.Episode("a")
	if ea[0].State != 0 || ea[0].Reward != 1 {
		t.Fatalf("unexpected episode for session a: %#v", ea)
	}
}

func TestInMemoryStore_Clear(t *testing.T) {
	svc := NewInMemoryStore()
	for i := 0; i < 4; i++ {
		_ = svc.Append("s2", core.Transition{State: i, Action: 0, Reward: float64(i), NextState: i + 1})
	}

	if err := svc.Clear("s2"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	n, _ := svc.Len("s2")
	if n != 0 {
		t.Fatalf("expected empty store after clear, got %d", n)
	}

	// clearing an unknown session is a no-op
	if err := svc.Clear("missing"); err != nil {
		t.Fatalf("clear of unknown session failed: %v", err)
	}
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	svc := NewInMemoryStore()
	wg := sync.WaitGroup{}
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := svc.Append("s4", core.Transition{State: i % 5, Action: i % 4, Reward: 1, NextState: (i + 1) % 5}); err != nil {
				t.Errorf("append error: %v", err)
			}
			if _, err := svc.Episode("s4"); err != nil {
				t.Errorf("episode error: %v", err)
			}
			if _, err := svc.Len("s4"); err != nil {
				t.Errorf("len error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	n, _ := svc.Len("s4")
	if n != 25 {
		t.Fatalf("expected 25 transitions after concurrent appends, got %d", n)
	}
}
