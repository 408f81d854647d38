package event

import (
	"context"
	"sync"
	"testing"

	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

func noop() Handler {
	return HandlerFunc(func(context.Context, any) error { return nil })
}

func TestRegistry_AddRemove(t *testing.T) {
	r := NewRegistry()
	owner := scope.NewIdentity()

	r.Add(newSubscription("a", "small.entry", owner, noop()))
	r.Add(newSubscription("b", "small.entry", owner, noop()))
	r.Add(newSubscription("c", "large.exit", owner, noop()))

	if r.Count() != 3 {
		t.Fatalf("Count = %d, want 3", r.Count())
	}
	if r.CountByTopic("small.entry") != 2 {
		t.Errorf("CountByTopic = %d, want 2", r.CountByTopic("small.entry"))
	}

	if !r.Remove("a") {
		t.Error("Remove(a) = false")
	}
	if r.Remove("a") {
		t.Error("second Remove(a) = true")
	}
	if _, ok := r.Get("a"); ok {
		t.Error("Get(a) after remove")
	}
	if len(r.Owned(owner.ScopeTag())) != 2 {
		t.Errorf("Owned = %d, want 2", len(r.Owned(owner.ScopeTag())))
	}
}

func TestRegistry_MatchOrder(t *testing.T) {
	r := NewRegistry()
	owner := scope.NewIdentity()

	r.Add(newSubscription("normal-1", "large.entry", owner, noop()))
	r.Add(newSubscription("low", "large.*", owner, noop(), WithPriority(PriorityLow)))
	r.Add(newSubscription("critical", "**", owner, noop(), WithPriority(PriorityCritical)))
	r.Add(newSubscription("normal-2", "*.entry", owner, noop()))

	got := r.Match("large.entry")
	want := []string{"critical", "normal-1", "normal-2", "low"}
	if len(got) != len(want) {
		t.Fatalf("Match returned %d subs, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID() != id {
			t.Errorf("Match[%d] = %s, want %s", i, got[i].ID(), id)
		}
	}
}

func TestRegistry_MatchSkipsInactive(t *testing.T) {
	r := NewRegistry()
	owner := scope.NewIdentity()
	paused := newSubscription("p", "medium.exit", owner, noop())
	r.Add(paused)
	r.Add(newSubscription("a", "medium.exit", owner, noop()))
	paused.Pause()

	if got := r.Match("medium.exit"); len(got) != 1 || got[0].ID() != "a" {
		t.Errorf("Match = %v", got)
	}
	if r.CountActive() != 1 {
		t.Errorf("CountActive = %d", r.CountActive())
	}
}

func TestRegistry_OwnedSeparatesSubscribers(t *testing.T) {
	r := NewRegistry()
	s1, s2 := scope.NewIdentity(), scope.NewIdentity()
	r.Add(newSubscription("1", "click", s1, noop()))
	r.Add(newSubscription("2", "click", s2, noop()))

	if got := r.Owned(s1.ScopeTag()); len(got) != 1 || got[0].ID() != "1" {
		t.Errorf("Owned(s1) = %v", got)
	}
	r.Remove("1")
	if got := r.Owned(s1.ScopeTag()); got != nil {
		t.Errorf("Owned(s1) after remove = %v", got)
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry()
	sub := newSubscription("a", "x", scope.NewIdentity(), noop())
	r.Add(sub)
	r.Clear()

	if r.Count() != 0 {
		t.Errorf("Count after Clear = %d", r.Count())
	}
	if !sub.IsCancelled() {
		t.Error("Clear should cancel subscriptions")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	owner := scope.NewIdentity()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := generateID()
				r.Add(newSubscription(id, "small.entry", owner, noop()))
				r.Match("small.entry")
				r.Remove(id)
			}
		}()
	}
	wg.Wait()
	if r.Count() != 0 {
		t.Errorf("Count = %d, want 0", r.Count())
	}
}
