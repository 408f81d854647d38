package topic

import (
	"sort"
	"sync"
	"testing"
)

func sorted(ts []Topic) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	sort.Strings(out)
	return out
}

func TestMatcher_AddHasRemove(t *testing.T) {
	m := NewMatcher()
	m.Add("small.entry")
	m.Add("small.entry")
	m.Add("")

	if m.Count() != 1 {
		t.Fatalf("Count = %d, want 1", m.Count())
	}
	if !m.Has("small.entry") {
		t.Error("expected small.entry to be registered")
	}

	m.Remove("small.entry")
	m.Remove("never.added")
	if m.Has("small.entry") {
		t.Error("expected small.entry to be removed")
	}
	if m.Count() != 0 {
		t.Errorf("Count = %d, want 0", m.Count())
	}
}

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher()
	for _, p := range []Topic{"large.entry", "large.*", "*.entry", "**", "small.exit"} {
		m.Add(p)
	}

	got := sorted(m.Match("large.entry"))
	want := []string{"*.entry", "**", "large.*", "large.entry"}
	if len(got) != len(want) {
		t.Fatalf("Match = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Match[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := m.Match(""); got != nil {
		t.Errorf("Match(\"\") = %v, want nil", got)
	}
}

func TestMatcher_MultiWildcardReportedOnce(t *testing.T) {
	m := NewMatcher()
	m.Add("a.**")

	if got := m.Match("a.b.c.d"); len(got) != 1 {
		t.Errorf("Match = %v, want exactly one pattern", got)
	}
	if got := m.Match("a"); len(got) != 1 {
		t.Errorf("Match(a) = %v, want exactly one pattern", got)
	}
}

func TestMatcher_Clear(t *testing.T) {
	m := NewMatcher()
	m.Add("a.b")
	m.Clear()
	if m.Count() != 0 {
		t.Errorf("Count after Clear = %d", m.Count())
	}
}

func TestMatcher_Concurrent(t *testing.T) {
	m := NewMatcher()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Add("medium.entry")
				m.Match("medium.entry")
				m.Remove("medium.entry")
			}
		}()
	}
	wg.Wait()
}
