package topic

import "sync"

// Matcher finds the registered patterns that match a concrete topic.
// It is safe for concurrent use.
type Matcher struct {
	mu   sync.RWMutex
	root *node
}

type node struct {
	children map[string]*node
	patterns []Topic
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// NewMatcher creates an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{root: newNode()}
}

// Add registers a pattern. Adding a pattern twice is a no-op.
func (m *Matcher) Add(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.root
	for _, seg := range pattern.Segments() {
		child := n.children[seg]
		if child == nil {
			child = newNode()
			n.children[seg] = child
		}
		n = child
	}
	for _, p := range n.patterns {
		if p == pattern {
			return
		}
	}
	n.patterns = append(n.patterns, pattern)
}

// Remove unregisters a pattern.
func (m *Matcher) Remove(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.root
	for _, seg := range pattern.Segments() {
		if n = n.children[seg]; n == nil {
			return
		}
	}
	for i, p := range n.patterns {
		if p == pattern {
			n.patterns = append(n.patterns[:i], n.patterns[i+1:]...)
			return
		}
	}
}

// Has reports whether pattern is registered.
func (m *Matcher) Has(pattern Topic) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := m.root
	for _, seg := range pattern.Segments() {
		if n = n.children[seg]; n == nil {
			return false
		}
	}
	for _, p := range n.patterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// Match returns every registered pattern that matches eventTopic.
// A pattern is reported at most once.
func (m *Matcher) Match(eventTopic Topic) []Topic {
	if eventTopic == "" {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[Topic]struct{})
	var out []Topic
	collect := func(ps []Topic) {
		for _, p := range ps {
			if _, dup := seen[p]; !dup {
				seen[p] = struct{}{}
				out = append(out, p)
			}
		}
	}
	walk(m.root, eventTopic.Segments(), 0, collect)
	return out
}

func walk(n *node, segs []string, depth int, collect func([]Topic)) {
	if depth == len(segs) {
		collect(n.patterns)
		if multi := n.children[WildcardMulti]; multi != nil {
			walk(multi, segs, depth, collect)
		}
		return
	}
	if child := n.children[segs[depth]]; child != nil {
		walk(child, segs, depth+1, collect)
	}
	if single := n.children[WildcardSingle]; single != nil {
		walk(single, segs, depth+1, collect)
	}
	if multi := n.children[WildcardMulti]; multi != nil {
		for i := depth; i <= len(segs); i++ {
			walk(multi, segs, i, collect)
		}
	}
}

// Count returns the number of registered patterns.
func (m *Matcher) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count func(*node) int
	count = func(n *node) int {
		c := len(n.patterns)
		for _, child := range n.children {
			c += count(child)
		}
		return c
	}
	return count(m.root)
}

// Clear removes all patterns.
func (m *Matcher) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root = newNode()
}
