package event

import (
	"sort"
	"sync"

	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

// Registry indexes subscriptions by pattern, by ID and by owner.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	subs    map[topic.Topic][]*subscription
	byID    map[string]*subscription
	byOwner map[scope.Tag]map[string]*subscription
	matcher *topic.Matcher
	seq     uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		subs:    make(map[topic.Topic][]*subscription),
		byID:    make(map[string]*subscription),
		byOwner: make(map[scope.Tag]map[string]*subscription),
		matcher: topic.NewMatcher(),
	}
}

// Add registers sub. Within a pattern, subscriptions are kept in priority
// order, then in registration order.
func (r *Registry) Add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	sub.seq = r.seq

	subs := append(r.subs[sub.topic], sub)
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].config.Priority < subs[j].config.Priority
	})
	r.subs[sub.topic] = subs
	r.byID[sub.id] = sub

	tag := sub.owner.ScopeTag()
	owned := r.byOwner[tag]
	if owned == nil {
		owned = make(map[string]*subscription)
		r.byOwner[tag] = owned
	}
	owned[sub.id] = sub

	r.matcher.Add(sub.topic)
}

// Remove unregisters a subscription by ID.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(id)
}

func (r *Registry) removeLocked(id string) bool {
	sub, ok := r.byID[id]
	if !ok {
		return false
	}

	subs := r.subs[sub.topic]
	for i, s := range subs {
		if s.id == id {
			r.subs[sub.topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(r.subs[sub.topic]) == 0 {
		delete(r.subs, sub.topic)
		r.matcher.Remove(sub.topic)
	}

	tag := sub.owner.ScopeTag()
	delete(r.byOwner[tag], id)
	if len(r.byOwner[tag]) == 0 {
		delete(r.byOwner, tag)
	}

	delete(r.byID, id)
	return true
}

// Get returns a subscription by ID.
func (r *Registry) Get(id string) (*subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.byID[id]
	return sub, ok
}

// Match returns a snapshot of the active subscriptions whose pattern
// matches eventTopic, in priority then registration order.
func (r *Registry) Match(eventTopic topic.Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*subscription
	for _, pattern := range r.matcher.Match(eventTopic) {
		for _, sub := range r.subs[pattern] {
			if sub.IsActive() {
				out = append(out, sub)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].config.Priority != out[j].config.Priority {
			return out[i].config.Priority < out[j].config.Priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Owned returns the subscriptions owned by tag, in registration order.
func (r *Registry) Owned(tag scope.Tag) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := r.byOwner[tag]
	if len(owned) == 0 {
		return nil
	}
	out := make([]*subscription, 0, len(owned))
	for _, sub := range owned {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Count returns the number of subscriptions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// CountByTopic returns the number of subscriptions registered with
// exactly this pattern.
func (r *Registry) CountByTopic(pattern topic.Topic) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[pattern])
}

// CountActive returns the number of active subscriptions.
func (r *Registry) CountActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, sub := range r.byID {
		if sub.IsActive() {
			n++
		}
	}
	return n
}

// Clear removes every subscription, cancelling each.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.byID {
		sub.Cancel()
	}
	r.subs = make(map[topic.Topic][]*subscription)
	r.byID = make(map[string]*subscription)
	r.byOwner = make(map[scope.Tag]map[string]*subscription)
	r.matcher.Clear()
}
