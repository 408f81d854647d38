package media

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// DefaultPixelsPerEm is the root font size used to resolve em and rem.
const DefaultPixelsPerEm = 16

// Host is the media-query capability a viewport offers.
type Host interface {
	// MatchMedia returns a live list for query.
	MatchMedia(query string) (*QueryList, error)

	// SupportsMediaQueries reports whether MatchMedia can be used.
	SupportsMediaQueries() bool
}

// Change is delivered to QueryList listeners when the match state flips.
type Change struct {
	Query   string
	Matches bool
}

// ListenerFunc observes match changes.
type ListenerFunc func(ctx context.Context, c Change) error

// ListenerID identifies a registered listener.
type ListenerID uint64

// Viewport is a host-driven width. It is safe for concurrent use, but
// listeners run on the goroutine that calls Resize.
type Viewport struct {
	mu        sync.Mutex
	width     int
	pxPerEm   float64
	supported bool

	lists  []*QueryList
	nextID ListenerID
}

var _ Host = (*Viewport)(nil)

// Option configures a Viewport.
type Option func(*Viewport)

// WithWidth sets the initial width in pixels.
func WithWidth(px int) Option {
	return func(v *Viewport) {
		if px >= 0 {
			v.width = px
		}
	}
}

// WithPixelsPerEm sets the root font size.
func WithPixelsPerEm(px float64) Option {
	return func(v *Viewport) {
		if px > 0 {
			v.pxPerEm = px
		}
	}
}

// WithSupport sets whether the viewport offers live media queries.
func WithSupport(supported bool) Option {
	return func(v *Viewport) {
		v.supported = supported
	}
}

// NewViewport creates a supported viewport 0px wide.
func NewViewport(opts ...Option) *Viewport {
	v := &Viewport{
		pxPerEm:   DefaultPixelsPerEm,
		supported: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Width returns the current width in pixels.
func (v *Viewport) Width() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width
}

// PixelsPerEm returns the root font size.
func (v *Viewport) PixelsPerEm() float64 {
	return v.pxPerEm
}

// SupportsMediaQueries reports whether MatchMedia is available.
func (v *Viewport) SupportsMediaQueries() bool {
	return v.supported
}

// Evaluate reports whether q matches the current width.
func (v *Viewport) Evaluate(q Query) bool {
	return q.Matches(float64(v.Width()), v.pxPerEm)
}

// MatchMedia parses query and returns a list tracking it. Lists stay
// registered for the viewport's lifetime.
func (v *Viewport) MatchMedia(query string) (*QueryList, error) {
	if !v.supported {
		return nil, ErrUnsupported
	}
	q, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	ql := &QueryList{
		viewport: v,
		query:    q,
		matches:  q.Matches(float64(v.width), v.pxPerEm),
	}
	v.lists = append(v.lists, ql)
	return ql, nil
}

type pendingChange struct {
	list   *QueryList
	change Change
}

// Resize sets the width and notifies every list whose match state
// flipped, in list creation order and listener registration order. The
// new width is visible to listeners. Listener errors are joined.
//
// A list's new state is recorded only when its listeners are about to be
// notified. If ctx is cancelled first, the remaining lists keep their old
// state and a later Resize delivers the change.
func (v *Viewport) Resize(ctx context.Context, px int) error {
	if px < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, px)
	}

	v.mu.Lock()
	v.width = px
	var pending []pendingChange
	for _, ql := range v.lists {
		now := ql.query.Matches(float64(px), v.pxPerEm)
		if now == ql.matches {
			continue
		}
		pending = append(pending, pendingChange{
			list:   ql,
			change: Change{Query: ql.query.Text, Matches: now},
		})
	}
	v.mu.Unlock()

	var errs []error
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		listeners, ok := v.commit(p)
		if !ok {
			continue
		}
		for _, l := range listeners {
			if !p.list.hasListener(l.id) {
				continue
			}
			if err := l.fn(ctx, p.change); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// commit records p's new state and returns the listeners to notify. It
// reports false if the state was already recorded.
func (v *Viewport) commit(p pendingChange) ([]listener, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if p.list.matches == p.change.Matches {
		return nil, false
	}
	p.list.matches = p.change.Matches
	return append([]listener(nil), p.list.listeners...), true
}

type listener struct {
	id ListenerID
	fn ListenerFunc
}

// QueryList tracks one media query against a viewport.
type QueryList struct {
	viewport  *Viewport
	query     Query
	matches   bool
	listeners []listener
}

// Media returns the query text.
func (q *QueryList) Media() string {
	return q.query.Text
}

// Query returns the parsed query.
func (q *QueryList) Query() Query {
	return q.query
}

// Matches evaluates the query against the viewport's current width.
func (q *QueryList) Matches() bool {
	return q.viewport.Evaluate(q.query)
}

// AddListener registers fn for match changes.
func (q *QueryList) AddListener(fn ListenerFunc) ListenerID {
	v := q.viewport
	v.mu.Lock()
	defer v.mu.Unlock()

	v.nextID++
	q.listeners = append(q.listeners, listener{id: v.nextID, fn: fn})
	return v.nextID
}

// RemoveListener unregisters a listener. It reports whether one was removed.
func (q *QueryList) RemoveListener(id ListenerID) bool {
	v := q.viewport
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, l := range q.listeners {
		if l.id == id {
			q.listeners = append(q.listeners[:i], q.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (q *QueryList) hasListener(id ListenerID) bool {
	v := q.viewport
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, l := range q.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}
