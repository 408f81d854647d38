package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"

	"github.com/iamdavidjackson/prototype-base/internal/event"
)

// ListenerID is the handle returned for every registered listener.
type ListenerID uint64

type listener struct {
	id        ListenerID
	typ       string
	namespace string
	selector  string
	match     cascadia.Selector
	handler   event.Handler
	removed   bool
}

func (l *listener) delegated() bool {
	return l.selector != ""
}

type eventName struct {
	typ       string
	namespace string
}

// parseSpec splits "click.ns keydown" into names.
func parseSpec(spec string) []eventName {
	fields := strings.Fields(spec)
	out := make([]eventName, 0, len(fields))
	for _, f := range fields {
		typ, ns, _ := strings.Cut(f, ".")
		out = append(out, eventName{typ: typ, namespace: ns})
	}
	return out
}

// On registers h for every token of events. A non-empty selector delegates
// the handler to descendants matching it. One ID is returned per token.
func (e *Element) On(events, selector string, h event.Handler) ([]ListenerID, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	names := parseSpec(events)
	if len(names) == 0 {
		return nil, ErrInvalidEventSpec
	}
	for _, n := range names {
		if n.typ == "" {
			return nil, ErrInvalidEventSpec
		}
	}

	var match cascadia.Selector
	if selector != "" {
		var err error
		if match, err = compile(selector); err != nil {
			return nil, err
		}
	}

	d := e.doc
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]ListenerID, 0, len(names))
	for _, n := range names {
		d.nextID++
		e.listeners = append(e.listeners, &listener{
			id:        d.nextID,
			typ:       n.typ,
			namespace: n.namespace,
			selector:  selector,
			match:     match,
			handler:   h,
		})
		ids = append(ids, d.nextID)
	}
	return ids, nil
}

// Off removes listeners matching events and selector. A token without a
// type matches every type in its namespace; a token without a namespace
// matches every namespace. An empty selector matches direct and delegated
// listeners alike. It returns the number removed.
func (e *Element) Off(events, selector string) int {
	names := parseSpec(events)
	if len(names) == 0 {
		return 0
	}

	d := e.doc
	d.mu.Lock()
	defer d.mu.Unlock()

	return e.removeLocked(func(l *listener) bool {
		if selector != "" && l.selector != selector {
			return false
		}
		for _, n := range names {
			if (n.typ == "" || n.typ == l.typ) && (n.namespace == "" || n.namespace == l.namespace) {
				return true
			}
		}
		return false
	})
}

// Remove removes listeners by handle. It returns the number removed.
func (e *Element) Remove(ids ...ListenerID) int {
	if len(ids) == 0 {
		return 0
	}
	want := make(map[ListenerID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	d := e.doc
	d.mu.Lock()
	defer d.mu.Unlock()

	return e.removeLocked(func(l *listener) bool {
		_, ok := want[l.id]
		return ok
	})
}

// ListenerCount returns the number of listeners on the element.
func (e *Element) ListenerCount() int {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return len(e.listeners)
}

func (e *Element) removeLocked(drop func(*listener) bool) int {
	kept := e.listeners[:0]
	removed := 0
	for _, l := range e.listeners {
		if drop(l) {
			l.removed = true
			removed++
			continue
		}
		kept = append(kept, l)
	}
	for i := len(kept); i < len(e.listeners); i++ {
		e.listeners[i] = nil
	}
	e.listeners = kept
	return removed
}

func (e *Element) snapshot(typ string) []*listener {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	var out []*listener
	for _, l := range e.listeners {
		if l.typ == typ {
			out = append(out, l)
		}
	}
	return out
}

func (d *Document) isRemoved(l *listener) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return l.removed
}
