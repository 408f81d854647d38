package binding

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iamdavidjackson/prototype-base/internal/dom"
	"github.com/iamdavidjackson/prototype-base/internal/event"
	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

type key struct {
	target   any
	name     topic.Topic
	owner    scope.Tag
	selector string
}

type entry struct {
	key     key
	kind    Kind
	owner   scope.Subscriber
	handler event.Handler
	seq     uint64

	sub event.Subscription
	ids []dom.ListenerID
}

// Dispatcher owns the binding table. It is safe for concurrent use and
// never holds its lock while running hooks or handlers, so handlers may
// bind and unbind re-entrantly.
type Dispatcher struct {
	mu      sync.Mutex
	entries map[key][]*entry
	seq     uint64
	logger  zerolog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for bind traces.
func WithLogger(l zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		entries: make(map[key][]*entry),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Bind registers h for every whitespace-separated token of eventSpec on
// target, on behalf of s.
//
// Pub/sub targets receive one subscription per token, owned by s. When
// the target implements event.ListenerHook, OnListenerAdded runs right
// after each token is registered and before Bind returns. A hook error
// does not undo the registration: the binding is returned together with
// the error.
//
// DOM targets receive the tokens suffixed with ".<scopeTag>", delegated
// when WithSelector is given. The handler runs with s in its context.
func (d *Dispatcher) Bind(ctx context.Context, s scope.Subscriber, target any, eventSpec string, h event.Handler, opts ...Option) (*Binding, error) {
	kind, names, err := d.prepare("bind", s, target, eventSpec)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, event.ErrNilHandler
	}
	o := applyOptions(opts)

	b := &Binding{
		Target:   target,
		Kind:     kind,
		Events:   names,
		Owner:    s,
		Selector: o.selector,
		Handler:  h,
	}

	d.logger.Debug().
		Str("owner", s.ScopeTag().String()).
		Str("kind", kind.String()).
		Str("events", eventSpec).
		Str("selector", o.selector).
		Msg("bind")

	if kind == KindDOM {
		if err := d.bindDOM(s, target, names, o.selector, h); err != nil {
			return nil, err
		}
		return b, nil
	}

	b.Selector = ""
	hookErr, err := d.bindPubSub(ctx, s, target, names, h)
	if err != nil {
		return nil, err
	}
	return b, hookErr
}

// Unbind removes the handlers s bound for every token of eventSpec on
// target. Other subscribers' handlers are left intact.
//
// For pub/sub targets implementing event.ListenerHook, OnListenerRemoved
// runs after each token is removed. For DOM targets an empty selector
// removes direct and delegated bindings alike.
func (d *Dispatcher) Unbind(ctx context.Context, s scope.Subscriber, target any, eventSpec string, opts ...Option) error {
	kind, names, err := d.prepare("unbind", s, target, eventSpec)
	if err != nil {
		return err
	}
	o := applyOptions(opts)

	d.logger.Debug().
		Str("owner", s.ScopeTag().String()).
		Str("kind", kind.String()).
		Str("events", eventSpec).
		Str("selector", o.selector).
		Msg("unbind")

	var errs []error
	for _, name := range names {
		if err := d.unbindName(ctx, s, target, kind, name, o.selector, o.selector == ""); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// UnbindAll removes every binding owned by s, in the order they were made.
func (d *Dispatcher) UnbindAll(ctx context.Context, s scope.Subscriber) error {
	if s == nil {
		return ErrNilSubscriber
	}
	owned := d.owned(s.ScopeTag())

	seen := make(map[key]bool, len(owned))
	var errs []error
	for _, e := range owned {
		if seen[e.key] {
			continue
		}
		seen[e.key] = true
		if err := d.unbindName(ctx, s, e.key.target, e.kind, e.key.name, e.key.selector, false); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Bindings returns one Binding per registered token owned by s, in the
// order they were made.
func (d *Dispatcher) Bindings(s scope.Subscriber) []Binding {
	owned := d.owned(s.ScopeTag())
	out := make([]Binding, len(owned))
	for i, e := range owned {
		out[i] = Binding{
			Target:   e.key.target,
			Kind:     e.kind,
			Events:   []topic.Topic{e.key.name},
			Owner:    e.owner,
			Selector: e.key.selector,
			Handler:  e.handler,
		}
	}
	return out
}

// Count returns the number of registered tokens across all subscribers.
func (d *Dispatcher) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, list := range d.entries {
		n += len(list)
	}
	return n
}

func (d *Dispatcher) prepare(op string, s scope.Subscriber, target any, eventSpec string) (Kind, []topic.Topic, error) {
	if isNil(target) {
		return 0, nil, &InvalidTargetError{Op: op}
	}
	if s == nil {
		return 0, nil, ErrNilSubscriber
	}
	kind, err := classify(target)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %T: %w", op, target, err)
	}
	if !reflect.TypeOf(target).Comparable() {
		return 0, nil, fmt.Errorf("%s %T: %w", op, target, ErrUnsupportedTarget)
	}
	names := topic.Fields(eventSpec)
	if len(names) == 0 {
		return 0, nil, fmt.Errorf("%s: %w", op, ErrEmptyEventSpec)
	}
	return kind, names, nil
}

// bindPubSub returns the joined hook errors separately from registration
// failures, which are rolled back.
func (d *Dispatcher) bindPubSub(ctx context.Context, s scope.Subscriber, target any, names []topic.Topic, h event.Handler) (hookErr, err error) {
	t := target.(event.Target)
	for _, name := range names {
		if !name.IsValid() {
			return nil, fmt.Errorf("%w: %q", event.ErrInvalidTopic, name)
		}
	}

	var added []*entry
	var hookErrs []error
	for _, name := range names {
		sub, err := t.Subscribe(s, name, h)
		if err != nil {
			for _, e := range added {
				_ = t.Unsubscribe(e.sub)
				d.remove(e)
			}
			return nil, err
		}
		e := d.record(key{target: target, name: name, owner: s.ScopeTag()}, KindPubSub, s, h)
		e.sub = sub
		added = append(added, e)

		if hook, ok := target.(event.ListenerHook); ok {
			if err := hook.OnListenerAdded(ctx, s, name, h); err != nil {
				hookErrs = append(hookErrs, err)
			}
		}
	}
	return errors.Join(hookErrs...), nil
}

func (d *Dispatcher) bindDOM(s scope.Subscriber, target any, names []topic.Topic, selector string, h event.Handler) error {
	el := target.(Element)
	tag := s.ScopeTag()

	physical := make([]string, len(names))
	for i, name := range names {
		physical[i] = namespaced(name, tag)
	}

	wrapped := event.HandlerFunc(func(ctx context.Context, evt any) error {
		return h.Handle(scope.WithSubscriber(ctx, s), evt)
	})
	ids, err := el.On(strings.Join(physical, " "), selector, wrapped)
	if err != nil {
		return err
	}

	for i, name := range names {
		e := d.record(key{target: target, name: name, owner: tag, selector: selector}, KindDOM, s, h)
		if i < len(ids) {
			e.ids = []dom.ListenerID{ids[i]}
		}
	}
	return nil
}

func (d *Dispatcher) unbindName(ctx context.Context, s scope.Subscriber, target any, kind Kind, name topic.Topic, selector string, anySelector bool) error {
	tag := s.ScopeTag()
	removed := d.take(target, name, tag, selector, anySelector)

	switch kind {
	case KindPubSub:
		t := target.(event.Target)
		var errs []error
		for _, e := range removed {
			if err := t.Unsubscribe(e.sub); err != nil && !errors.Is(err, event.ErrSubscriptionNotFound) {
				errs = append(errs, err)
			}
		}
		if hook, ok := target.(event.ListenerHook); ok {
			if err := hook.OnListenerRemoved(ctx, s, name); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)

	default:
		el := target.(Element)
		for _, e := range removed {
			el.Remove(e.ids...)
		}
		// Catch registrations made with the namespaced name outside the
		// dispatcher.
		el.Off(namespaced(name, tag), selector)
		return nil
	}
}

func (d *Dispatcher) record(k key, kind Kind, s scope.Subscriber, h event.Handler) *entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	e := &entry{key: k, kind: kind, owner: s, handler: h, seq: d.seq}
	d.entries[k] = append(d.entries[k], e)
	return e
}

func (d *Dispatcher) remove(e *entry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := d.entries[e.key]
	for i, x := range list {
		if x == e {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(d.entries, e.key)
	} else {
		d.entries[e.key] = list
	}
}

// take removes and returns the entries for (target, name, owner). With
// anySelector every selector matches, otherwise only selector does.
func (d *Dispatcher) take(target any, name topic.Topic, owner scope.Tag, selector string, anySelector bool) []*entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !anySelector {
		k := key{target: target, name: name, owner: owner, selector: selector}
		out := d.entries[k]
		delete(d.entries, k)
		return out
	}

	var out []*entry
	for k, list := range d.entries {
		if k.target == target && k.name == name && k.owner == owner {
			out = append(out, list...)
			delete(d.entries, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (d *Dispatcher) owned(tag scope.Tag) []*entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []*entry
	for k, list := range d.entries {
		if k.owner == tag {
			out = append(out, list...)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
