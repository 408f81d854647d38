package dom

import (
	"context"
	"errors"
	"fmt"
)

// Event is what DOM listeners receive.
type Event struct {
	Type string

	// Target is the element the event was dispatched to.
	Target *Element

	// CurrentTarget is the element the running listener is attached to,
	// or for delegated listeners the descendant that matched the selector.
	CurrentTarget *Element

	// Delegate is the element the running listener is attached to.
	Delegate *Element

	Detail any

	stopped   bool
	immediate bool
}

// StopPropagation keeps the event from bubbling further. Listeners still
// pending on the current element run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// IsPropagationStopped reports whether StopPropagation was called.
func (e *Event) IsPropagationStopped() bool {
	return e.stopped
}

// StopImmediatePropagation stops bubbling and skips the listeners still
// pending on the current element.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.immediate = true
}

// IsImmediatePropagationStopped reports whether StopImmediatePropagation
// was called.
func (e *Event) IsImmediatePropagationStopped() bool {
	return e.immediate
}

// Dispatch fires an event of type typ at target and bubbles it to the
// root. At each element on the path, delegated listeners run first for
// every matching descendant on the path, deepest first, then the element's
// direct listeners. StopPropagation takes effect once the current matched
// element's listeners have run. Listener errors are joined.
func (d *Document) Dispatch(ctx context.Context, target *Element, typ string, detail any) error {
	if target == nil || target.doc != d {
		return ErrForeignElement
	}
	if typ == "" {
		return fmt.Errorf("%w: empty event type", ErrInvalidEventSpec)
	}

	var path []*Element
	for el := target; el != nil; el = el.Parent() {
		path = append(path, el)
	}

	evt := &Event{Type: typ, Target: target, Detail: detail}
	var errs []error
	run := func(l *listener, current, delegate *Element) error {
		if d.isRemoved(l) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		evt.CurrentTarget = current
		evt.Delegate = delegate
		if err := l.handler.Handle(ctx, evt); err != nil {
			errs = append(errs, err)
		}
		return nil
	}

	for i, cur := range path {
		listeners := cur.snapshot(typ)
		if len(listeners) == 0 {
			continue
		}

		for j := 0; j < i && !evt.stopped; j++ {
			matched := path[j]
			for _, l := range listeners {
				if evt.immediate {
					break
				}
				if !l.delegated() || !l.match.Match(matched.node) {
					continue
				}
				if err := run(l, matched, cur); err != nil {
					return errors.Join(append(errs, err)...)
				}
			}
		}

		if evt.stopped {
			break
		}
		for _, l := range listeners {
			if evt.immediate {
				break
			}
			if l.delegated() {
				continue
			}
			if err := run(l, cur, cur); err != nil {
				return errors.Join(append(errs, err)...)
			}
		}

		if evt.stopped {
			break
		}
	}
	return errors.Join(errs...)
}

// Trigger dispatches an event at e.
func (e *Element) Trigger(ctx context.Context, typ string, detail any) error {
	return e.doc.Dispatch(ctx, e, typ, detail)
}
