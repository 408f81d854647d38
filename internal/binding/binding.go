package binding

import (
	"github.com/iamdavidjackson/prototype-base/internal/dom"
	"github.com/iamdavidjackson/prototype-base/internal/event"
	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

// Element is the DOM capability: namespaced listeners with optional
// delegation. *dom.Element implements it.
type Element interface {
	On(events, selector string, h event.Handler) ([]dom.ListenerID, error)
	Off(events, selector string) int
	Remove(ids ...dom.ListenerID) int
}

var _ Element = (*dom.Element)(nil)

// Kind is the capability a target was bound through.
type Kind uint8

const (
	KindPubSub Kind = iota + 1
	KindDOM
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPubSub:
		return "pubsub"
	case KindDOM:
		return "dom"
	default:
		return "unknown"
	}
}

// Binding describes one Bind call.
type Binding struct {
	Target   any
	Kind     Kind
	Events   []topic.Topic
	Owner    scope.Subscriber
	Selector string
	Handler  event.Handler
}

// Option configures Bind and Unbind.
type Option func(*options)

type options struct {
	selector string
}

// WithSelector delegates a DOM binding to descendants matching selector.
// It is ignored for pub/sub targets.
func WithSelector(selector string) Option {
	return func(o *options) {
		o.selector = selector
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// classify returns the capability target is bound through. Pub/sub wins
// when a target offers both.
func classify(target any) (Kind, error) {
	switch target.(type) {
	case event.Target:
		return KindPubSub, nil
	case Element:
		return KindDOM, nil
	default:
		return 0, ErrUnsupportedTarget
	}
}

// namespaced appends ".<tag>" to name.
func namespaced(name topic.Topic, tag scope.Tag) string {
	return name.String() + "." + tag.String()
}
