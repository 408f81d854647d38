package event

import (
	"context"

	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

// Priority orders handler execution. Lower values run first.
type Priority int

const (
	PriorityCritical Priority = 0
	PriorityHigh     Priority = 100
	PriorityNormal   Priority = 200
	PriorityLow      Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Handler handles an event.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// PayloadHandler adapts a typed payload function to Handler. Envelopes
// whose payload is not a T are ignored.
func PayloadHandler[T any](fn func(ctx context.Context, payload T) error) Handler {
	return HandlerFunc(func(ctx context.Context, evt any) error {
		switch v := evt.(type) {
		case Envelope:
			if p, ok := v.Payload.(T); ok {
				return fn(ctx, p)
			}
		case T:
			return fn(ctx, v)
		}
		return nil
	})
}

// FilterFunc decides whether an event is delivered to a subscription.
type FilterFunc func(event any) bool

// Target is a pub/sub-capable event target.
type Target interface {
	Subscribe(owner scope.Subscriber, pattern topic.Topic, h Handler, opts ...SubscriptionOption) (Subscription, error)
	Unsubscribe(sub Subscription) error
	Emit(ctx context.Context, t topic.Topic, payload any) error
}

// ListenerHook is implemented by targets that want to know, synchronously,
// when a subscriber starts or stops listening to them.
type ListenerHook interface {
	// OnListenerAdded runs right after h was registered for name on
	// behalf of s. Returned errors are reported to the binder.
	OnListenerAdded(ctx context.Context, s scope.Subscriber, name topic.Topic, h Handler) error

	// OnListenerRemoved runs right after s stopped listening to name.
	OnListenerRemoved(ctx context.Context, s scope.Subscriber, name topic.Topic) error
}

// Stats are Emitter counters.
type Stats struct {
	EventsEmitted     uint64
	EventsDelivered   uint64
	HandlerErrors     uint64
	HandlerPanics     uint64
	ActiveSubscribers int
}
