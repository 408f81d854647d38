package event

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/iamdavidjackson/prototype-base/internal/event/dispatch"
	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

// Emitter is the pub/sub-capable event target. The zero value is not
// usable; construct with NewEmitter. Emitter may be embedded to make a
// type pub/sub-capable.
type Emitter struct {
	registry   *Registry
	dispatcher *dispatch.SyncDispatcher
	config     emitterConfig

	eventsEmitted   atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

var _ Target = (*Emitter)(nil)

// NewEmitter creates an emitter.
func NewEmitter(opts ...Option) *Emitter {
	cfg := defaultEmitterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var dopts []dispatch.SyncOption
	if cfg.panicHandler != nil {
		dopts = append(dopts, dispatch.WithPanicHandler(dispatch.PanicHandler(cfg.panicHandler)))
	}

	return &Emitter{
		registry:   NewRegistry(),
		dispatcher: dispatch.NewSyncDispatcher(dopts...),
		config:     cfg,
	}
}

// Source returns the emitter's source name.
func (e *Emitter) Source() string {
	return e.config.source
}

// Subscribe registers h for events matching pattern on behalf of owner.
func (e *Emitter) Subscribe(owner scope.Subscriber, pattern topic.Topic, h Handler, opts ...SubscriptionOption) (Subscription, error) {
	if owner == nil {
		return nil, ErrNilOwner
	}
	if h == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}

	sub := newSubscription(generateID(), pattern, owner, h, opts...)
	e.registry.Add(sub)
	return sub, nil
}

// Unsubscribe cancels and removes sub.
func (e *Emitter) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()
	if !e.registry.Remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Subscriptions returns the subscriptions owned by s.
func (e *Emitter) Subscriptions(s scope.Subscriber) []Subscription {
	owned := e.registry.Owned(s.ScopeTag())
	out := make([]Subscription, len(owned))
	for i, sub := range owned {
		out[i] = sub
	}
	return out
}

// Count returns the number of subscriptions held.
func (e *Emitter) Count() int {
	return e.registry.Count()
}

// Emit delivers payload on t to every matching active subscription, in
// priority order, on the calling goroutine. Handlers see their owner via
// scope.FromContext. The subscriptions are snapshotted before delivery, so
// handlers may subscribe and unsubscribe freely; a subscription cancelled
// by an earlier handler is skipped.
func (e *Emitter) Emit(ctx context.Context, t topic.Topic, payload any) error {
	if !t.IsValid() || t.IsWildcard() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, t)
	}
	e.eventsEmitted.Add(1)

	subs := e.registry.Match(t)
	if len(subs) == 0 {
		return nil
	}

	env := NewEnvelope(t, payload, e.config.source)

	var errs []error
	for _, sub := range subs {
		if !sub.shouldDeliver(env) {
			continue
		}

		res := e.dispatcher.Dispatch(scope.WithSubscriber(ctx, sub.owner), env, sub.handler)
		switch {
		case res.Skipped:
			return errors.Join(append(errs, res.Error)...)
		case res.Panicked:
			e.handlerPanics.Add(1)
			errs = append(errs, &HandlerError{
				SubscriptionID: sub.id,
				Topic:          t.String(),
				Err:            &PanicError{Value: res.PanicValue, Stack: string(res.PanicStack)},
			})
		case res.Error != nil:
			e.handlerErrors.Add(1)
			errs = append(errs, &HandlerError{SubscriptionID: sub.id, Topic: t.String(), Err: res.Error})
		default:
			e.eventsDelivered.Add(1)
			if sub.config.Once {
				sub.Cancel()
				e.registry.Remove(sub.id)
			}
		}
	}
	return errors.Join(errs...)
}

// Clear cancels and removes every subscription.
func (e *Emitter) Clear() {
	e.registry.Clear()
}

// Stats returns a snapshot of the emitter's counters.
func (e *Emitter) Stats() Stats {
	return Stats{
		EventsEmitted:     e.eventsEmitted.Load(),
		EventsDelivered:   e.eventsDelivered.Load(),
		HandlerErrors:     e.handlerErrors.Load(),
		HandlerPanics:     e.handlerPanics.Load(),
		ActiveSubscribers: e.registry.CountActive(),
	}
}
