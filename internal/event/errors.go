package event

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTopic is returned for empty or malformed topics, and when
	// a wildcard pattern is emitted.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned when a nil handler is subscribed.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNilOwner is returned when a subscription has no owner.
	ErrNilOwner = errors.New("subscription owner cannot be nil")

	// ErrInvalidSubscription is returned when a nil subscription is
	// unsubscribed.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrSubscriptionNotFound is returned when unsubscribing a subscription
	// this emitter does not hold.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrHandlerPanic matches *HandlerError values wrapping a panic.
	ErrHandlerPanic = errors.New("handler panicked")
)

// HandlerError reports a failed handler.
type HandlerError struct {
	SubscriptionID string
	Topic          string
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler for subscription %s on %s: %v", e.SubscriptionID, e.Topic, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

// Is lets errors.Is match ErrHandlerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic
}
