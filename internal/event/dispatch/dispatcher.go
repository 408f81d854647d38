package dispatch

import (
	"context"
	"fmt"
	"time"
)

// Handler mirrors event.Handler to avoid an import cycle.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// Dispatcher executes a handler for an event.
type Dispatcher interface {
	Dispatch(ctx context.Context, event any, handler Handler) Result
}

// Result is the outcome of one handler execution.
type Result struct {
	// Success is true if the handler returned nil without panicking.
	Success bool

	// Error is the error returned by the handler.
	Error error

	// Panicked is true if the handler panicked.
	Panicked bool

	// PanicValue is the recovered value.
	PanicValue any

	// PanicStack is the stack at the point of the panic.
	PanicStack []byte

	// Duration is how long the handler ran.
	Duration time.Duration

	// Skipped is true if the context was done before the handler ran.
	Skipped bool
}

// IsSuccess reports whether the handler completed cleanly.
func (r Result) IsSuccess() bool {
	return r.Success && !r.Panicked && r.Error == nil
}

// IsError reports whether the handler returned an error.
func (r Result) IsError() bool {
	return r.Error != nil && !r.Panicked
}

// IsPanic reports whether the handler panicked.
func (r Result) IsPanic() bool {
	return r.Panicked
}

// Err returns the failure as an error, or nil on success.
// A panic is reported as *PanicError.
func (r Result) Err() error {
	switch {
	case r.Panicked:
		return &PanicError{Value: r.PanicValue, Stack: r.PanicStack}
	case r.Error != nil:
		return r.Error
	default:
		return nil
	}
}

// PanicError carries a recovered panic value.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

// PanicHandler observes recovered panics.
type PanicHandler func(event any, panicValue any, stack []byte)
