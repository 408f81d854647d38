package event

import (
	"errors"
	"testing"
)

func TestHandlerError(t *testing.T) {
	boom := errors.New("boom")
	err := &HandlerError{SubscriptionID: "sub-1", Topic: "large.entry", Err: boom}

	if got, want := err.Error(), "handler for subscription sub-1 on large.entry: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, boom) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestPanicError_IsErrHandlerPanic(t *testing.T) {
	var err error = &HandlerError{Err: &PanicError{Value: "x"}}
	if !errors.Is(err, ErrHandlerPanic) {
		t.Error("expected wrapped PanicError to match ErrHandlerPanic")
	}
	if errors.Is(&HandlerError{Err: errors.New("plain")}, ErrHandlerPanic) {
		t.Error("plain error must not match ErrHandlerPanic")
	}
}
