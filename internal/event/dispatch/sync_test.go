package dispatch

import (
	"context"
	"errors"
	"testing"
)

type handlerFunc func(ctx context.Context, event any) error

func (f handlerFunc) Handle(ctx context.Context, event any) error { return f(ctx, event) }

func TestResult_Predicates(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		result  Result
		success bool
		isErr   bool
		isPanic bool
	}{
		{"success", Result{Success: true}, true, false, false},
		{"error", Result{Error: boom}, false, true, false},
		{"panic", Result{Panicked: true, PanicValue: "x"}, false, false, true},
		{"skipped", Result{Skipped: true}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.IsSuccess(); got != tt.success {
				t.Errorf("IsSuccess() = %v, want %v", got, tt.success)
			}
			if got := tt.result.IsError(); got != tt.isErr {
				t.Errorf("IsError() = %v, want %v", got, tt.isErr)
			}
			if got := tt.result.IsPanic(); got != tt.isPanic {
				t.Errorf("IsPanic() = %v, want %v", got, tt.isPanic)
			}
		})
	}
}

func TestSyncDispatcher_Success(t *testing.T) {
	d := NewSyncDispatcher()

	var got any
	res := d.Dispatch(context.Background(), "payload", handlerFunc(func(_ context.Context, event any) error {
		got = event
		return nil
	}))

	if !res.IsSuccess() {
		t.Fatalf("expected success, got %+v", res)
	}
	if got != "payload" {
		t.Errorf("handler received %v, want payload", got)
	}
	if res.Err() != nil {
		t.Errorf("Err() = %v, want nil", res.Err())
	}
	if s := d.Stats(); s.Dispatched != 1 || s.Succeeded != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestSyncDispatcher_Error(t *testing.T) {
	d := NewSyncDispatcher()
	boom := errors.New("boom")

	res := d.Dispatch(context.Background(), nil, handlerFunc(func(context.Context, any) error {
		return boom
	}))

	if !errors.Is(res.Err(), boom) {
		t.Errorf("Err() = %v, want %v", res.Err(), boom)
	}
	if d.Stats().Failed != 1 {
		t.Errorf("Failed = %d, want 1", d.Stats().Failed)
	}
}

func TestSyncDispatcher_PanicRecovered(t *testing.T) {
	var observed any
	d := NewSyncDispatcher(WithPanicHandler(func(_ any, v any, stack []byte) {
		observed = v
		if len(stack) == 0 {
			t.Error("expected a stack trace")
		}
	}))

	res := d.Dispatch(context.Background(), nil, handlerFunc(func(context.Context, any) error {
		panic("kaboom")
	}))

	if !res.IsPanic() {
		t.Fatalf("expected panic result, got %+v", res)
	}
	if observed != "kaboom" {
		t.Errorf("panic handler saw %v, want kaboom", observed)
	}
	var pe *PanicError
	if !errors.As(res.Err(), &pe) {
		t.Fatalf("Err() = %T, want *PanicError", res.Err())
	}
	if pe.Value != "kaboom" {
		t.Errorf("PanicError.Value = %v", pe.Value)
	}
	if d.Stats().Panicked != 1 {
		t.Errorf("Panicked = %d, want 1", d.Stats().Panicked)
	}
}

func TestSyncDispatcher_PanicHandlerPanics(t *testing.T) {
	d := NewSyncDispatcher(WithPanicHandler(func(any, any, []byte) {
		panic("observer")
	}))

	res := d.Dispatch(context.Background(), nil, handlerFunc(func(context.Context, any) error {
		panic("handler")
	}))
	if !res.IsPanic() {
		t.Errorf("expected panic result")
	}
}

func TestSyncDispatcher_CancelledContextSkips(t *testing.T) {
	d := NewSyncDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	res := d.Dispatch(ctx, nil, handlerFunc(func(context.Context, any) error {
		called = true
		return nil
	}))

	if called {
		t.Error("handler ran on a cancelled context")
	}
	if !res.Skipped || !errors.Is(res.Err(), context.Canceled) {
		t.Errorf("result = %+v", res)
	}
	if d.Stats().Skipped != 1 {
		t.Errorf("Skipped = %d", d.Stats().Skipped)
	}
}

func TestExecutor_ExecuteAll(t *testing.T) {
	e := NewExecutor()
	var order []int
	mk := func(i int) Handler {
		return handlerFunc(func(context.Context, any) error {
			order = append(order, i)
			return nil
		})
	}

	results := e.ExecuteAll(context.Background(), nil, []Handler{mk(1), mk(2), mk(3)})
	if len(results) != 3 {
		t.Fatalf("len(results) = %d", len(results))
	}
	for i, want := range []int{1, 2, 3} {
		if order[i] != want {
			t.Errorf("order[%d] = %d, want %d", i, order[i], want)
		}
	}
}
