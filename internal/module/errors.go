package module

import (
	"errors"
	"fmt"
)

var (
	// ErrUnimplementedOverride is matched by every *OverrideError.
	ErrUnimplementedOverride = errors.New("required override not implemented")

	// ErrDuplicateModule is returned when a factory name is registered twice.
	ErrDuplicateModule = errors.New("module already registered")

	// ErrNoBreakpoints is returned by RemoveBreakpoints before InitBreakpoints.
	ErrNoBreakpoints = errors.New("breakpoints not initialized")
)

// OverrideError reports a required method or factory that was never
// provided.
type OverrideError struct {
	Module string
	Method string
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("module %s: %s() not implemented", e.Module, e.Method)
}

// Unwrap lets errors.Is match ErrUnimplementedOverride.
func (e *OverrideError) Unwrap() error {
	return ErrUnimplementedOverride
}
