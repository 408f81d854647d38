package breakpoint

import "errors"

var (
	// ErrInvalidBoundaries is returned when the boundaries leave a state
	// empty.
	ErrInvalidBoundaries = errors.New("invalid breakpoint boundaries")

	// ErrNilHost is returned when the engine is built without a host.
	ErrNilHost = errors.New("media host cannot be nil")
)
