package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTarget is matched by every *InvalidTargetError.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrUnsupportedTarget is returned for targets that are neither
	// pub/sub-capable nor DOM-capable.
	ErrUnsupportedTarget = errors.New("target is neither pub/sub nor DOM capable")

	// ErrNilSubscriber is returned when binding without a subscriber.
	ErrNilSubscriber = errors.New("subscriber cannot be nil")

	// ErrEmptyEventSpec is returned for an event spec with no tokens.
	ErrEmptyEventSpec = errors.New("empty event spec")
)

// InvalidTargetError reports a nil target passed to Bind or Unbind. It is
// a programming error.
type InvalidTargetError struct {
	Op string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("%s: cannot %s an undefined target", e.Op, e.Op)
}

// Is lets errors.Is match ErrInvalidTarget.
func (e *InvalidTargetError) Is(target error) bool {
	return target == ErrInvalidTarget
}
