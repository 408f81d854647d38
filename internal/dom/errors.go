package dom

import "errors"

var (
	// ErrInvalidEventSpec is returned by On for an empty spec or a token
	// without an event type.
	ErrInvalidEventSpec = errors.New("invalid event spec")

	// ErrInvalidSelector is returned when a selector does not compile.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrNilHandler is returned by On for a nil handler.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrForeignElement is returned when dispatching to an element of
	// another document.
	ErrForeignElement = errors.New("element belongs to another document")
)
