package media

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is returned for query text that cannot be parsed.
	ErrInvalidQuery = errors.New("invalid media query")

	// ErrUnsupported is returned by MatchMedia when the viewport has no
	// media-query capability.
	ErrUnsupported = errors.New("media queries not supported")

	// ErrInvalidWidth is returned by Resize for negative widths.
	ErrInvalidWidth = errors.New("invalid viewport width")
)

// QueryError describes where a query failed to parse.
type QueryError struct {
	Query  string
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("media query %q: %s", e.Query, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidQuery.
func (e *QueryError) Unwrap() error {
	return ErrInvalidQuery
}
