package scope

import (
	"context"

	"github.com/google/uuid"
)

// Tag is an opaque, unique subscriber identifier.
type Tag string

// String returns the tag as a string.
func (t Tag) String() string {
	return string(t)
}

// Subscriber is anything that owns event bindings.
type Subscriber interface {
	ScopeTag() Tag
}

// Identity is the embeddable Subscriber implementation.
// The zero value has an empty tag and must not be used to bind events.
type Identity struct {
	tag Tag
}

// NewIdentity returns an Identity with a fresh UUID v4 tag.
func NewIdentity() Identity {
	return Identity{tag: Tag(uuid.NewString())}
}

// ScopeTag returns the identity's tag.
func (i Identity) ScopeTag() Tag {
	return i.tag
}

// IsZero reports whether the identity was never assigned a tag.
func (i Identity) IsZero() bool {
	return i.tag == ""
}

type ctxKey struct{}

// WithSubscriber returns a context carrying s as the handler's owner.
func WithSubscriber(ctx context.Context, s Subscriber) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the subscriber a handler runs on behalf of.
func FromContext(ctx context.Context) (Subscriber, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(ctxKey{}).(Subscriber)
	return s, ok
}
