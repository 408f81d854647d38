package event

import (
	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
)

// FilterBySource allows envelopes emitted by source.
func FilterBySource(source string) FilterFunc {
	return func(event any) bool {
		env, ok := event.(Envelope)
		return ok && env.Metadata.Source == source
	}
}

// FilterByTopic allows envelopes whose topic matches pattern. Useful to
// narrow a wildcard subscription.
func FilterByTopic(pattern topic.Topic) FilterFunc {
	return func(event any) bool {
		env, ok := event.(Envelope)
		return ok && env.Topic.Matches(pattern)
	}
}

// FilterPayload allows envelopes whose payload is a T accepted by predicate.
func FilterPayload[T any](predicate func(T) bool) FilterFunc {
	return func(event any) bool {
		env, ok := event.(Envelope)
		if !ok {
			return false
		}
		p, ok := env.Payload.(T)
		return ok && predicate(p)
	}
}

// Not inverts f.
func Not(f FilterFunc) FilterFunc {
	return func(event any) bool {
		return !f(event)
	}
}

// And allows events accepted by every filter.
func And(filters ...FilterFunc) FilterFunc {
	return func(event any) bool {
		for _, f := range filters {
			if !f(event) {
				return false
			}
		}
		return true
	}
}

// Or allows events accepted by any filter.
func Or(filters ...FilterFunc) FilterFunc {
	return func(event any) bool {
		for _, f := range filters {
			if f(event) {
				return true
			}
		}
		return false
	}
}
