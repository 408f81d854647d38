package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// Metadata is attached to every emitted event.
type Metadata struct {
	// ID uniquely identifies the emission.
	ID string

	// Timestamp is when the event was emitted.
	Timestamp time.Time

	// Source names the emitter.
	Source string
}

// Envelope is what handlers receive from an Emitter.
type Envelope struct {
	Topic    topic.Topic
	Payload  any
	Metadata Metadata
}

// NewEnvelope wraps payload for delivery on t.
func NewEnvelope(t topic.Topic, payload any, source string) Envelope {
	return Envelope{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        generateID(),
			Timestamp: timeNow(),
			Source:    source,
		},
	}
}

func generateID() string {
	return uuid.NewString()
}
