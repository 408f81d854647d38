package breakpoint

import (
	"fmt"
	"strconv"

	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
)

// State is a viewport class.
type State uint8

const (
	Small State = iota
	Medium
	Large
)

// States lists every state from narrowest to widest.
var States = [...]State{Small, Medium, Large}

// String returns the topic prefix for the state.
func (s State) String() string {
	switch s {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseState maps "small", "medium" or "large" to a State.
func ParseState(name string) (State, bool) {
	switch name {
	case "small":
		return Small, true
	case "medium":
		return Medium, true
	case "large":
		return Large, true
	default:
		return 0, false
	}
}

// Edge is the direction of a transition.
type Edge uint8

const (
	Entry Edge = iota
	Exit
)

func (e Edge) String() string {
	if e == Exit {
		return "exit"
	}
	return "entry"
}

// Topic returns the event name for state and edge, e.g. "large.entry".
func Topic(s State, e Edge) topic.Topic {
	return topic.Join(s.String(), e.String())
}

// Transition is the payload of every breakpoint event.
type Transition struct {
	State State
	Edge  Edge

	// Replayed is true when the event was delivered to a single new
	// listener rather than published for a real width change.
	Replayed bool
}

func (t Transition) String() string {
	s := Topic(t.State, t.Edge).String()
	if t.Replayed {
		s += " (replayed)"
	}
	return s
}

// Boundaries are the first pixel widths of the medium and large states.
type Boundaries struct {
	MediumMin int
	LargeMin  int
}

// DefaultBoundaries: small up to 767px, medium 768px to 959px, large from
// 960px.
var DefaultBoundaries = Boundaries{MediumMin: 768, LargeMin: 960}

// Validate checks that the three states are non-empty.
func (b Boundaries) Validate() error {
	if b.MediumMin < 1 {
		return fmt.Errorf("%w: medium_min %d must be at least 1", ErrInvalidBoundaries, b.MediumMin)
	}
	if b.LargeMin <= b.MediumMin {
		return fmt.Errorf("%w: large_min %d must exceed medium_min %d", ErrInvalidBoundaries, b.LargeMin, b.MediumMin)
	}
	return nil
}

// Classify returns the state for a width in pixels.
func (b Boundaries) Classify(widthPx int) State {
	switch {
	case widthPx >= b.LargeMin:
		return Large
	case widthPx >= b.MediumMin:
		return Medium
	default:
		return Small
	}
}
