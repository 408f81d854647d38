// Package backend connects a terminal host to a page. Terminal resizes
// drive the page viewport and therefore breakpoint transitions, while key
// and mouse input is dispatched into the page document as DOM events.
package backend

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	EventFocus
)

// String returns the DOM event type an event is forwarded as.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "keydown"
	case EventMouse:
		return "click"
	case EventResize:
		return "resize"
	case EventPaste:
		return "paste"
	case EventFocus:
		return "focus"
	default:
		return "none"
	}
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  string
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	Buttons        int

	// Resize event fields
	Width, Height int

	Focused   bool
	PasteText string
}

// Host is the subset of a terminal the event loop needs.
type Host interface {
	Init() error
	Shutdown()
	Size() (width, height int)
	PollEvent() Event
	DrawText(x, y int, text string)
	Clear()
	Show()
}
