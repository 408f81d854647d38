package backend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamdavidjackson/prototype-base/internal/breakpoint"
	"github.com/iamdavidjackson/prototype-base/internal/dom"
	"github.com/iamdavidjackson/prototype-base/internal/event"
	"github.com/iamdavidjackson/prototype-base/internal/media"
	"github.com/iamdavidjackson/prototype-base/internal/page"
	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

// scripted replays a fixed list of events, then reports quit keys forever.
type scripted struct {
	width    int
	events   []Event
	drawn    int
	shutdown bool
}

func (s *scripted) Init() error               { return nil }
func (s *scripted) Shutdown()                 { s.shutdown = true }
func (s *scripted) Size() (int, int)          { return s.width, 24 }
func (s *scripted) DrawText(int, int, string) { s.drawn++ }
func (s *scripted) Clear()                    {}
func (s *scripted) Show()                     {}

func (s *scripted) PollEvent() Event {
	if len(s.events) == 0 {
		return Event{Type: EventKey, Rune: 'q'}
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

func newPage(t *testing.T) *page.Page {
	t.Helper()
	doc, err := dom.ParseString(`<html><body><main id="app"></main></body></html>`)
	require.NoError(t, err)
	return page.New(media.NewViewport(), doc, page.WithCellWidth(8))
}

func TestForwardResizeDrivesBreakpoints(t *testing.T) {
	ctx := context.Background()
	p := newPage(t)
	e, err := p.Breakpoints()
	require.NoError(t, err)

	var seen []string
	owner := scope.NewIdentity()
	record := func(name string) event.Handler {
		return event.HandlerFunc(func(context.Context, any) error {
			seen = append(seen, name)
			return nil
		})
	}
	require.NoError(t, Forward(ctx, p, Event{Type: EventResize, Width: 200}))
	_, err = p.Dispatcher().Bind(ctx, owner, e, "large.exit", record("large.exit"))
	require.NoError(t, err)
	_, err = p.Dispatcher().Bind(ctx, owner, e, "medium.entry", record("medium.entry"))
	require.NoError(t, err)
	seen = nil

	// 100 cells * 8px = 800px is medium.
	require.NoError(t, Forward(ctx, p, Event{Type: EventResize, Width: 100}))
	assert.ElementsMatch(t, []string{"large.exit", "medium.entry"}, seen)

	st, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, breakpoint.Medium, st)
}

func TestForwardKeyDispatchesOnBody(t *testing.T) {
	ctx := context.Background()
	p := newPage(t)

	var got *dom.Event
	_, err := p.Document().Body().On("keydown", "", event.HandlerFunc(func(_ context.Context, payload any) error {
		got = payload.(*dom.Event)
		return nil
	}))
	require.NoError(t, err)

	require.NoError(t, Forward(ctx, p, Event{Type: EventKey, Rune: 'a'}))
	require.NotNil(t, got)
	assert.Equal(t, "keydown", got.Type)
	assert.Equal(t, 'a', got.Detail.(Event).Rune)
}

func TestForwardIgnoresFocus(t *testing.T) {
	assert.NoError(t, Forward(context.Background(), newPage(t), Event{Type: EventFocus}))
}

func TestLoopRunsUntilQuit(t *testing.T) {
	p := newPage(t)
	host := &scripted{
		width: 140,
		events: []Event{
			{Type: EventResize, Width: 50},
			{Type: EventNone},
			{Type: EventMouse, MouseX: 1, MouseY: 1},
		},
	}
	clicks := 0
	_, err := p.Document().Body().On("click", "", event.HandlerFunc(func(context.Context, any) error {
		clicks++
		return nil
	}))
	require.NoError(t, err)

	l := &Loop{
		Host:   host,
		Page:   p,
		Quit:   func(ev Event) bool { return ev.Type == EventKey && ev.Rune == 'q' },
		Render: func(h Host) { h.DrawText(0, 0, "x") },
		Logger: zerolog.Nop(),
	}
	err = l.Run(context.Background())
	assert.ErrorIs(t, err, ErrQuit)
	assert.True(t, host.shutdown)
	assert.Equal(t, 1, clicks)
	assert.Equal(t, 400, p.Viewport().Width())
	assert.Equal(t, 3, host.drawn)
}

func TestLoopStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	host := &scripted{width: 80}
	l := &Loop{Host: host, Page: newPage(t), Logger: zerolog.Nop()}
	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
	assert.True(t, host.shutdown)
}
