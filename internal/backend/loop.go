package backend

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/iamdavidjackson/prototype-base/internal/page"
)

// ErrQuit is returned by Run when the quit predicate accepts an event.
var ErrQuit = errors.New("quit requested")

// Forward routes a single terminal event into the page. Resizes update the
// viewport width. Key and mouse events are dispatched on the document body
// with the Event as detail. Anything else is ignored.
func Forward(ctx context.Context, p *page.Page, ev Event) error {
	switch ev.Type {
	case EventResize:
		return p.HandleResize(ctx, ev.Width)
	case EventKey, EventMouse, EventPaste:
		doc := p.Document()
		if doc == nil {
			return nil
		}
		body := doc.Body()
		if body == nil {
			return nil
		}
		return doc.Dispatch(ctx, body, ev.Type.String(), ev)
	default:
		return nil
	}
}

// Loop pumps host events into a page until the context is cancelled or
// Quit accepts an event.
type Loop struct {
	Host Host
	Page *page.Page
	Quit func(Event) bool

	// Start runs once the host is initialized and the viewport has its
	// first width. An error aborts Run.
	Start func(ctx context.Context) error

	Render func(Host)
	Logger zerolog.Logger
}

// Run initializes the host and blocks in the event loop. Forwarding errors
// are logged and do not stop the loop. The host is shut down on return.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Host.Init(); err != nil {
		return err
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
		case <-done:
		}
		l.Host.Shutdown()
	}()
	defer func() {
		close(done)
		<-stopped
	}()

	w, _ := l.Host.Size()
	if err := l.Page.HandleResize(ctx, w); err != nil {
		l.Logger.Warn().Err(err).Msg("initial resize")
	}
	if l.Start != nil {
		if err := l.Start(ctx); err != nil {
			return err
		}
	}
	l.render()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev := l.Host.PollEvent()
		if ev.Type == EventNone {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		if l.Quit != nil && l.Quit(ev) {
			return ErrQuit
		}
		if err := Forward(ctx, l.Page, ev); err != nil {
			l.Logger.Warn().Err(err).Str("event", ev.Type.String()).Msg("forward")
		}
		l.render()
	}
}

func (l *Loop) render() {
	if l.Render == nil {
		return
	}
	l.Host.Clear()
	l.Render(l.Host)
	l.Host.Show()
}
