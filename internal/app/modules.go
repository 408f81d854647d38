package app

import (
	"context"
	"fmt"

	"github.com/iamdavidjackson/prototype-base/internal/analytics"
	"github.com/iamdavidjackson/prototype-base/internal/backend"
	"github.com/iamdavidjackson/prototype-base/internal/binding"
	"github.com/iamdavidjackson/prototype-base/internal/dom"
	"github.com/iamdavidjackson/prototype-base/internal/event"
	"github.com/iamdavidjackson/prototype-base/internal/module"
)

// notifier receives one-line status messages for the status area.
type notifier func(format string, args ...any)

// registerModules adds the demo modules to r.
func registerModules(r *module.Registry, tagger *analytics.Tagger, note notifier) error {
	if err := r.Register("masthead", func(b *module.Base) (module.Lifecycle, error) {
		return &masthead{Base: b, tagger: tagger, note: note}, nil
	}); err != nil {
		return err
	}
	return r.Register("nav", func(b *module.Base) (module.Lifecycle, error) {
		return &nav{Base: b, tagger: tagger, note: note}, nil
	})
}

// masthead reports the page view and follows the layout.
type masthead struct {
	*module.Base
	tagger *analytics.Tagger
	note   notifier

	title    *dom.Element
	pageName string
	layout   string
}

func (m *masthead) InitVariables(context.Context) error {
	el := m.Element()
	if el == nil {
		return fmt.Errorf("masthead: no element")
	}
	title, err := el.Query("h1")
	if err != nil {
		return err
	}
	m.title = title
	m.pageName, _ = el.Attr("data-page")
	return nil
}

func (m *masthead) InitEvents(ctx context.Context) error {
	return m.InitBreakpoints(ctx, m)
}

func (m *masthead) InitAnalytics(ctx context.Context) error {
	if m.pageName == "" {
		return nil
	}
	_, err := m.tagger.Track(ctx, m.pageName, map[string]string{"eVar1": m.layout}, nil)
	return err
}

func (m *masthead) enter(layout string) func(context.Context) error {
	return func(context.Context) error {
		m.layout = layout
		m.note("masthead: %s layout", layout)
		return nil
	}
}

func (m *masthead) OnSmallViewportEntry(ctx context.Context) error  { return m.enter("small")(ctx) }
func (m *masthead) OnSmallViewportExit(context.Context) error       { return nil }
func (m *masthead) OnMediumViewportEntry(ctx context.Context) error { return m.enter("medium")(ctx) }
func (m *masthead) OnMediumViewportExit(context.Context) error      { return nil }
func (m *masthead) OnLargeViewportEntry(ctx context.Context) error  { return m.enter("large")(ctx) }
func (m *masthead) OnLargeViewportExit(context.Context) error       { return nil }

// nav collapses on small viewports and tracks link clicks. Pressing "n"
// clicks the next link.
type nav struct {
	*module.Base
	tagger *analytics.Tagger
	note   notifier

	links     []*dom.Element
	next      int
	collapsed bool
}

func (n *nav) InitVariables(context.Context) error {
	el := n.Element()
	if el == nil {
		return fmt.Errorf("nav: no element")
	}
	links, err := el.QueryAll("a")
	if err != nil {
		return err
	}
	n.links = links
	return nil
}

func (n *nav) InitEvents(ctx context.Context) error {
	if _, err := n.Bind(ctx, n.Element(), "click.nav", event.HandlerFunc(n.onLinkClick), binding.WithSelector("a")); err != nil {
		return err
	}
	body := n.Page().Document().Body()
	if _, err := n.Bind(ctx, body, "keydown.nav", event.HandlerFunc(n.onKey)); err != nil {
		return err
	}
	return n.InitBreakpoints(ctx, n)
}

func (n *nav) onLinkClick(ctx context.Context, payload any) error {
	evt, ok := payload.(*dom.Event)
	if !ok {
		return nil
	}
	href, _ := evt.CurrentTarget.Attr("href")
	if _, err := n.tagger.Track(ctx, href, nil, nil); err != nil {
		return err
	}
	n.note("nav: %s", href)
	return nil
}

func (n *nav) onKey(ctx context.Context, payload any) error {
	evt, ok := payload.(*dom.Event)
	if !ok {
		return nil
	}
	key, ok := evt.Detail.(backend.Event)
	if !ok || key.Rune != 'n' || len(n.links) == 0 || n.collapsed {
		return nil
	}
	link := n.links[n.next%len(n.links)]
	n.next++
	return link.Trigger(ctx, "click", nil)
}

func (n *nav) collapse(collapsed bool) func(context.Context) error {
	return func(context.Context) error {
		if n.collapsed != collapsed {
			n.collapsed = collapsed
			n.note("nav: collapsed=%t", collapsed)
		}
		return nil
	}
}

func (n *nav) OnSmallViewportEntry(ctx context.Context) error { return n.collapse(true)(ctx) }
func (n *nav) OnSmallViewportExit(ctx context.Context) error  { return n.collapse(false)(ctx) }
func (n *nav) OnMediumViewportEntry(context.Context) error    { return nil }
func (n *nav) OnMediumViewportExit(context.Context) error     { return nil }
func (n *nav) OnLargeViewportEntry(context.Context) error     { return nil }
func (n *nav) OnLargeViewportExit(context.Context) error      { return nil }

var (
	_ module.ViewportHandler      = (*masthead)(nil)
	_ module.AnalyticsInitializer = (*masthead)(nil)
	_ module.ViewportHandler      = (*nav)(nil)
)
