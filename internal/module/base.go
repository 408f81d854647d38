package module

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iamdavidjackson/prototype-base/internal/binding"
	"github.com/iamdavidjackson/prototype-base/internal/breakpoint"
	"github.com/iamdavidjackson/prototype-base/internal/dom"
	"github.com/iamdavidjackson/prototype-base/internal/event"
	"github.com/iamdavidjackson/prototype-base/internal/page"
	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

// Base is embedded by every module.
type Base struct {
	scope.Identity

	id          int
	name        string
	page        *page.Page
	element     *dom.Element
	breakpoints *breakpoint.Engine
	logger      zerolog.Logger
}

// NewBase creates a base with a fresh identity and registers it with p
// for teardown.
func NewBase(p *page.Page) (*Base, error) {
	b := &Base{Identity: scope.NewIdentity(), page: p}
	id, err := p.Track(b)
	if err != nil {
		return nil, err
	}
	b.id = id
	b.logger = p.Logger().With().Str("component", "module").Int("module_id", id).Logger()
	return b, nil
}

// ID returns the module's sequence number on its page.
func (b *Base) ID() int {
	return b.id
}

// Name returns the name the module was mounted under, if any.
func (b *Base) Name() string {
	return b.name
}

func (b *Base) Page() *page.Page {
	return b.page
}

// Element returns the element the module was mounted on, or nil.
func (b *Base) Element() *dom.Element {
	return b.element
}

func (b *Base) Logger() zerolog.Logger {
	return b.logger
}

// Init runs the lifecycle: InitVariables, InitEvents, then InitAnalytics
// when l implements AnalyticsInitializer.
func (b *Base) Init(ctx context.Context, l Lifecycle) error {
	if err := l.InitVariables(ctx); err != nil {
		return fmt.Errorf("init variables: %w", err)
	}
	if err := l.InitEvents(ctx); err != nil {
		return fmt.Errorf("init events: %w", err)
	}
	if a, ok := l.(AnalyticsInitializer); ok {
		if err := a.InitAnalytics(ctx); err != nil {
			return fmt.Errorf("init analytics: %w", err)
		}
	}
	b.logger.Debug().Str("name", b.name).Msg("module initialized")
	return nil
}

// Bind binds h on target on behalf of this module.
func (b *Base) Bind(ctx context.Context, target any, eventSpec string, h event.Handler, opts ...binding.Option) (*binding.Binding, error) {
	return b.page.Dispatcher().Bind(ctx, b, target, eventSpec, h, opts...)
}

// Unbind removes this module's handlers for eventSpec on target.
func (b *Base) Unbind(ctx context.Context, target any, eventSpec string, opts ...binding.Option) error {
	return b.page.Dispatcher().Unbind(ctx, b, target, eventSpec, opts...)
}

// InitBreakpoints binds h to the six breakpoint events of the page's
// engine. Handlers for the current state run before it returns.
func (b *Base) InitBreakpoints(ctx context.Context, h ViewportHandler) error {
	engine, err := b.page.Breakpoints()
	if err != nil {
		return err
	}
	b.breakpoints = engine

	var errs []error
	for _, vb := range viewportBindings {
		if _, err := b.Bind(ctx, engine, vb.topic.String(), adapt(vb.handler(h))); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RemoveBreakpoints unbinds the six breakpoint events.
func (b *Base) RemoveBreakpoints(ctx context.Context) error {
	if b.breakpoints == nil {
		return ErrNoBreakpoints
	}
	var errs []error
	for _, vb := range viewportBindings {
		if err := b.Unbind(ctx, b.breakpoints, vb.topic.String()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Destroy unbinds everything this module bound and forgets it on the page.
func (b *Base) Destroy(ctx context.Context) error {
	err := b.page.Dispatcher().UnbindAll(ctx, b)
	b.page.Untrack(b)
	b.breakpoints = nil
	return err
}
