// Package page holds the services shared by every module of one page
// session: the document, the viewport, the binding dispatcher and the
// lazily built breakpoint engine.
package page

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iamdavidjackson/prototype-base/internal/binding"
	"github.com/iamdavidjackson/prototype-base/internal/breakpoint"
	"github.com/iamdavidjackson/prototype-base/internal/dom"
	"github.com/iamdavidjackson/prototype-base/internal/media"
	"github.com/iamdavidjackson/prototype-base/internal/scope"
)

// ErrClosed is returned by a page after Close.
var ErrClosed = errors.New("page closed")

// DefaultCellWidth is the pixel width assumed for one terminal cell.
const DefaultCellWidth = 8

// Page is the page-scoped service locator.
type Page struct {
	mu          sync.Mutex
	viewport    *media.Viewport
	doc         *dom.Document
	dispatcher  *binding.Dispatcher
	engine      *breakpoint.Engine
	engineOpts  []breakpoint.Option
	subscribers []scope.Subscriber
	tracked     int
	cellWidth   int
	logger      zerolog.Logger
	closed      bool
}

// Option configures a Page.
type Option func(*Page)

// WithLogger sets the page logger. The dispatcher and engine log through
// children of it.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Page) {
		p.logger = l
	}
}

// WithBreakpointOptions passes options to the breakpoint engine.
func WithBreakpointOptions(opts ...breakpoint.Option) Option {
	return func(p *Page) {
		p.engineOpts = append(p.engineOpts, opts...)
	}
}

// WithCellWidth sets the pixel width of one terminal cell.
func WithCellWidth(px int) Option {
	return func(p *Page) {
		if px > 0 {
			p.cellWidth = px
		}
	}
}

// New creates a page over viewport and doc.
func New(viewport *media.Viewport, doc *dom.Document, opts ...Option) *Page {
	p := &Page{
		viewport:  viewport,
		doc:       doc,
		cellWidth: DefaultCellWidth,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.dispatcher = binding.NewDispatcher(
		binding.WithLogger(p.logger.With().Str("component", "binding").Logger()),
	)
	return p
}

func (p *Page) Viewport() *media.Viewport {
	return p.viewport
}

func (p *Page) Document() *dom.Document {
	return p.doc
}

func (p *Page) Dispatcher() *binding.Dispatcher {
	return p.dispatcher
}

func (p *Page) Logger() zerolog.Logger {
	return p.logger
}

// Breakpoints returns the page's breakpoint engine, building it on first
// use. Every later call returns the same engine.
func (p *Page) Breakpoints() (*breakpoint.Engine, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if p.engine != nil {
		return p.engine, nil
	}

	opts := []breakpoint.Option{
		breakpoint.WithLogger(p.logger.With().Str("component", "breakpoint").Logger()),
	}
	if p.doc != nil {
		opts = append(opts, breakpoint.WithCapabilityProbe(breakpoint.DocumentProbe(p.doc)))
	}
	opts = append(opts, p.engineOpts...)

	e, err := breakpoint.New(p.viewport, opts...)
	if err != nil {
		return nil, fmt.Errorf("build breakpoint engine: %w", err)
	}
	p.engine = e
	p.logger.Debug().Bool("supported", e.Supported()).Msg("breakpoint engine created")
	return e, nil
}

// Track registers s for teardown by Close and returns its sequence
// number on this page, starting at 0.
func (p *Page) Track(s scope.Subscriber) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrClosed
	}
	p.subscribers = append(p.subscribers, s)
	id := p.tracked
	p.tracked++
	return id, nil
}

// Untrack forgets s. It does not unbind anything.
func (p *Page) Untrack(s scope.Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, x := range p.subscribers {
		if x.ScopeTag() == s.ScopeTag() {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

// Subscribers returns the tracked subscribers in registration order.
func (p *Page) Subscribers() []scope.Subscriber {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]scope.Subscriber(nil), p.subscribers...)
}

// HandleResize converts a host width in cells to pixels and resizes the
// viewport. Breakpoint transitions run on the calling goroutine.
func (p *Page) HandleResize(ctx context.Context, widthCells int) error {
	px := widthCells * p.cellWidth
	p.logger.Debug().Int("cells", widthCells).Int("px", px).Msg("resize")
	return p.viewport.Resize(ctx, px)
}

// Close unbinds every tracked subscriber, newest first, and shuts the
// breakpoint engine down. Errors are joined.
func (p *Page) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	subs := p.subscribers
	p.subscribers = nil
	engine := p.engine
	p.engine = nil
	p.mu.Unlock()

	var errs []error
	for i := len(subs) - 1; i >= 0; i-- {
		if err := p.dispatcher.UnbindAll(ctx, subs[i]); err != nil {
			errs = append(errs, err)
		}
	}
	if engine != nil {
		engine.Close()
	}
	return errors.Join(errs...)
}
