package module

import (
	"context"

	"github.com/iamdavidjackson/prototype-base/internal/breakpoint"
	"github.com/iamdavidjackson/prototype-base/internal/event"
	"github.com/iamdavidjackson/prototype-base/internal/event/topic"
)

// Lifecycle is what every module implements.
type Lifecycle interface {
	// InitVariables looks up the elements the module works with.
	InitVariables(ctx context.Context) error

	// InitEvents binds the module's handlers.
	InitEvents(ctx context.Context) error
}

// AnalyticsInitializer is implemented by modules that report page views.
type AnalyticsInitializer interface {
	InitAnalytics(ctx context.Context) error
}

// ViewportHandler receives the six breakpoint events.
type ViewportHandler interface {
	OnSmallViewportEntry(ctx context.Context) error
	OnSmallViewportExit(ctx context.Context) error
	OnMediumViewportEntry(ctx context.Context) error
	OnMediumViewportExit(ctx context.Context) error
	OnLargeViewportEntry(ctx context.Context) error
	OnLargeViewportExit(ctx context.Context) error
}

type viewportBinding struct {
	topic   topic.Topic
	handler func(ViewportHandler) func(context.Context) error
}

// viewportBindings lists the breakpoint topics in bind order.
var viewportBindings = []viewportBinding{
	{breakpoint.Topic(breakpoint.Small, breakpoint.Entry), func(h ViewportHandler) func(context.Context) error { return h.OnSmallViewportEntry }},
	{breakpoint.Topic(breakpoint.Small, breakpoint.Exit), func(h ViewportHandler) func(context.Context) error { return h.OnSmallViewportExit }},
	{breakpoint.Topic(breakpoint.Medium, breakpoint.Entry), func(h ViewportHandler) func(context.Context) error { return h.OnMediumViewportEntry }},
	{breakpoint.Topic(breakpoint.Medium, breakpoint.Exit), func(h ViewportHandler) func(context.Context) error { return h.OnMediumViewportExit }},
	{breakpoint.Topic(breakpoint.Large, breakpoint.Entry), func(h ViewportHandler) func(context.Context) error { return h.OnLargeViewportEntry }},
	{breakpoint.Topic(breakpoint.Large, breakpoint.Exit), func(h ViewportHandler) func(context.Context) error { return h.OnLargeViewportExit }},
}

func adapt(fn func(context.Context) error) event.Handler {
	return event.HandlerFunc(func(ctx context.Context, _ any) error {
		return fn(ctx)
	})
}
