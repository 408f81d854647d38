package breakpoint

import (
	"github.com/rs/zerolog"

	"github.com/iamdavidjackson/prototype-base/internal/dom"
	"github.com/iamdavidjackson/prototype-base/internal/media"
)

// LegacyClass marks a document whose host has no media-query support.
const LegacyClass = "lt-ie9"

// Option configures an Engine.
type Option func(*config)

type config struct {
	bounds  Boundaries
	pxPerEm float64
	probe   func() bool
	logger  zerolog.Logger
}

func defaultConfig() config {
	return config{
		bounds:  DefaultBoundaries,
		pxPerEm: media.DefaultPixelsPerEm,
		logger:  zerolog.Nop(),
	}
}

// WithBoundaries overrides the default pixel boundaries.
func WithBoundaries(b Boundaries) Option {
	return func(c *config) {
		c.bounds = b
	}
}

// WithPixelsPerEm sets the em size used to write the queries.
func WithPixelsPerEm(px float64) Option {
	return func(c *config) {
		if px > 0 {
			c.pxPerEm = px
		}
	}
}

// WithCapabilityProbe adds a media-query capability check on top of the
// host's own. The engine runs in legacy mode when either reports false.
func WithCapabilityProbe(probe func() bool) Option {
	return func(c *config) {
		c.probe = probe
	}
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// DocumentProbe reports no media-query support when the document body
// carries LegacyClass.
func DocumentProbe(doc *dom.Document) func() bool {
	return func() bool {
		body := doc.Body()
		return body == nil || !body.HasClass(LegacyClass)
	}
}
