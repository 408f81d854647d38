package config

import (
	"errors"
	"math"

	"github.com/iamdavidjackson/prototype-base/internal/breakpoint"
	"github.com/iamdavidjackson/prototype-base/internal/logging"
	"github.com/iamdavidjackson/prototype-base/internal/media"
	"github.com/iamdavidjackson/prototype-base/internal/page"
)

// Config is the complete runtime configuration.
type Config struct {
	Breakpoints BreakpointsConfig `toml:"breakpoints" yaml:"breakpoints"`
	Viewport    ViewportConfig    `toml:"viewport" yaml:"viewport"`
	Log         LogConfig         `toml:"log" yaml:"log"`
}

// BreakpointsConfig holds the breakpoint boundaries in pixels.
type BreakpointsConfig struct {
	MediumMin int     `toml:"medium_min" yaml:"medium_min"`
	LargeMin  int     `toml:"large_min" yaml:"large_min"`
	PxPerEm   float64 `toml:"px_per_em" yaml:"px_per_em"`
}

// ViewportConfig controls how the terminal maps onto a viewport.
type ViewportConfig struct {
	// CellWidthPx is the pixel width assumed for one terminal cell.
	CellWidthPx int `toml:"cell_width_px" yaml:"cell_width_px"`
	// Legacy marks the document body with the legacy class, which
	// disables media query support.
	Legacy bool `toml:"legacy" yaml:"legacy"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty means discard.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Breakpoints: BreakpointsConfig{
			MediumMin: breakpoint.DefaultBoundaries.MediumMin,
			LargeMin:  breakpoint.DefaultBoundaries.LargeMin,
			PxPerEm:   media.DefaultPixelsPerEm,
		},
		Viewport: ViewportConfig{
			CellWidthPx: page.DefaultCellWidth,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and joins all violations. Each violation
// is a *ValidationError.
func (c Config) Validate() error {
	var errs []error
	reject := func(key string, value any, reason string) {
		errs = append(errs, &ValidationError{Key: key, Value: value, Reason: reason})
	}

	b := c.Boundaries()
	if err := b.Validate(); err != nil {
		reject("breakpoints", b, err.Error())
	}
	if c.Breakpoints.PxPerEm <= 0 || math.IsInf(c.Breakpoints.PxPerEm, 0) || math.IsNaN(c.Breakpoints.PxPerEm) {
		reject("breakpoints.px_per_em", c.Breakpoints.PxPerEm, "must be a positive number")
	}
	if c.Viewport.CellWidthPx <= 0 {
		reject("viewport.cell_width_px", c.Viewport.CellWidthPx, "must be positive")
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		reject("log.level", c.Log.Level, "unknown level")
	}
	return errors.Join(errs...)
}

// Boundaries returns the configured breakpoint boundaries.
func (c Config) Boundaries() breakpoint.Boundaries {
	return breakpoint.Boundaries{
		MediumMin: c.Breakpoints.MediumMin,
		LargeMin:  c.Breakpoints.LargeMin,
	}
}

// BreakpointOptions returns the engine options implied by c.
func (c Config) BreakpointOptions() []breakpoint.Option {
	return []breakpoint.Option{
		breakpoint.WithBoundaries(c.Boundaries()),
		breakpoint.WithPixelsPerEm(c.Breakpoints.PxPerEm),
	}
}

// PageOptions returns the page options implied by c.
func (c Config) PageOptions() []page.Option {
	return []page.Option{
		page.WithCellWidth(c.Viewport.CellWidthPx),
		page.WithBreakpointOptions(c.BreakpointOptions()...),
	}
}
