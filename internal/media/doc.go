// Package media is the host media-query primitive: a viewport whose width
// is driven by the host, and query lists that evaluate against it and
// notify listeners when their match state flips.
//
// Only the width features are understood:
//
//	(max-width: 47.9375em)
//	(min-width: 48em) and (max-width: 59.9375em)
//	only screen and (min-width: 960px)
//
// Lengths may be given in px, em or rem. em and rem resolve against the
// viewport's PixelsPerEm, which defaults to 16. A comma-separated list
// matches when any of its queries matches.
//
// A Viewport may be constructed as unsupported, modelling hosts without a
// live media-query capability. MatchMedia then fails with ErrUnsupported
// and callers are expected to fall back on fixed behavior.
package media
