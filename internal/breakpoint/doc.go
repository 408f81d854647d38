// Package breakpoint classifies the viewport into three mutually exclusive
// widths (small, medium and large) and publishes the transitions as
// events.
//
// The engine is pub/sub-capable. Subscribers bind to the six topics
//
//	small.entry  small.exit
//	medium.entry medium.exit
//	large.entry  large.exit
//
// and the engine replays the current state to every new listener, before
// the bind call returns: a handler bound to large.entry while the viewport
// is already large runs immediately. Without that replay a late subscriber
// would not hear about the current state until the next real transition.
//
// Hosts without live media queries are treated as permanently large:
// only large.entry, small.exit and medium.exit are replayed, and no
// transitions are ever published.
package breakpoint
