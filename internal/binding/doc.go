// Package binding is the dual-target event dispatcher. One call binds a
// subscriber's handler either to a pub/sub-capable target (event.Target)
// or to a DOM-capable element (Element), and every binding is namespaced
// by the subscriber's scope tag so it can be removed without touching
// anyone else's handlers.
//
// Pub/sub targets that also implement event.ListenerHook are told,
// synchronously and before Bind returns, that a listener was added. This
// is what lets the breakpoint engine replay its current state to late
// subscribers.
//
// DOM registrations use the physical event name type.<scopeTag>. The
// Dispatcher additionally records the returned listener handles keyed by
// (target, event, owner, selector), so Unbind is a lookup rather than a
// scan.
package binding
