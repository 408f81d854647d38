// Package dom is the host DOM event primitive: an element tree parsed with
// golang.org/x/net/html plus namespaced, optionally delegated event
// listeners.
//
// Event specs are whitespace-separated tokens of the form type[.namespace]:
//
//	el.On("click keydown.menu", "", h)   // direct
//	el.On("click", "li > a", h)          // delegated to matching descendants
//	el.Off(".menu", "")                  // every listener in namespace menu
//
// Dispatch bubbles an event from its target to the root. Listeners run on
// the dispatching goroutine and may add or remove listeners while running.
package dom
