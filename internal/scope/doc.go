// Package scope assigns stateful objects a unique scope tag.
//
// A scope tag namespaces every event binding an object creates, so that the
// object can later remove exactly its own bindings from a shared target
// without holding on to the handler values it registered.
//
//	type Carousel struct {
//	    scope.Identity
//	}
//
//	c := &Carousel{Identity: scope.NewIdentity()}
//	c.ScopeTag() // "5f0c6c1e-..."
//
// Handlers invoked on behalf of a subscriber receive it through their
// context; use FromContext to recover it.
package scope
