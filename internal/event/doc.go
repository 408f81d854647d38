// Package event provides the pub/sub side of the page's event plumbing.
//
// An Emitter is a pub/sub-capable event target: subscribers register
// handlers against topic patterns and the Emitter delivers emitted events
// to them synchronously, in priority order, on the emitting goroutine.
// Every subscription records the scope tag of the subscriber that owns
// it, and handlers receive that subscriber through their context (see
// scope.FromContext).
//
// # Capabilities
//
// Target is the capability interface the binding layer checks for when it
// decides whether a value is pub/sub-capable. ListenerHook is an optional
// second capability: a Target that implements it is told synchronously
// whenever a subscriber binds to or unbinds from it, which lets it react
// to the new listener (the breakpoint engine uses this to replay its
// current state).
//
//	em := event.NewEmitter(event.WithSource("carousel"))
//	sub, err := em.Subscribe(owner, "slide.changed", event.HandlerFunc(
//	    func(ctx context.Context, evt any) error {
//	        env := evt.(event.Envelope)
//	        fmt.Println(env.Payload)
//	        return nil
//	    }))
//	_ = em.Emit(ctx, "slide.changed", 3)
//	_ = em.Unsubscribe(sub)
//
// # Errors
//
// Emit never swallows handler failures: errors and recovered panics from
// every handler are wrapped in *HandlerError and joined into the returned
// error.
//
// # Subpackages
//
//   - topic: event names and wildcard matching
//   - dispatch: handler execution with panic recovery
package event
