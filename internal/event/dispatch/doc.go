// Package dispatch runs event handlers.
//
// All delivery is synchronous: handlers execute on the caller's goroutine,
// which in a page session is the host event loop. The Executor recovers
// panics so that a misbehaving handler surfaces as an error from the emit
// or dispatch call instead of tearing down the loop.
//
//	d := dispatch.NewSyncDispatcher(
//	    dispatch.WithPanicHandler(func(event any, v any, stack []byte) {
//	        log.Error().Interface("panic", v).Bytes("stack", stack).Msg("handler panicked")
//	    }),
//	)
//	if res := d.Dispatch(ctx, evt, h); !res.IsSuccess() {
//	    return res.Err()
//	}
package dispatch
