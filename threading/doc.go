// Package threading implements the cross-thread handle of objects that
// opt into threading.
//
// A Handle shares the object's guarded pointer, recursive lock and owning
// loop. Any goroutine may clone it and queue work:
//
//	h := threading.New("MyObject", g, mu, loop)
//	go func(h *threading.Handle[MyObject]) {
//	    err := h.Queue(func(ctx context.Context, o *MyObject) {
//	        o.SetCount(ctx, o.Count()+1)
//	    })
//	    if errors.Is(err, qerrors.ErrObjectDestroyed) {
//	        return // the object is gone, nothing to do
//	    }
//	}(h.Clone())
//
// Queued work runs on the owning loop under the object's lock. Queueing
// holds the guard's shared lock only for the duration of the post, so it
// never waits for the loop.
//
// # Failure modes
//
// A destroyed object yields ErrObjectDestroyed, which callers are expected
// to handle. A failure to post to a live object's loop means the runtime is
// broken; it is reported through the FatalHandler, which panics by default.
package threading
