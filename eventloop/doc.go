// Package eventloop provides the cooperative event loop that owns native
// objects.
//
// Every object has affinity to one Loop. Work for the object that arrives
// from other goroutines is posted to the loop and runs there in FIFO order:
//
//	loop := eventloop.New().WithName("main").WithCapacity(1024)
//	go loop.Run(ctx)
//
//	if err := loop.Post(func(ctx context.Context) { ... }); err != nil {
//	    // errors.ErrLoopStopped or errors.ErrQueueFull
//	}
//
// Post never blocks. Tasks receive a context tagged with the loop, so code
// can tell whether it is already running on the owning loop:
//
//	if loop.OnLoop(ctx) { /* deliver directly */ }
//
// Tests drive a loop deterministically with Drain instead of Run.
//
// A panicking task is logged and does not stop the loop.
package eventloop
