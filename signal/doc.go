// Package signal implements signal connections between native objects and
// host closures.
//
// A host closure connected to a signal is stored in a HandlerBox, a
// two-word, move-only value that native code keeps inline in its
// connection list. The box refers to the closure through the global handle
// table and to the Glue that knows the signal's parameter types:
//
//	var dataChanged = signal.RegisterGlue[DataChangedArgs]("MyObject::dataChanged")
//
//	sig := signal.New("dataChanged", dataChanged, loop, mu)
//	conn := sig.ConnectFunc(func(ctx context.Context, a DataChangedArgs) {
//	    ...
//	}, signal.Auto)
//	defer conn.Disconnect()
//
// # Delivery
//
// Direct connections run the handler synchronously under the receiver's
// recursive lock, so a handler may call back into the emitting object.
// Queued connections post the call to the receiver's loop. Auto selects
// Direct when the emitting context is already on the receiver's loop.
// BlockingQueued posts and waits for the handler.
//
// Disconnecting drops the box exactly once. Queued calls that reach the
// loop after a disconnect are skipped.
package signal
