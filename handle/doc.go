// Package handle keeps host values reachable from the native side.
//
// Native code never holds Go pointers. Anything it must refer to, such as
// the host companion of an object or a boxed signal handler, is inserted
// into a Table and referenced by an integer Handle:
//
//	h := handle.Global().Insert(handle.KindHandler, fn)
//	fn, ok := handle.Lookup[func(context.Context, int32)](handle.Global(), h)
//	handle.Global().Remove(h)
//
// Handle 0 is reserved and always invalid. Released slots are reused under
// a new generation, so a copy of a released handle never resolves to the
// value that took its slot.
//
// # Borrows
//
// A handle lent for the duration of a call is borrowed. Removing a borrowed
// handle is deferred until the last borrow is returned.
//
// # Cleanup
//
// Values implementing Dropper have Drop called exactly once, when their
// handle is released. Observers see every create, drop and borrow event;
// the global table logs them at debug level.
package handle
