// Package qobject is the object framework generated host glue runs on.
//
// An Object models the native half of a bridged type: it has affinity to
// one event loop, a lock serializing host logic, named signals and a
// lifecycle:
//
//	none -> base -> host -> initialized -> destroyed
//
// Construct drives the first three transitions for every constructor
// variant in a fixed order. The native base class is constructed first,
// then the host companion is allocated, then the initialize hook runs with
// the object fully formed.
//
// Property setters that change a value call RequestNotify, which emits the
// change signal from the loop after the setter has released the lock.
// Setting a property to its current value emits nothing.
//
// Destroy invalidates every cross-thread handle before running destroy
// hooks and tearing down connections, so work queued from other goroutines
// never observes a half-destroyed object.
package qobject
