// Package locking provides the per-object lock that serializes host logic.
//
// Native code can call into host logic directly, and host logic can emit a
// signal whose direct handler calls back into the same object. A plain
// mutex would deadlock there, so objects use a RecursiveMutex whose holder
// identity travels in the context:
//
//	ctx, unlock := mu.Lock(ctx)
//	defer unlock()
//	logic.Increment(ctx) // may re-enter mu.Lock(ctx) without blocking
//
// Objects that opt out of locking use None, which satisfies the same
// Locker interface and does nothing.
package locking
