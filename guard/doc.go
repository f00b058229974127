// Package guard implements the guarded pointer shared between a native
// object and every cross-thread handle to it.
//
// The pointer is Live until the owner invalidates it during destruction;
// Invalidated is terminal. Readers take the shared lock for the duration of
// a Read, so invalidation waits for them and no reader ever observes a
// freed object:
//
//	g := guard.New(obj)
//	g.Read(func(o *Object) { ... }) // false once invalidated
//	g.Invalidate()                   // on the owning loop, during destroy
//
// The guard is shared by reference and kept alive by the garbage collector
// for as long as any handle holds it.
//
// Invalidating from inside a Read on the same goroutine deadlocks.
// Destruction therefore runs on the owning loop, never inside a Read.
package guard
