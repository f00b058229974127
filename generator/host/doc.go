// Package host generates the Go side of a binding.
//
// For every object it emits a companion type embedding *qobject.Object,
// a Logic interface the application implements, typed property accessors,
// Connect and Emit helpers per signal, constructors wired through
// qobject.Construct and a reflection record for registration. Value types
// get Go definitions plus compile-time layout assertions, so a drifting
// definition fails the build rather than corrupting memory at runtime.
//
// All output is gofmt-formatted.
package host
