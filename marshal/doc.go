// Package marshal defines the value marshalling contract between host logic
// and native objects.
//
// # Conversions
//
// A conversion is chosen from the static (source, destination) pass-mode
// pair, never by inspecting values, so the generator can pick it when it
// emits code:
//
//	value     -> value      Identity
//	owned     -> value      UnwrapOwned  (move out of the owner)
//	value     -> owned      BoxValue     (copy into new storage)
//	ref/value -> const_ref  Borrow       (no copy)
//
// The Go side of each specialization is a small generic function
// (Same, Unwrap, Box, Lend) used by generated host glue.
//
// # Layout proofs
//
// Value types stored inline on both sides must have the same size,
// alignment and field offsets. LayoutCalculator computes the native layout
// of an IR value type; CheckHost and AssertLayout compare it against the Go
// definition:
//
//	if err := marshal.AssertLayout[Point](&vt); err != nil {
//	    return err // [layout] layout_mismatch ...
//	}
//
// Generated code additionally carries compile-time assertions so that a
// mismatch is a build failure rather than a runtime error.
package marshal
