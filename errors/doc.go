// Package errors provides structured error types for qtbind.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes the object and member the error refers to, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindMissingNotify).
//		Object("MyObject").
//		Member("count").
//		Detail("writable property has no notify signal").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DuplicateName("MyObject", "signal", "ready")
//	err := errors.ObjectDestroyed("MyObject")
//
// Runtime failures can be matched against the sentinels:
//
//	if errors.Is(err, qerrors.ErrObjectDestroyed) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
