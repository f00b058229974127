// Package cpp generates the native side of a binding: one header and one
// source file per object, a shared header for namespace-level enums and
// value type layout checks, and the QML extension plugin.
//
// Each feature (properties, signals, invokables, inherited methods,
// constructors, threading, locking, enums, QML) contributes a Blocks value.
// The merged blocks are rendered into the class declaration and the
// out-of-line definitions:
//
//	unit := cpp.Object(f, &f.Objects[0], cpp.Options{IncludePrefix: "qtbind-gen/"})
//	os.WriteFile(cpp.HeaderName(obj), []byte(unit.Header), 0o644)
//
// Generated code calls host entry points declared in the object's internal
// namespace (ns::qtbind_<stem>) and relies on the runtime headers under
// qtbind/ for locking, threading, signal handler boxes and conversions.
//
// Generation is total over validated IR and deterministic.
package cpp
