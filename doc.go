// Package qtbind generates Qt C++ bindings for objects whose logic is
// written in Go, and provides the Go runtime the generated glue links
// against.
//
// A bridge module is described by an IR file. The generator turns it into a
// C++ header/source pair per object, a Go host stub per object, shared type
// and layout files, an optional QML extension plugin, and the runtime
// headers the generated C++ includes.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	qtbind/
//	├── ir/             Binding model, YAML/JSON loader, normalization, validation
//	├── generator/      IR to generated files (cpp/, host/, headers/)
//	├── marshal/        Conversion strategies and value type layout proofs
//	├── guard/          Guarded object pointer with an explicit lifecycle
//	├── locking/        Reentrant per-object lock
//	├── handle/         Cross-thread handles and the per-object task queue
//	├── eventloop/      Single-goroutine event loops tasks are posted to
//	├── threading/      Thread handles for queuing work onto an object's loop
//	├── signal/         Signal handler boxes, connections and emission
//	├── qobject/        In-process object framework the generated stubs target
//	├── meta/           Meta objects and the QML type registry
//	├── errors/         Structured error types
//	└── cmd/qtbindgen/  Command line front-end
//
// # Quick Start
//
// Generate bindings from an IR file:
//
//	qtbindgen generate --ir bridge.yaml --out build/gen --headers
//
// Or from Go:
//
//	f, err := ir.LoadFile("bridge.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := generator.Generate(f, generator.Options{Headers: true})
//	if err := out.Write("build/gen"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Threading
//
// Every object lives on one event loop. Direct calls must happen on that
// loop; other goroutines go through a thread handle, which queues tasks in
// FIFO order and drops them once the object is destroyed:
//
//	th, err := obj.QtThread()
//	if err != nil {
//	    return err
//	}
//	err = th.Queue(func(ctx context.Context, o *MyObject) {
//	    o.SetCount(ctx, 42)
//	})
//	if errors.Is(err, qerrors.ErrObjectDestroyed) {
//	    // the object is gone; nothing was queued
//	}
//
// Host logic runs under the object's recursive lock unless the object opts
// out of locking. Signals emitted from host logic are delivered through the
// loop, after the lock is released.
package qtbind
