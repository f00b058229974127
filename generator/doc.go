// Package generator turns a validated binding model into the files of a
// build: per object a native header, a native source and a Go companion
// stub, plus shared value type files, the QML extension plugin and,
// optionally, the embedded runtime headers.
//
//	f, err := ir.LoadFile("bridge.yaml")
//	if err != nil {
//	    return err
//	}
//	out := generator.Generate(f, generator.Options{Headers: true})
//	return out.Write("build/gen")
//
// File names derive from object identity only:
//
//	MyObject -> my_object.qtbind.h, my_object.qtbind.cpp, my_object_qtbind.go
//
// Extern objects of a package share one set of files,
// <pkg>_externs.qtbind.h, <pkg>_externs.qtbind.cpp and <pkg>_externs_qtbind.go.
//
// Generation cannot fail on validated input. Errors are only reported when
// writing.
package generator
