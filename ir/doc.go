// Package ir is the binding model shared by the front-end and the generator.
//
// A File describes one bridge module: the native objects to generate, the
// namespace-level enums, the inline value types whose layout must match on
// both sides, and the declarative UI module objects register into.
//
// The model is pure data. It is built once per compilation, normalized with
// Normalize, checked with Validate, and read-only afterwards:
//
//	f, err := ir.LoadFile("bridge.yaml")
//	if err != nil {
//	    return err
//	}
//	for i := range f.Objects {
//	    obj := &f.Objects[i]
//	    fmt.Println(obj.QualifiedName(), len(obj.AllSignals()))
//	}
//
// # Derived names
//
// Property accessor names follow the native framework convention:
//
//	count -> getCount / setCount / countChanged
//
// Explicit Read/Write/Notify names in the IR override the derived ones.
// Constant properties have no setter and no notify signal; read-only
// properties have no setter.
package ir
