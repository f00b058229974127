// Package meta is the reflection and registration layer.
//
// FromIR turns an IR object into a MetaObject: the class name, super class
// and the properties, signals, invokables and enums the reflection system
// exposes. A Registry records which meta objects are registered into which
// declarative UI module:
//
//	reg := meta.NewRegistry()
//	err := reg.RegisterType("com.example.app", 1, 0, meta.FromIR(obj))
//	r, ok := reg.Lookup("com.example.app", "MyObject")
//
// Registering the same element twice in one module fails. The numeric
// type aliases used by the reflection system are installed once per
// process, on first use.
package meta
