// Package layout computes the native memory layout of IR value types.
//
// This package computes size, alignment, and field offsets the way a
// standard-layout C++ struct is laid out on the target data model. The
// results are the reference the generated static assertions and the host
// side layout checks compare against.
//
// # Layout Rules
//
//   - Primitives: size equals alignment (i8=1, i32=4, i64=8, etc.)
//   - Pointers: pointer width of the data model (ILP32=4, LP64=8)
//   - Structs: fields laid out sequentially with padding for alignment,
//     total size rounded up to the largest field alignment
//   - Relocatable: true when every field is a primitive scalar
//
// # Usage
//
//	calc := layout.NewCalculator(layout.LP64)
//	info := calc.Calculate(valueType)
//	// info.Size, info.Align, info.FieldOffs available
//
// This package is internal to marshal.
package layout
