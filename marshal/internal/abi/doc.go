// Package abi provides internal arithmetic helpers for native layout
// calculation: alignment rounding and overflow-checked offsets.
//
// This package is internal to marshal.
package abi
