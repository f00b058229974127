// Package writer is the indenting text writer shared by the C++ and Go
// emitters.
package writer
