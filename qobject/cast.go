package qobject

import "github.com/wippyai/qtbind/handle"

// Upcast returns the base object. Generated companions embed *Object and
// inherit it, so any companion upcasts without a type switch.
func (o *Object) Upcast() *Object {
	return o
}

// Downcast returns the host companion of o when it is a *T. It fails
// before construction, after destruction and for companions of other types.
func Downcast[T any](o *Object) (*T, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := handle.Global().GetKind(o.Host(), handle.KindHostObject)
	if !ok {
		return nil, false
	}
	host, ok := v.(*T)
	return host, ok
}
