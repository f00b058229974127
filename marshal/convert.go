package marshal

import (
	"runtime"

	"github.com/wippyai/qtbind/handle"
	"github.com/wippyai/qtbind/ir"
)

// Strategy is one conversion specialization across the boundary.
type Strategy uint8

const (
	// Identity passes trivially representable values through unchanged.
	Identity Strategy = iota
	// UnwrapOwned moves a value out of an owned pointer.
	UnwrapOwned
	// BoxValue copies a value into new owned storage.
	BoxValue
	// Borrow turns a reference into a read-only borrow without copying.
	Borrow
)

func (s Strategy) String() string {
	switch s {
	case Identity:
		return "identity"
	case UnwrapOwned:
		return "unwrap_owned"
	case BoxValue:
		return "box_value"
	case Borrow:
		return "borrow"
	default:
		return "unknown"
	}
}

// HostFunc names the Go conversion used by generated host glue.
func (s Strategy) HostFunc() string {
	switch s {
	case UnwrapOwned:
		return "marshal.Unwrap"
	case BoxValue:
		return "marshal.Box"
	case Borrow:
		return "marshal.Lend"
	default:
		return ""
	}
}

// Select picks the conversion from the static pass modes of the source and
// destination types. It never inspects values.
func Select(src, dst ir.TypeRef) Strategy {
	switch {
	case src.Pass == dst.Pass:
		return Identity
	case src.Pass == ir.PassOwned && dst.Pass == ir.PassValue:
		return UnwrapOwned
	case src.Pass == ir.PassValue && dst.Pass == ir.PassOwned:
		return BoxValue
	case dst.Pass == ir.PassConstRef && src.Pass != ir.PassOwned:
		return Borrow
	default:
		return Identity
	}
}

// NativeType spells t the way it appears in native signatures.
func NativeType(t ir.TypeRef) string {
	switch t.Pass {
	case ir.PassOwned:
		return "::std::unique_ptr<" + t.Native + ">"
	case ir.PassConstRef:
		return t.Native + " const&"
	case ir.PassRef:
		return t.Native + "&"
	default:
		return t.Native
	}
}

// HostType spells t the way it appears in Go host signatures.
func HostType(t ir.TypeRef) string {
	switch t.Pass {
	case ir.PassOwned:
		return "*marshal.Owned[" + t.Host + "]"
	case ir.PassConstRef:
		if t.Kind == ir.KindOpaque {
			return t.Host
		}
		return "marshal.Ref[" + t.Host + "]"
	case ir.PassRef:
		return "*" + t.Host
	default:
		return t.Host
	}
}

// Owned is storage whose single owner may move the value out. The value is
// held in the global handle table as a KindValue entry, so its handle can
// cross the boundary in place of a pointer. Storage that is never taken is
// released when the owner becomes unreachable.
type Owned[T any] struct {
	h       handle.Handle
	cleanup runtime.Cleanup
}

// NewOwned copies v into fresh owned storage.
func NewOwned[T any](v T) *Owned[T] {
	o := &Owned[T]{h: handle.Global().Insert(handle.KindValue, &v)}
	if o.h != 0 {
		o.cleanup = runtime.AddCleanup(o, releaseOwned, o.h)
	}
	return o
}

func releaseOwned(h handle.Handle) {
	handle.Global().Remove(h)
}

// Handle returns the table handle of the stored value, 0 once moved out.
func (o *Owned[T]) Handle() handle.Handle {
	if o == nil {
		return 0
	}
	return o.h
}

// Valid reports whether the storage still holds a value.
func (o *Owned[T]) Valid() bool {
	if o == nil || o.h == 0 {
		return false
	}
	_, ok := handle.Global().GetKind(o.h, handle.KindValue)
	return ok
}

// Take moves the value out and leaves the storage empty.
func (o *Owned[T]) Take() (T, bool) {
	var zero T
	if o == nil || o.h == 0 {
		return zero, false
	}
	h := o.h
	o.h = 0
	o.cleanup.Stop()

	v, ok := handle.Global().GetKind(h, handle.KindValue)
	handle.Global().Remove(h)
	p, typed := v.(*T)
	if !ok || !typed {
		return zero, false
	}
	return *p, true
}

// Ref is a read-only borrow of a value owned elsewhere.
type Ref[T any] struct {
	p *T
}

// Get returns a copy of the borrowed value.
func (r Ref[T]) Get() T {
	var zero T
	if r.p == nil {
		return zero
	}
	return *r.p
}

// Valid reports whether the borrow points at a value.
func (r Ref[T]) Valid() bool {
	return r.p != nil
}

// Same passes v through.
func Same[T any](v T) T {
	return v
}

// Unwrap moves the value out of o. A moved-from owner yields the zero value.
func Unwrap[T any](o *Owned[T]) T {
	v, _ := o.Take()
	return v
}

// Box copies v into new owned storage.
func Box[T any](v T) *Owned[T] {
	return NewOwned(v)
}

// Lend borrows *p without copying.
func Lend[T any](p *T) Ref[T] {
	return Ref[T]{p: p}
}
