package signal

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/wippyai/qtbind/handle"
)

// HandlerBox is the type-erased, move-only holder of a signal handler
// closure. It is two machine words: the handle of the closure in the
// global table and the id of the glue that knows its parameter types.
// Native code stores boxes inline and may relocate them with memcpy.
type HandlerBox struct {
	data [2]uintptr
}

var (
	_ = [1]struct{}{}[unsafe.Sizeof(HandlerBox{})-2*unsafe.Sizeof(uintptr(0))]
	_ = [1]struct{}{}[unsafe.Alignof(HandlerBox{})-unsafe.Alignof(uintptr(0))]
)

// Words returns the raw words for handing the box to native code.
func (b *HandlerBox) Words() [2]uintptr {
	return b.data
}

// FromWords rebuilds a box received from native code.
func FromWords(w [2]uintptr) HandlerBox {
	return HandlerBox{data: w}
}

// IsEmpty reports whether the box holds nothing, as after Take or Drop.
func (b *HandlerBox) IsEmpty() bool {
	return b.data[0] == 0 && b.data[1] == 0
}

// Take moves the contents out and leaves b empty.
func (b *HandlerBox) Take() HandlerBox {
	moved := *b
	*b = HandlerBox{}
	return moved
}

// Drop releases the closure. Dropping an empty box does nothing, so a box
// is dropped at most once.
func (b *HandlerBox) Drop() {
	if b.IsEmpty() {
		return
	}
	handle.Global().Remove(handle.Handle(b.data[0]))
	*b = HandlerBox{}
}

// Glue is the per-parameter-pack call glue of a signal. Generated code
// registers one per signal signature.
type Glue[A any] struct {
	name string
	id   uintptr
}

type glueEntry struct {
	glue any
	args reflect.Type
}

var (
	glueMu    sync.Mutex
	glueNames = make(map[string]glueEntry)
	glueNext  uintptr
)

// RegisterGlue returns the glue for handlers taking A. Registering the same
// name twice returns the same glue; reusing a name for different
// parameters panics.
func RegisterGlue[A any](name string) *Glue[A] {
	glueMu.Lock()
	defer glueMu.Unlock()

	args := reflect.TypeFor[A]()
	if e, ok := glueNames[name]; ok {
		if e.args != args {
			panic(fmt.Sprintf("signal: glue %q registered for %s, not %s", name, e.args, args))
		}
		return e.glue.(*Glue[A])
	}

	glueNext++
	g := &Glue[A]{name: name, id: glueNext}
	glueNames[name] = glueEntry{glue: g, args: args}
	return g
}

func (g *Glue[A]) Name() string {
	return g.name
}

// Box stores fn and returns the box owning it.
func (g *Glue[A]) Box(fn func(ctx context.Context, args A)) HandlerBox {
	h := handle.Global().Insert(handle.KindHandler, fn)
	if h == 0 {
		return HandlerBox{}
	}
	return HandlerBox{data: [2]uintptr{uintptr(h), g.id}}
}

// Call invokes the closure in b. It returns false when b is empty, was
// boxed by different glue or its closure was already released. The closure
// stays pinned while it runs, so a handler that disconnects itself is
// released only after it returns.
func (g *Glue[A]) Call(ctx context.Context, b *HandlerBox, args A) bool {
	if b.IsEmpty() || b.data[1] != g.id {
		return false
	}
	table := handle.Global()
	h := handle.Handle(b.data[0])
	if !table.Borrow(h) {
		return false
	}
	defer table.ReturnBorrow(h)

	fn, ok := handle.Lookup[func(context.Context, A)](table, h)
	if !ok {
		return false
	}
	fn(ctx, args)
	return true
}

// Void is the parameter pack of signals without arguments.
type Void = struct{}
