package cpp

import (
	"fmt"

	"github.com/wippyai/qtbind/ir"
)

func generateThreading(o *ir.Object, n names) *Blocks {
	b := &Blocks{}
	if !o.Threading {
		return b
	}
	mixin := Runtime + "::Threading<" + n.qualified + ">"

	b.Include("<qtbind/thread.h>")
	b.Preamble = append(b.Preamble,
		fmt.Sprintf("using %s = %s::Thread<%s>;", n.thread(), Runtime, n.class))
	b.BaseClasses = append(b.BaseClasses, "public "+mixin)
	b.Initializers = append(b.Initializers, mixin+"(this)")
	b.Methods = append(b.Methods, Fragment{
		Header: n.thread() + " qtThread() const;",
		Source: definition(n.thread(), n.class+"::qtThread() const",
			"return threadHandle();"),
	})
	// Handles must observe destruction before any member is torn down.
	b.Destructor = append(b.Destructor, "invalidateThread();")
	return b
}

func generateLocking(o *ir.Object) *Blocks {
	b := &Blocks{}
	b.Include("<qtbind/maybelockguard.h>")
	if o.Locking() {
		b.Include("<qtbind/locking.h>")
		b.BaseClasses = append(b.BaseClasses, "public "+Runtime+"::Locking")
	} else {
		b.BaseClasses = append(b.BaseClasses, "public "+Runtime+"::NoLocking")
	}
	return b
}
