package cpp

import (
	"fmt"

	"github.com/wippyai/qtbind/ir"
)

// generateCasting emits the pointer casts between the object and its
// native base that host glue uses to upcast and downcast.
func generateCasting(o *ir.Object, n names) *Blocks {
	b := &Blocks{}
	b.Include("<qtbind/casting.h>")

	upcast := fmt.Sprintf("%s(%s const* thiz)", n.entry("upcastPtr"), n.qualified)
	downcast := fmt.Sprintf("%s(%s const* base)", n.entry("downcastPtr"), n.base)

	b.Declarations = append(b.Declarations,
		n.base+" const* "+upcast+";",
		n.qualified+" const* "+downcast+";")
	b.Free = append(b.Free,
		definition(n.base+" const*", upcast,
			fmt.Sprintf("return %s::upcastPtr<%s, %s>(thiz);", Runtime, n.qualified, n.base)),
		definition(n.qualified+" const*", downcast,
			fmt.Sprintf("return %s::downcastPtr<%s, %s>(base);", Runtime, n.qualified, n.base)))
	return b
}
