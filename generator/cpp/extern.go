package cpp

import (
	"strings"

	"github.com/wippyai/qtbind/generator/internal/writer"
	"github.com/wippyai/qtbind/ir"
)

// ExternsHeaderName and ExternsSourceName hold the signal glue of extern
// objects. They exist only when f declares extern objects.
func ExternsHeaderName(f *ir.File) string {
	return f.Package + "_externs.qtbind.h"
}

func ExternsSourceName(f *ir.File) string {
	return f.Package + "_externs.qtbind.cpp"
}

// Externs renders handler types and Connect functions for the signals of
// existing native objects. Connections never take a lock: the objects are
// not generated, so they carry none.
func Externs(f *ir.File, opts Options) (Unit, bool) {
	if len(f.Externs) == 0 {
		return Unit{}, false
	}

	type extern struct {
		n names
		b *Blocks
	}
	all := make([]extern, 0, len(f.Externs))
	includes := &Blocks{}
	includes.Include("<QtCore/QMetaObject>", "<qtbind/convert.h>", "<qtbind/maybelockguard.h>", "<qtbind/signalhandler.h>")
	for i := range f.Externs {
		e := &f.Externs[i]
		o := e.Object()
		n := newNames(o)
		b := &Blocks{}
		for j := range o.Signals {
			signalHandler(o, n, &o.Signals[j], b)
		}
		if inc := e.NativeInclude(); inc != "" {
			includes.Include(inc)
		}
		all = append(all, extern{n: n, b: b})
	}

	h := writer.New(indent)
	h.Line(Banner)
	h.Line("#pragma once")
	h.Blank()
	for _, inc := range includes.Includes() {
		h.Linef("#include %s", inc)
	}
	for _, x := range all {
		h.Blank()
		h.Linef("namespace %s {", x.n.internal)
		for _, d := range x.b.ForwardDeclares {
			h.Line(d)
		}
		for _, d := range x.b.Declarations {
			h.Blank()
			h.Block(d)
		}
		h.Linef("} // namespace %s", x.n.internal)
	}

	s := writer.New(indent)
	s.Line(Banner)
	s.Linef("#include \"%s%s\"", opts.IncludePrefix, ExternsHeaderName(f))
	for _, x := range all {
		s.Blank()
		s.Linef("namespace %s {", strings.TrimPrefix(Runtime, "::"))
		for i, r := range x.b.Runtime {
			if i > 0 {
				s.Blank()
			}
			s.Block(r)
		}
		s.Linef("} // namespace %s", strings.TrimPrefix(Runtime, "::"))
		s.Blank()
		s.Linef("namespace %s {", x.n.internal)
		for i, fn := range x.b.Free {
			if i > 0 {
				s.Blank()
			}
			s.Block(fn)
		}
		s.Linef("} // namespace %s", x.n.internal)
	}
	return Unit{Header: h.String(), Source: s.String()}, true
}
