package host

import (
	"strings"

	"github.com/wippyai/qtbind/generator/internal/writer"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
)

// ExternsFileName holds the host views of the extern objects of f.
func ExternsFileName(f *ir.File) string {
	return f.Package + "_externs_qtbind.go"
}

// Externs renders a host view per extern object: its signals to connect
// to and the emit entry native emissions are delivered through. It reports
// false when f declares no extern objects.
func Externs(f *ir.File, opts Options) ([]byte, bool) {
	if len(f.Externs) == 0 {
		return nil, false
	}
	imports := map[string]bool{"context": true}
	var body strings.Builder
	for i := range f.Externs {
		e := &f.Externs[i]
		o := e.Object()
		s := &stub{
			f:       f,
			o:       o,
			opts:    opts,
			w:       writer.New("\t"),
			imports: imports,
			enums:   enumTypes(f),
			typ:     ir.GoName(o.Name),
			lower:   lowerFirst(ir.GoName(o.Name)),
		}
		s.use("eventloop")
		s.use("qobject")
		s.use("locking")
		s.use("signal")
		s.signalArgs()
		s.externView(e)
		s.signalMethods()
		for j := range o.Signals {
			for _, p := range o.Signals[j].Params {
				if strings.Contains(marshal.HostType(p.Type), "marshal.") {
					s.use("marshal")
				}
			}
		}
		body.WriteString(s.w.String())
	}
	return finish(f.Package, imports, body.String()), true
}

func (s *stub) externView(e *ir.ExternObject) {
	w := s.w
	w.Linef("// %s is the host view of the native %s.", s.typ, e.QualifiedName())
	w.Linef("type %s struct {", s.typ)
	w.Indent()
	w.Line("*qobject.Object")
	for i := range s.o.Signals {
		sig := &s.o.Signals[i]
		w.Linef("%s *signal.Signal[%s]", signalField(sig), s.argsType(sig))
	}
	w.Dedent()
	w.Line("}")
	w.Blank()

	w.Linef("// New%s creates the view of a %s living on loop. Handlers run", s.typ, e.Name)
	w.Line("// without a lock.")
	w.Linef("func New%s(loop *eventloop.Loop) *%s {", s.typ, s.typ)
	w.Indent()
	w.Linef("self := &%s{Object: qobject.New(%q, loop).WithLocker(locking.None{})}", s.typ, e.Name)
	for i := range s.o.Signals {
		sig := &s.o.Signals[i]
		w.Linef("self.%s = signal.New(%q, %s, loop, self.Locker())", signalField(sig), sig.Name, s.glue(sig))
		w.Linef("self.AddSignal(self.%s)", signalField(sig))
	}
	w.Line("return self")
	w.Dedent()
	w.Line("}")
	w.Blank()
}
