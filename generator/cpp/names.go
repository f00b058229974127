package cpp

import (
	"strconv"
	"strings"

	"github.com/wippyai/qtbind/generator/internal/writer"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
)

// Runtime is the namespace of the embedded runtime headers.
const Runtime = "::qtbind"

const indent = "  "

// names are the C++ identifiers derived from one object.
type names struct {
	class     string // MyObject
	qualified string // ::ns::MyObject
	ns        string // ns, empty for the global namespace
	internal  string // ns::qtbind_my_object
	host      string // MyObjectHost
	base      string
}

func newNames(o *ir.Object) names {
	internal := "qtbind_" + o.Stem()
	if o.Namespace != "" {
		internal = o.Namespace + "::" + internal
	}
	return names{
		class:     o.Name,
		qualified: o.QualifiedName(),
		ns:        o.Namespace,
		internal:  internal,
		host:      o.HostTypeName(),
		base:      o.BaseClass(),
	}
}

// in qualifies id with the internal namespace.
func (n names) in(id string) string {
	return "::" + n.internal + "::" + id
}

func (n names) thread() string {
	return n.class + "CxxQtThread"
}

func (n names) hostType() string {
	return Runtime + "::Type<" + n.in(n.host) + ">"
}

func (n names) guard() string {
	return "const " + Runtime + "::MaybeLockGuard<" + n.qualified + "> guard"
}

func (n names) signalParams(s *ir.Signal) string {
	return n.class + "CxxQtSignalParams" + s.Name
}

func (n names) signalHandler(s *ir.Signal) string {
	return n.class + "CxxQtSignalHandler" + s.Name
}

func (n names) entry(member string) string {
	return n.class + "_" + member
}

// paramList renders "T a, U b".
func paramList(params []ir.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = marshal.NativeType(p.Type) + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

// paramTypes renders "T, U".
func paramTypes(params []ir.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = marshal.NativeType(p.Type)
	}
	return strings.Join(parts, ", ")
}

// forward renders the arguments passed on to host glue, moving values,
// passing references through and converting parameters whose host pass mode
// differs.
func forward(params []ir.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		host := p.Type.HostSide()
		parts[i] = move(p.Name, p.Type)
		if marshal.Select(p.Type, host) != marshal.Identity {
			parts[i] = convertTo(host, p.Type, parts[i])
		}
	}
	return strings.Join(parts, ", ")
}

// hostParamList renders parameters as host glue declares them.
func hostParamList(params []ir.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = marshal.NativeType(p.Type.HostSide()) + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

func move(name string, t ir.TypeRef) string {
	switch t.Pass {
	case ir.PassConstRef, ir.PassRef:
		return name
	default:
		return "::std::move(" + name + ")"
	}
}

// convert wraps expr, produced by host glue in the host pass mode of t, in
// the runtime conversion to the native spelling of t.
func convert(t ir.TypeRef, expr string) string {
	return convertTo(t, t.HostSide(), expr)
}

// convertTo converts expr spelled as src into dst. The strategy is picked
// from the pass modes alone.
func convertTo(dst, src ir.TypeRef, expr string) string {
	to := marshal.NativeType(dst)
	from := to
	if marshal.Select(src, dst) != marshal.Identity {
		from = marshal.NativeType(src)
	}
	return Runtime + "::convert<" + to + ", " + from + ">(" + expr + ")"
}

func returnType(t *ir.TypeRef) string {
	if t == nil {
		return "void"
	}
	return marshal.NativeType(*t)
}

// hostReturnType spells the return type of the host glue entry point.
func hostReturnType(t *ir.TypeRef) string {
	if t == nil {
		return "void"
	}
	return marshal.NativeType(t.HostSide())
}

// synthetic names positional constructor arguments arg0, arg1, ...
func synthetic(types []ir.TypeRef) []ir.Param {
	out := make([]ir.Param, len(types))
	for i, t := range types {
		out[i] = ir.Param{Name: "arg" + strconv.Itoa(i), Type: t}
	}
	return out
}

func selfRef(n names, mutable bool) string {
	if mutable {
		return n.qualified + "& self"
	}
	return n.qualified + " const& self"
}

func withSelf(self string, rest string) string {
	if rest == "" {
		return self
	}
	return self + ", " + rest
}

// definition renders a function definition with the return type on its
// own line and the body indented one level.
func definition(ret, signature string, body ...string) string {
	w := writer.New(indent)
	if ret != "" {
		w.Line(ret)
	}
	w.Line(signature)
	w.Line("{")
	w.Indent()
	for _, stmt := range body {
		if stmt == "" {
			w.Line("")
			continue
		}
		w.Block(stmt)
	}
	w.Dedent()
	w.Line("}")
	return w.String()
}
