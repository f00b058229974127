package host

import (
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"

	"github.com/wippyai/qtbind/generator/internal/writer"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
	"github.com/wippyai/qtbind/meta"
)

// Banner starts every generated Go file.
const Banner = "// Code generated by qtbindgen. DO NOT EDIT."

// Options control the Go output.
type Options struct {
	// Runtime is the import path prefix of the runtime packages.
	Runtime string
	// Model is the data model layout assertions are computed for.
	Model marshal.DataModel
}

func (o Options) runtime(pkg string) string {
	r := o.Runtime
	if r == "" {
		r = DefaultRuntime
	}
	return r + "/" + pkg
}

func FileName(o *ir.Object) string {
	return o.Stem() + "_qtbind.go"
}

type stub struct {
	f       *ir.File
	o       *ir.Object
	opts    Options
	w       *writer.Writer
	imports map[string]bool
	enums   map[string]bool

	typ   string // exported companion type
	lower string // unexported prefix
}

func (s *stub) use(pkg string) string {
	s.imports[s.opts.runtime(pkg)] = true
	return pkg
}

// Object renders the Go companion of o. The result is gofmt-formatted when
// it parses; otherwise it is returned as rendered.
func Object(f *ir.File, o *ir.Object, opts Options) []byte {
	s := &stub{
		f:       f,
		o:       o,
		opts:    opts,
		w:       writer.New("\t"),
		imports: map[string]bool{"context": true},
		enums:   enumTypes(f),
		typ:     ir.GoName(o.Name),
		lower:   lowerFirst(ir.GoName(o.Name)),
	}
	s.use("eventloop")
	s.use("qobject")
	s.use("meta")

	s.enumsDecl()
	s.logic()
	s.signalArgs()
	s.companion()
	s.constructors()
	s.properties()
	s.signalMethods()
	s.invokables()
	s.threading()
	s.casting()
	s.metaObject()

	for _, t := range allHostTypes(o) {
		if strings.Contains(t, "marshal.") {
			s.use("marshal")
		}
	}
	return finish(f.Package, s.imports, s.w.String())
}

func finish(pkg string, imports map[string]bool, body string) []byte {
	w := writer.New("\t")
	w.Line(Banner)
	w.Blank()
	w.Linef("package %s", pkg)
	w.Blank()
	if len(imports) > 0 {
		paths := make([]string, 0, len(imports))
		for p := range imports {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		w.Line("import (")
		w.Indent()
		for _, p := range paths {
			w.Linef("%q", p)
		}
		w.Dedent()
		w.Line(")")
		w.Blank()
	}
	w.Raw(body)

	src := w.Bytes()
	if formatted, err := format.Source(src); err == nil {
		return formatted
	}
	return src
}

func enumTypes(f *ir.File) map[string]bool {
	out := make(map[string]bool)
	for i := range f.Enums {
		out[ir.GoName(f.Enums[i].Name)] = true
	}
	for i := range f.Objects {
		o := &f.Objects[i]
		for j := range o.Enums {
			out[ir.GoName(o.Name)+ir.GoName(o.Enums[j].Name)] = true
		}
	}
	return out
}

func allHostTypes(o *ir.Object) []string {
	var out []string
	add := func(params []ir.Param) {
		for _, p := range params {
			out = append(out, marshal.HostType(p.Type), marshal.HostType(p.Type.HostSide()))
		}
	}
	for _, p := range o.Properties {
		out = append(out, p.Type.Host)
	}
	for _, sig := range o.Signals {
		add(sig.Params)
	}
	for _, m := range o.Invokables {
		if m.PureNative {
			continue
		}
		add(m.Params)
		if m.Return != nil {
			out = append(out, marshal.HostType(*m.Return), marshal.HostType(m.Return.HostSide()))
		}
	}
	for _, c := range o.Constructors {
		for _, list := range [][]ir.TypeRef{c.Arguments, c.BaseArguments, c.NewArguments, c.InitializeArguments} {
			for _, t := range list {
				out = append(out, marshal.HostType(t))
			}
		}
	}
	return out
}

func (s *stub) enumsDecl() {
	for i := range s.o.Enums {
		writeEnum(s.w, s.typ, &s.o.Enums[i])
	}
}

func writeEnum(w *writer.Writer, prefix string, e *ir.Enum) {
	name := prefix + ir.GoName(e.Name)
	w.Linef("// %s mirrors the native enum %s.", name, e.Name)
	w.Linef("type %s %s", name, enumUnderlying(e))
	w.Blank()
	w.Line("const (")
	w.Indent()
	for _, v := range e.Values {
		w.Linef("%s%s %s = %d", name, ir.GoName(v.Name), name, v.Value)
	}
	w.Dedent()
	w.Line(")")
	w.Blank()
}

func (s *stub) hostInvokables() []*ir.Invokable {
	var out []*ir.Invokable
	for i := range s.o.Invokables {
		if !s.o.Invokables[i].PureNative {
			out = append(out, &s.o.Invokables[i])
		}
	}
	return out
}

func (s *stub) logic() {
	w := s.w
	w.Linef("// %s is implemented by the host logic of %s. Methods run on the", s.o.LogicInterface(), s.typ)
	w.Line("// object's loop with its lock held.")
	w.Linef("type %s interface {", s.o.LogicInterface())
	w.Indent()
	for _, m := range s.hostInvokables() {
		w.Linef("%s(%s)%s", m.GoIdent(), withCtx("self *"+s.typ, hostParams(m.Params)), logicReturn(m.Return))
	}
	w.Dedent()
	w.Line("}")
	w.Blank()
}

func withCtx(self, rest string) string {
	out := "ctx context.Context, " + self
	if rest != "" {
		out += ", " + rest
	}
	return out
}

func (s *stub) argsType(sig *ir.Signal) string {
	if len(sig.Params) == 0 {
		return s.use("signal") + ".Void"
	}
	return s.typ + sig.GoIdent() + "Args"
}

func (s *stub) signalArgs() {
	w := s.w
	for i := range s.o.Signals {
		sig := &s.o.Signals[i]
		if len(sig.Params) == 0 {
			continue
		}
		name := s.argsType(sig)
		w.Linef("// %s are the arguments of the %s signal.", name, sig.Name)
		w.Linef("type %s struct {", name)
		w.Indent()
		for _, p := range sig.Params {
			w.Linef("%s %s", ir.GoName(p.Name), marshal.HostType(p.Type))
		}
		w.Dedent()
		w.Line("}")
		w.Blank()
	}

	if len(s.o.Signals) == 0 {
		return
	}
	w.Line("var (")
	w.Indent()
	for i := range s.o.Signals {
		sig := &s.o.Signals[i]
		w.Linef("%s = %s.RegisterGlue[%s](%q)",
			s.glue(sig), s.use("signal"), s.argsType(sig), s.o.QualifiedName()+"::"+sig.Name)
	}
	w.Dedent()
	w.Line(")")
	w.Blank()
}

func (s *stub) glue(sig *ir.Signal) string {
	return s.lower + sig.GoIdent() + "Glue"
}

func signalField(sig *ir.Signal) string {
	return lowerFirst(sig.GoIdent()) + "Signal"
}

func propertyField(p *ir.Property) string {
	return lowerFirst(p.GoIdent())
}

func (s *stub) companion() {
	w := s.w
	w.Linef("// %s is the host companion of %s.", s.typ, s.o.QualifiedName())
	w.Linef("type %s struct {", s.typ)
	w.Indent()
	w.Line("*qobject.Object")
	w.Linef("logic %s", s.o.LogicInterface())
	for i := range s.o.Properties {
		p := &s.o.Properties[i]
		w.Linef("%s *qobject.Property[%s]", propertyField(p), p.Type.Host)
	}
	for i := range s.o.Signals {
		sig := &s.o.Signals[i]
		w.Linef("%s *signal.Signal[%s]", signalField(sig), s.argsType(sig))
	}
	w.Dedent()
	w.Line("}")
	w.Blank()

	locker := ""
	if !s.o.Locking() {
		locker = ".WithLocker(" + s.use("locking") + ".None{})"
	}
	w.Linef("func new%s(loop *eventloop.Loop) *%s {", s.typ, s.typ)
	w.Indent()
	w.Linef("self := &%s{Object: qobject.New(%q, loop)%s}", s.typ, s.o.Name, locker)
	for i := range s.o.Properties {
		p := &s.o.Properties[i]
		w.Linef("self.%s = qobject.NewProperty[%s](self.Object, %q, %s)",
			propertyField(p), p.Type.Host, p.Names().Notify, zero(p.Type.Host, s.enums))
	}
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

func (s *stub) constructors() {
	w := s.w
	if len(s.o.Constructors) == 0 {
		w.Linef("// New%s constructs %s with the given host logic.", s.typ, s.typ)
		w.Linef("func New%s(ctx context.Context, loop *eventloop.Loop, logic %s) (*%s, error) {", s.typ, s.o.LogicInterface(), s.typ)
		w.Indent()
		w.Linef("self := new%s(loop)", s.typ)
		w.Linef("return qobject.Construct(ctx, self.Object, qobject.Constructor[struct{}, %s, struct{}, %s]{", s.o.LogicInterface(), s.typ)
		w.Indent()
		w.Linef("New: func(l %s) *%s {", s.o.LogicInterface(), s.typ)
		w.Indent()
		w.Line("self.logic = l")
		w.Line("return self")
		w.Dedent()
		w.Line("},")
		w.Dedent()
		w.Linef("}, qobject.Args[struct{}, %s, struct{}]{New: logic})", s.o.LogicInterface())
		w.Dedent()
		w.Line("}")
		w.Blank()
		return
	}

	for i := range s.o.Constructors {
		c := &s.o.Constructors[i]
		idx := strconv.Itoa(i)
		base := s.typ + "BaseArguments" + idx
		newArgs := s.typ + "NewArguments" + idx
		initArgs := s.typ + "InitializeArguments" + idx
		args := s.typ + "Arguments" + idx
		hooks := s.typ + "Constructor" + idx
		public := positional(c.Arguments)

		argStruct(w, base, c.BaseArguments)
		argStruct(w, newArgs, c.NewArguments)
		argStruct(w, initArgs, c.InitializeArguments)
		w.Linef("// %s is the routed state of constructor %s.", args, idx)
		w.Linef("type %s = qobject.Args[%s, %s, %s]", args, base, newArgs, initArgs)
		w.Blank()

		w.Linef("// %s supplies the stages of constructor %s.", hooks, idx)
		w.Linef("type %s interface {", hooks)
		w.Indent()
		w.Linef("RouteArguments%s(%s) %s", idx, goParams(public), args)
		w.Linef("NewHost%s(args %s) %s", idx, newArgs, s.o.LogicInterface())
		w.Linef("Initialize%s(ctx context.Context, self *%s, args %s)", idx, s.typ, initArgs)
		w.Dedent()
		w.Line("}")
		w.Blank()

		w.Linef("func New%s%s(%s) (*%s, error) {", s.typ, idx,
			"ctx context.Context, loop *eventloop.Loop, c "+hooks+joinNonEmpty(", ", goParams(public)), s.typ)
		w.Indent()
		w.Linef("self := new%s(loop)", s.typ)
		w.Linef("return qobject.Construct(ctx, self.Object, qobject.Constructor[%s, %s, %s, %s]{", base, newArgs, initArgs, s.typ)
		w.Indent()
		w.Linef("New: func(args %s) *%s {", newArgs, s.typ)
		w.Indent()
		w.Linef("self.logic = c.NewHost%s(args)", idx)
		w.Line("return self")
		w.Dedent()
		w.Line("},")
		w.Linef("Initialize: func(ctx context.Context, _ *qobject.Object, host *%s, args %s) {", s.typ, initArgs)
		w.Indent()
		w.Linef("c.Initialize%s(ctx, host, args)", idx)
		w.Dedent()
		w.Line("},")
		w.Dedent()
		w.Linef("}, c.RouteArguments%s(%s))", idx, goArgs(public))
		w.Dedent()
		w.Line("}")
		w.Blank()
	}
}

func joinNonEmpty(sep, s string) string {
	if s == "" {
		return ""
	}
	return sep + s
}

func positional(types []ir.TypeRef) []ir.Param {
	out := make([]ir.Param, len(types))
	for i, t := range types {
		out[i] = ir.Param{Name: "arg" + strconv.Itoa(i), Type: t}
	}
	return out
}

func argStruct(w *writer.Writer, name string, types []ir.TypeRef) {
	if len(types) == 0 {
		w.Linef("type %s struct{}", name)
		w.Blank()
		return
	}
	w.Linef("type %s struct {", name)
	w.Indent()
	for i, t := range types {
		w.Linef("Arg%d %s", i, marshal.HostType(t))
	}
	w.Dedent()
	w.Line("}")
	w.Blank()
}

func (s *stub) properties() {
	w := s.w
	for i := range s.o.Properties {
		p := &s.o.Properties[i]
		pn := p.Names()
		field := propertyField(p)

		w.Linef("func (x *%s) %s() %s {", s.typ, pn.GoGetter, p.Type.Host)
		w.Indent().Linef("return x.%s.Get()", field).Dedent()
		w.Line("}")
		w.Blank()

		if marshal.Select(p.Type.HostSide(), p.Type) == marshal.Borrow {
			w.Linef("// %sRef borrows the stored value without copying. Read it with the", pn.GoGetter)
			w.Line("// object's lock held.")
			w.Linef("func (x *%s) %sRef() %s.Ref[%s] {", s.typ, pn.GoGetter, s.use("marshal"), p.Type.Host)
			w.Indent().Linef("return marshal.Lend(x.%s.Ptr())", field).Dedent()
			w.Line("}")
			w.Blank()
		}

		if pn.GoSetter != "" {
			w.Linef("// %s stores v under the object's lock and requests %s when", pn.GoSetter, pn.Notify)
			w.Line("// the value changed.")
			w.Linef("func (x *%s) %s(ctx context.Context, v %s) bool {", s.typ, pn.GoSetter, p.Type.Host)
			w.Indent()
			w.Line("_, unlock := x.Locker().Lock(ctx)")
			w.Line("defer unlock()")
			w.Linef("return x.%s.Set(v)", field)
			w.Dedent()
			w.Line("}")
			w.Blank()
		}

		if pn.Notify != "" {
			conn := s.use("signal")
			w.Linef("func (x *%s) Connect%s(fn func(ctx context.Context), mode %s.ConnectionType) *%s.Connection {",
				s.typ, pn.GoNotify, conn, conn)
			w.Indent()
			w.Linef("return x.NotifySignal(%q).ConnectFunc(func(ctx context.Context, _ signal.Void) { fn(ctx) }, mode)", pn.Notify)
			w.Dedent()
			w.Line("}")
			w.Blank()
		}
	}
}

func (s *stub) signalMethods() {
	w := s.w
	for i := range s.o.Signals {
		sig := &s.o.Signals[i]
		args := s.argsType(sig)
		field := signalField(sig)
		goName := sig.GoIdent()

		w.Linef("func (x *%s) Connect%s(fn func(ctx context.Context, args %s), mode signal.ConnectionType) *signal.Connection {",
			s.typ, goName, args)
		w.Indent().Linef("return x.%s.ConnectFunc(fn, mode)", field).Dedent()
		w.Line("}")
		w.Blank()
		if sig.Inherited {
			continue
		}

		emit := "Emit" + goName
		if sig.Private {
			emit = "emit" + goName
		}
		w.Linef("// %s queues emission of %s on the object's loop.", emit, sig.Name)
		w.Linef("func (x *%s) %s(%s) {", s.typ, emit, goParams(sig.Params))
		w.Indent()
		if len(sig.Params) == 0 {
			w.Linef("qobject.EmitQueued(x.Object, x.%s, signal.Void{})", field)
		} else {
			fields := make([]string, len(sig.Params))
			for j, p := range sig.Params {
				fields[j] = ir.GoName(p.Name) + ": " + goIdent(p.Name)
			}
			w.Linef("qobject.EmitQueued(x.Object, x.%s, %s{%s})", field, args, strings.Join(fields, ", "))
		}
		w.Dedent()
		w.Line("}")
		w.Blank()
	}
}

func (s *stub) invokables() {
	w := s.w
	for _, m := range s.hostInvokables() {
		name := m.GoIdent()
		w.Linef("func (x *%s) %s(%s)%s {", s.typ, name, joinCtx(goParams(m.Params)), hostReturn(m.Return))
		w.Indent()
		w.Line("ctx, unlock := x.Locker().Lock(ctx)")
		w.Line("defer unlock()")
		call := fmt.Sprintf("x.logic.%s(ctx, x%s)", name, joinNonEmpty(", ", hostArgs(m.Params)))
		if m.Return == nil {
			w.Line(call)
		} else {
			host := m.Return.HostSide()
			if addressable(*m.Return, host) {
				v := freeName(m.Params, "r")
				w.Line(v + " := " + call)
				call = v
			}
			w.Line("return " + hostConvert(*m.Return, host, call))
		}
		w.Dedent()
		w.Line("}")
		w.Blank()
	}
}

func joinCtx(rest string) string {
	return "ctx context.Context" + joinNonEmpty(", ", rest)
}

func (s *stub) threading() {
	if !s.o.Threading {
		return
	}
	w := s.w
	w.Line("// QtThread returns a handle that queues work onto the object's loop.")
	w.Linef("func (x *%s) QtThread() (*%s.Handle[%s], error) {", s.typ, s.use("threading"), s.typ)
	w.Indent().Line("return qobject.Threading(x.Object, x)").Dedent()
	w.Line("}")
	w.Blank()
}

func (s *stub) casting() {
	w := s.w
	w.Linef("// Downcast%s returns the %s companion of o, if o is one.", s.typ, s.typ)
	w.Linef("func Downcast%s(o *qobject.Object) (*%s, bool) {", s.typ, s.typ)
	w.Indent().Linef("return qobject.Downcast[%s](o)", s.typ).Dedent()
	w.Line("}")
	w.Blank()
}

func (s *stub) metaObject() {
	w := s.w
	mo := meta.FromIR(s.o)
	w.Linef("// %sMetaObject returns the reflection record of %s.", s.typ, s.typ)
	w.Linef("func %sMetaObject() *meta.MetaObject {", s.typ)
	w.Indent().Linef("return &%#v", *mo).Dedent()
	w.Line("}")
	w.Blank()

	uri, major, minor := s.f.Package, 1, 0
	if s.f.QML != nil {
		uri, major, minor = s.f.QML.URI, s.f.QML.Major, s.f.QML.Minor
	}
	w.Linef("// Register%s registers %s under %s %d.%d.", s.typ, s.typ, uri, major, minor)
	w.Linef("func Register%s(reg *meta.Registry) error {", s.typ)
	w.Indent().Linef("return reg.RegisterType(%q, %d, %d, %sMetaObject())", uri, major, minor, s.typ).Dedent()
	w.Line("}")
}
