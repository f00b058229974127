package cpp

import (
	"fmt"
	"strings"

	"github.com/wippyai/qtbind/generator/internal/writer"
	"github.com/wippyai/qtbind/ir"
)

// Banner starts every generated file.
const Banner = "// Code generated by qtbindgen. DO NOT EDIT."

// Options control the native output.
type Options struct {
	// IncludePrefix is prepended to generated header names in #include
	// directives, for example "qtbind-gen/".
	IncludePrefix string
}

// Unit is the native header and source of one object.
type Unit struct {
	Header string
	Source string
}

func HeaderName(o *ir.Object) string {
	return o.Stem() + ".qtbind.h"
}

func SourceName(o *ir.Object) string {
	return o.Stem() + ".qtbind.cpp"
}

// blocks runs every feature generator over o. Order is significant: it
// fixes base class order and member order in the output.
func blocks(o *ir.Object, n names) *Blocks {
	b := &Blocks{}
	b.Include("<QtCore/QObject>")

	features := &Blocks{}
	features.Append(generateLocking(o))
	features.Append(generateThreading(o, n))
	features.Append(generateEnums(o))
	features.Append(generateProperties(o, n))
	features.Append(generateSignals(o, n))
	features.Append(generateInvokables(o, n))
	features.Append(generateInherited(o, n))
	features.Append(generateQML(o, n))
	features.Append(generateCasting(o, n))

	// Host type comes straight after the native base.
	b.Append(generateConstructors(o, n, features.Initializers))
	features.Initializers = nil
	b.Append(features)
	return b
}

// Object generates the header and source of o.
func Object(f *ir.File, o *ir.Object, opts Options) Unit {
	n := newNames(o)
	b := blocks(o, n)
	return Unit{
		Header: header(f, o, n, b, opts),
		Source: source(o, n, b, opts),
	}
}

func header(f *ir.File, o *ir.Object, n names, b *Blocks, opts Options) string {
	w := writer.New(indent)
	w.Line(Banner)
	w.Line("#pragma once")
	w.Blank()
	for _, inc := range b.Includes() {
		w.Linef("#include %s", inc)
	}
	if name, ok := TypesName(f); ok {
		w.Linef("#include \"%s%s\"", opts.IncludePrefix, name)
	}
	w.Blank()

	openNamespace(w, n.ns)
	w.Linef("class %s;", n.class)
	for _, p := range b.Preamble {
		w.Line(p)
	}
	closeNamespace(w, n.ns)
	w.Blank()

	w.Linef("namespace %s {", n.internal)
	w.Linef("struct %s;", n.host)
	for _, d := range b.ForwardDeclares {
		w.Line(d)
	}
	for _, d := range b.Declarations {
		w.Blank()
		w.Block(d)
	}
	w.Linef("} // namespace %s", n.internal)
	w.Blank()

	openNamespace(w, n.ns)
	w.Linef("class %s", n.class)
	w.Indent()
	w.Linef(": public %s", n.base)
	for _, base := range b.BaseClasses {
		w.Linef(", %s", base)
	}
	w.Dedent()
	w.Line("{")
	w.Indent()
	w.Line("Q_OBJECT")
	for _, m := range b.Metaobjects {
		w.Line(m)
	}
	w.Dedent()

	if len(b.Enums) > 0 {
		w.Blank()
		w.Line("public:")
		w.Indent()
		for _, e := range b.Enums {
			w.Block(e)
		}
		w.Dedent()
	}

	w.Blank()
	w.Line("public:")
	w.Indent()
	w.Linef("~%s();", n.class)
	for _, m := range b.Methods {
		w.Block(m.Header)
	}
	for _, c := range b.Constructors {
		w.Block(c.Header)
	}
	w.Dedent()

	if len(b.PrivateMethods)+len(b.PrivateConstructors) > 0 {
		w.Blank()
		w.Line("private:")
		w.Indent()
		for _, m := range b.PrivateMethods {
			w.Block(m.Header)
		}
		for _, c := range b.PrivateConstructors {
			w.Block(c.Header)
		}
		w.Dedent()
	}
	w.Line("};")
	w.Blank()
	w.Linef("static_assert(::std::is_base_of<QObject, %s>::value, \"%s must inherit from QObject\");", n.class, n.class)
	for _, fn := range b.Functions {
		w.Blank()
		w.Block(fn.Header)
	}
	closeNamespace(w, n.ns)
	w.Blank()
	w.Linef("Q_DECLARE_METATYPE(%s*)", strings.TrimPrefix(n.qualified, "::"))
	return w.String()
}

func source(o *ir.Object, n names, b *Blocks, opts Options) string {
	w := writer.New(indent)
	w.Line(Banner)
	w.Linef("#include \"%s%s\"", opts.IncludePrefix, HeaderName(o))

	if len(b.Runtime) > 0 {
		w.Blank()
		w.Linef("namespace %s {", strings.TrimPrefix(Runtime, "::"))
		for i, r := range b.Runtime {
			if i > 0 {
				w.Blank()
			}
			w.Block(r)
		}
		w.Linef("} // namespace %s", strings.TrimPrefix(Runtime, "::"))
	}

	if len(b.Free) > 0 {
		w.Blank()
		w.Linef("namespace %s {", n.internal)
		for i, fn := range b.Free {
			if i > 0 {
				w.Blank()
			}
			w.Block(fn)
		}
		w.Linef("} // namespace %s", n.internal)
	}

	w.Blank()
	openNamespace(w, n.ns)
	w.Block(definition("", fmt.Sprintf("%s::~%s()", n.class, n.class), b.Destructor...))
	for _, group := range [][]Fragment{b.Methods, b.PrivateMethods, b.Constructors, b.PrivateConstructors, b.Functions} {
		for _, m := range group {
			if m.Source == "" {
				continue
			}
			w.Blank()
			w.Block(m.Source)
		}
	}
	closeNamespace(w, n.ns)
	return w.String()
}
