package cpp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/qtbind/generator/internal/writer"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
)

// fieldType is how a routed argument is stored between the routing call
// and the constructor that consumes it.
func fieldType(t ir.TypeRef) string {
	if t.Pass == ir.PassOwned {
		return marshal.NativeType(t)
	}
	return t.Native
}

func argumentStruct(name string, types []ir.TypeRef) string {
	w := writer.New(indent)
	w.Linef("struct %s", name)
	w.Line("{")
	w.Indent()
	for i, t := range types {
		w.Linef("%s arg%d;", fieldType(t), i)
	}
	w.Dedent()
	w.Line("};")
	return w.String()
}

func initializerList(inits []string) string {
	if len(inits) == 0 {
		return ""
	}
	return indent + ": " + strings.Join(inits, "\n"+indent+", ")
}

func constructorDefinition(signature string, inits []string, body ...string) string {
	w := writer.New(indent)
	w.Line(signature)
	if list := initializerList(inits); list != "" {
		w.Raw(list + "\n")
	}
	w.Line("{")
	w.Indent()
	for _, stmt := range body {
		w.Block(stmt)
	}
	w.Dedent()
	w.Line("}")
	return w.String()
}

// generateConstructors needs the initializers contributed by the other
// generators, so it runs last.
func generateConstructors(o *ir.Object, n names, extra []string) *Blocks {
	b := &Blocks{}
	b.Include("<memory>", "<qtbind/type.h>")
	b.BaseClasses = append(b.BaseClasses, "public "+n.hostType())

	if len(o.Constructors) == 0 {
		b.Declarations = append(b.Declarations,
			fmt.Sprintf("::std::unique_ptr<%s> createHost();", n.host))

		inits := []string{n.base + "(parent)", n.hostType() + "(" + n.in("createHost") + "())"}
		inits = append(inits, extra...)
		b.Constructors = append(b.Constructors, Fragment{
			Header: fmt.Sprintf("explicit %s(QObject* parent = nullptr);", n.class),
			Source: constructorDefinition(n.class+"::"+n.class+"(QObject* parent)", inits,
				"markInitialized();"),
		})
		return b
	}

	for i := range o.Constructors {
		c := &o.Constructors[i]
		idx := strconv.Itoa(i)
		args := "CxxQtConstructorArguments" + idx
		base := "CxxQtConstructorBaseArguments" + idx
		newArgs := "CxxQtConstructorNewArguments" + idx
		initArgs := "CxxQtConstructorInitializeArguments" + idx
		public := synthetic(c.Arguments)

		b.Declarations = append(b.Declarations,
			argumentStruct(base, c.BaseArguments),
			argumentStruct(newArgs, c.NewArguments),
			argumentStruct(initArgs, c.InitializeArguments),
			fmt.Sprintf("struct %s\n{\n%s%s base;\n%s%s new_;\n%s%s initialize;\n};",
				args, indent, base, indent, newArgs, indent, initArgs),
			fmt.Sprintf("%s routeArguments%s(%s);", args, idx, paramList(public)),
			fmt.Sprintf("::std::unique_ptr<%s> newHost%s(%s&& args);", n.host, idx, newArgs),
			fmt.Sprintf("void initialize%s(%s& self, %s&& args);", idx, n.qualified, initArgs),
		)

		b.Constructors = append(b.Constructors, Fragment{
			Header: fmt.Sprintf("explicit %s(%s);", n.class, paramList(public)),
			Source: constructorDefinition(
				fmt.Sprintf("%s::%s(%s)", n.class, n.class, paramList(public)),
				[]string{fmt.Sprintf("%s(%s(%s))", n.class, n.in("routeArguments"+idx), forward(public))}),
		})

		baseArgs := make([]string, len(c.BaseArguments))
		for j := range c.BaseArguments {
			baseArgs[j] = "::std::move(args.base.arg" + strconv.Itoa(j) + ")"
		}
		inits := []string{
			n.base + "(" + strings.Join(baseArgs, ", ") + ")",
			fmt.Sprintf("%s(%s(::std::move(args.new_)))", n.hostType(), n.in("newHost"+idx)),
		}
		inits = append(inits, extra...)

		routed := n.in(args) + "&& args"
		b.PrivateConstructors = append(b.PrivateConstructors, Fragment{
			Header: fmt.Sprintf("explicit %s(%s);", n.class, routed),
			Source: constructorDefinition(fmt.Sprintf("%s::%s(%s)", n.class, n.class, routed), inits,
				n.in("initialize"+idx)+"(*this, ::std::move(args.initialize));",
				"markInitialized();"),
		})
	}
	return b
}
