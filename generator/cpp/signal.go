package cpp

import (
	"fmt"
	"strings"

	"github.com/wippyai/qtbind/ir"
)

func emitName(signal string) string {
	return "emit" + ir.UpperFirst(signal)
}

func generateSignals(o *ir.Object, n names) *Blocks {
	b := &Blocks{}
	b.Include("<QtCore/QMetaObject>", "<qtbind/signalhandler.h>")

	signals := o.AllSignals()
	for i := range signals {
		s := &signals[i]
		name := s.NativeName()

		if !s.Inherited {
			b.Methods = append(b.Methods, Fragment{
				Header: fmt.Sprintf("Q_SIGNAL void %s(%s);", name, paramList(s.Params)),
			})
			emit := emitFragment(n, s)
			if s.Private {
				b.PrivateMethods = append(b.PrivateMethods, emit)
			} else {
				b.Methods = append(b.Methods, emit)
			}
		}
		signalHandler(o, n, s, b)
	}
	return b
}

// emitFragment queues the emission on the object's thread so handlers
// never run under the caller's lock.
func emitFragment(n names, s *ir.Signal) Fragment {
	name := s.NativeName()
	helper := emitName(name)
	params := paramList(s.Params)

	captures := []string{"this"}
	for _, p := range s.Params {
		captures = append(captures, p.Name+" = ::std::move("+p.Name+")")
	}
	args := make([]string, len(s.Params))
	for i, p := range s.Params {
		args[i] = "::std::move(" + p.Name + ")"
	}

	invoke := fmt.Sprintf("const bool signalSuccess = ::QMetaObject::invokeMethod(\n"+
		"%[1]sthis,\n"+
		"%[1]s[%[2]s]() mutable { Q_EMIT %[3]s(%[4]s); },\n"+
		"%[1]s::Qt::QueuedConnection);",
		indent, strings.Join(captures, ", "), name, strings.Join(args, ", "))

	return Fragment{
		Header: fmt.Sprintf("void %s(%s);", helper, params),
		Source: definition("void", n.class+"::"+helper+"("+params+")",
			invoke,
			"Q_ASSERT(signalSuccess);"),
	}
}

func signalHandler(o *ir.Object, n names, s *ir.Signal, b *Blocks) {
	name := s.NativeName()
	paramsType := n.signalParams(s)
	handler := n.signalHandler(s)
	qualifiedHandler := Runtime + "::SignalHandler<" + n.in(paramsType) + "*>"
	drop := "drop_" + n.class + "_signal_handler_" + s.Name
	call := "call_" + n.class + "_signal_handler_" + s.Name
	connect := n.entry(s.Name) + "Connect"
	self := n.qualified + "& self"

	b.ForwardDeclares = append(b.ForwardDeclares, "struct "+paramsType+";")
	b.Declarations = append(b.Declarations,
		fmt.Sprintf("using %s = %s::SignalHandler<struct %s*>;", handler, Runtime, paramsType),
		fmt.Sprintf("void %s(%s handler);", drop, handler),
		fmt.Sprintf("void %s(%s& handler, %s);", call, handler, withSelf(self, paramList(s.Params))),
		fmt.Sprintf("::QMetaObject::Connection %s(%s, %s closure, ::Qt::ConnectionType type);", connect, self, handler),
	)

	destructor := definition("", "template<>\n"+qualifiedHandler+"::~SignalHandler() noexcept",
		"if (data[0] == 0 && data[1] == 0) {\n"+indent+"return;\n}",
		"",
		n.in(drop)+"(::std::move(*this));")

	templateArgs := withSelf(n.qualified+"&", paramTypes(s.Params))
	operator := definition("void",
		fmt.Sprintf("%s::operator()<%s>(%s)", qualifiedHandler, templateArgs, withSelf(self, paramList(s.Params))),
		fmt.Sprintf("%s(%s);", n.in(call), withSelf("*this, self", forward(s.Params))))

	asserts := fmt.Sprintf("static_assert(alignof(%[1]s) <= alignof(::std::size_t), \"unexpected alignment\");\n"+
		"static_assert(sizeof(%[1]s) == sizeof(::std::size_t[2]), \"unexpected size\");\n", qualifiedHandler)

	b.Runtime = append(b.Runtime,
		destructor,
		"template<>\ntemplate<>\n"+operator,
		asserts)

	target := n.qualified
	if s.Inherited {
		target = n.base
	}
	lambdaArgs := make([]string, len(s.Params))
	for i, p := range s.Params {
		lambdaArgs[i] = "::std::move(" + p.Name + ")"
	}
	lambda := fmt.Sprintf("[&, closure = ::std::move(closure)](%s) mutable {\n"+
		"%[2]s%[3]s(self);\n"+
		"%[2]sclosure.template operator()<%[4]s>(%[5]s);\n"+
		"}",
		paramList(s.Params), indent, n.guard(), templateArgs,
		withSelf("self", strings.Join(lambdaArgs, ", ")))

	body := "return ::QObject::connect(\n" +
		indent + "&self,\n" +
		indent + "&" + target + "::" + name + ",\n" +
		indent + "&self,\n" +
		indentBlock(lambda) + ",\n" +
		indent + "type);"

	b.Free = append(b.Free, definition("::QMetaObject::Connection",
		fmt.Sprintf("%s(%s, %s closure, ::Qt::ConnectionType type)", connect, self, n.in(handler)),
		body))
}

func indentBlock(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = indent + l
		}
	}
	return strings.Join(lines, "\n")
}
