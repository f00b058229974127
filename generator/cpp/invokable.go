package cpp

import (
	"fmt"

	"github.com/wippyai/qtbind/ir"
)

func specifiers(m *ir.Invokable) (prefix, suffix string) {
	if m.Invokable {
		prefix = "Q_INVOKABLE "
	}
	if m.Specifiers.Virtual {
		prefix += "virtual "
	}
	if !m.Mutable {
		suffix = " const"
	}
	if m.Specifiers.Final {
		suffix += " final"
	}
	if m.Specifiers.Override {
		suffix += " override"
	}
	return prefix, suffix
}

func generateInvokables(o *ir.Object, n names) *Blocks {
	b := &Blocks{}
	for i := range o.Invokables {
		m := &o.Invokables[i]
		name := m.NativeName()
		ret := returnType(m.Return)
		params := paramList(m.Params)
		prefix, suffix := specifiers(m)

		header := fmt.Sprintf("%s%s %s(%s)%s;", prefix, ret, name, params, suffix)
		if m.PureNative {
			// Implemented by native code in a separate translation unit.
			b.Methods = append(b.Methods, Fragment{Header: header})
			continue
		}

		entry := n.entry(m.Name)
		b.Declarations = append(b.Declarations,
			fmt.Sprintf("%s %s(%s);", hostReturnType(m.Return), entry, withSelf(selfRef(n, m.Mutable), hostParamList(m.Params))))

		call := fmt.Sprintf("%s(%s)", n.in(entry), withSelf("*this", forward(m.Params)))
		stmt := call + ";"
		if m.Return != nil {
			stmt = "return " + convert(*m.Return, call) + ";"
			b.Include("<qtbind/convert.h>")
		}

		constness := ""
		if !m.Mutable {
			constness = " const"
		}
		b.Methods = append(b.Methods, Fragment{
			Header: header,
			Source: definition(ret, fmt.Sprintf("%s::%s(%s)%s", n.class, name, params, constness),
				n.guard()+"(*this);",
				stmt),
		})
	}
	return b
}

func generateInherited(o *ir.Object, n names) *Blocks {
	b := &Blocks{}
	for i := range o.Inherited {
		m := &o.Inherited[i]
		constness := ""
		if !m.Mutable {
			constness = " const"
		}
		b.Methods = append(b.Methods, Fragment{
			Header: fmt.Sprintf("template<class... Args>\n%s %sCxxQtInherit(Args... args)%s\n{\n%sreturn %s::%s(args...);\n}",
				returnType(m.Return), m.Name, constness, indent, n.base, m.NativeName()),
		})
	}
	return b
}
