package cpp

import (
	"fmt"

	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
)

func qProperty(p *ir.Property, pn ir.PropertyNames) string {
	s := fmt.Sprintf("Q_PROPERTY(%s %s READ %s", p.Type.Native, p.NativeName(), pn.Getter)
	if pn.Setter != "" {
		s += " WRITE " + pn.Setter
	}
	if p.Reset != "" {
		s += " RESET " + p.Reset
	}
	if p.Constant {
		s += " CONSTANT"
	} else {
		s += " NOTIFY " + pn.Notify
	}
	if p.Required {
		s += " REQUIRED"
	}
	if p.Final {
		s += " FINAL"
	}
	return s + ")"
}

func generateProperties(o *ir.Object, n names) *Blocks {
	b := &Blocks{}
	for i := range o.Properties {
		p := &o.Properties[i]
		pn := p.Names()

		b.Metaobjects = append(b.Metaobjects, qProperty(p, pn))
		b.Include("<qtbind/convert.h>")

		getter := n.entry(pn.Getter)
		ret := marshal.NativeType(p.Type)
		b.Declarations = append(b.Declarations,
			fmt.Sprintf("%s %s(%s);", marshal.NativeType(p.Type.HostSide()), getter, selfRef(n, false)))
		b.Methods = append(b.Methods, Fragment{
			Header: fmt.Sprintf("%s %s() const;", ret, pn.Getter),
			Source: definition(ret, n.class+"::"+pn.Getter+"() const",
				n.guard()+"(*this);",
				"return "+convert(p.Type, n.in(getter)+"(*this)")+";"),
		})

		if pn.Setter == "" {
			continue
		}
		setter := n.entry(pn.Setter)
		param := marshal.NativeType(p.Type) + " value"
		b.Declarations = append(b.Declarations,
			fmt.Sprintf("bool %s(%s, %s);", setter, selfRef(n, true), param))

		// Host setters report whether the stored value changed.
		body := []string{
			n.guard() + "(*this);",
			fmt.Sprintf("if (%s(*this, %s) && initialized()) {\n%s%s();\n}",
				n.in(setter), move("value", p.Type), indent, emitName(pn.Notify)),
		}
		b.Methods = append(b.Methods, Fragment{
			Header: fmt.Sprintf("Q_SLOT void %s(%s);", pn.Setter, param),
			Source: definition("void", n.class+"::"+pn.Setter+"("+param+")", body...),
		})
	}
	return b
}
