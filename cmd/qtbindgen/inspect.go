package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/qtbind/generator"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
	"github.com/wippyai/qtbind/meta"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func kindStyle(k generator.Kind) lipgloss.Style {
	switch k {
	case generator.KindHost:
		return nameStyle
	case generator.KindRuntime:
		return helpStyle
	default:
		return typeStyle
	}
}

// member is one line of an object listing.
type member struct {
	kind   string
	name   string
	detail string
}

func members(o *ir.Object) []member {
	mo := meta.FromIR(o)
	var out []member

	for _, p := range mo.Properties {
		access := p.Read
		if p.Write != "" {
			access += "/" + p.Write
		}
		switch {
		case p.Constant:
			access += ", constant"
		case p.Notify != "":
			access += ", " + p.Notify
		}
		out = append(out, member{kind: "property", name: p.Name, detail: p.Type + " [" + access + "]"})
	}

	for _, s := range o.AllSignals() {
		detail := "(" + params(s.Params) + ")"
		switch {
		case s.Inherited:
			detail += " inherited"
		case s.Private:
			detail += " private"
		}
		out = append(out, member{kind: "signal", name: s.NativeName(), detail: detail})
	}

	for _, m := range mo.Methods {
		var ps []string
		for i, name := range m.Params {
			ps = append(ps, m.ParamTypes[i]+" "+name)
		}
		detail := "(" + strings.Join(ps, ", ") + ") -> " + m.Return
		if m.Const {
			detail += " const"
		}
		out = append(out, member{kind: "invokable", name: m.Name, detail: detail})
	}

	for i := range o.Inherited {
		m := &o.Inherited[i]
		out = append(out, member{kind: "inherited", name: m.NativeName(), detail: "(" + params(m.Params) + ")"})
	}

	for i, c := range o.Constructors {
		var args []string
		for _, t := range c.Arguments {
			args = append(args, t.Native)
		}
		out = append(out, member{kind: "constructor", name: fmt.Sprint(i), detail: "(" + strings.Join(args, ", ") + ")"})
	}

	for _, e := range mo.Enums {
		var keys []string
		for i, k := range e.Keys {
			keys = append(keys, fmt.Sprintf("%s=%d", k, e.Values[i]))
		}
		out = append(out, member{kind: "enum", name: e.Name, detail: "{" + strings.Join(keys, ", ") + "}"})
	}
	return out
}

func params(ps []ir.Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Type.Native + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

func objectTitle(o *ir.Object) string {
	var flags []string
	if o.Threading {
		flags = append(flags, "threading")
	}
	if !o.Locking() {
		flags = append(flags, "no locking")
	}
	if o.QML != nil {
		flags = append(flags, "qml "+o.QMLName())
	}
	title := nameStyle.Render(o.QualifiedName()) + " : " + typeStyle.Render(o.BaseClass())
	if len(flags) > 0 {
		title += " " + helpStyle.Render("("+strings.Join(flags, ", ")+")")
	}
	return title
}

func formatMember(m member) string {
	return fmt.Sprintf("%-11s %s %s", m.kind, nameStyle.Render(m.name), typeStyle.Render(m.detail))
}

func summary(f *ir.File) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("qtbind"))
	b.WriteString(" package ")
	b.WriteString(f.Package)
	if f.QML != nil {
		fmt.Fprintf(&b, " (QML %s %d.%d)", f.QML.URI, f.QML.Major, f.QML.Minor)
	}
	b.WriteString("\n\n")

	for i := range f.Objects {
		o := &f.Objects[i]
		b.WriteString(objectTitle(o))
		b.WriteString("\n")
		for _, m := range members(o) {
			b.WriteString("  ")
			b.WriteString(formatMember(m))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for i := range f.Externs {
		e := &f.Externs[i]
		fmt.Fprintf(&b, "extern %s (%d signals)\n", nameStyle.Render(e.QualifiedName()), len(e.Signals))
	}
	for i := range f.Enums {
		e := &f.Enums[i]
		fmt.Fprintf(&b, "enum %s (%d values)\n", nameStyle.Render(e.Name), len(e.Values))
	}
	for i := range f.ValueTypes {
		vt := &f.ValueTypes[i]
		fmt.Fprintf(&b, "value %s %s\n", nameStyle.Render(vt.Name), typeStyle.Render(vt.Native+" <-> "+vt.Host))
	}
	return b.String()
}

func layoutReport(f *ir.File, model marshal.DataModel) string {
	if len(f.ValueTypes) == 0 {
		return "no value types\n"
	}
	calc := marshal.NewLayoutCalculator(model)

	var b strings.Builder
	for i := range f.ValueTypes {
		vt := &f.ValueTypes[i]
		proof := calc.Prove(vt)
		fmt.Fprintf(&b, "%s %s size=%d align=%d relocatable=%t\n",
			nameStyle.Render(proof.Name),
			typeStyle.Render(proof.Native+" <-> "+proof.Host),
			proof.Size, proof.Align, proof.Relocatable)
		for _, fld := range vt.Fields {
			fmt.Fprintf(&b, "  %-12s %-4s +%d\n", fld.Name, fld.Type, proof.FieldOffs[fld.Name])
		}
	}
	return b.String()
}
