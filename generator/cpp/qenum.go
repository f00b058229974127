package cpp

import (
	"math"

	"github.com/wippyai/qtbind/generator/internal/writer"
	"github.com/wippyai/qtbind/ir"
)

func underlying(e *ir.Enum) string {
	for _, v := range e.Values {
		if v.Value > math.MaxInt32 || v.Value < math.MinInt32 {
			return "::std::int64_t"
		}
	}
	return "::std::int32_t"
}

// enumDefinition renders an enum class with explicit values followed by
// its registration macro.
func enumDefinition(e *ir.Enum, macro string) string {
	w := writer.New(indent)
	w.Linef("enum class %s : %s", e.Name, underlying(e))
	w.Line("{")
	w.Indent()
	for _, v := range e.Values {
		w.Linef("%s = %d,", v.Name, v.Value)
	}
	w.Dedent()
	w.Line("};")
	w.Linef("%s(%s)", macro, e.Name)
	return w.String()
}

func generateEnums(o *ir.Object) *Blocks {
	b := &Blocks{}
	if len(o.Enums) > 0 {
		b.Include("<cstdint>")
	}
	for i := range o.Enums {
		b.Enums = append(b.Enums, enumDefinition(&o.Enums[i], "Q_ENUM"))
	}
	return b
}

// namespaceEnums renders the namespace-level enums of f grouped by
// namespace, in first-seen order.
func namespaceEnums(w *writer.Writer, enums []ir.Enum) {
	var order []string
	grouped := make(map[string][]*ir.Enum)
	for i := range enums {
		e := &enums[i]
		if _, ok := grouped[e.Namespace]; !ok {
			order = append(order, e.Namespace)
		}
		grouped[e.Namespace] = append(grouped[e.Namespace], e)
	}
	for _, ns := range order {
		openNamespace(w, ns)
		w.Line("Q_NAMESPACE")
		for _, e := range grouped[ns] {
			w.Blank()
			w.Block(enumDefinition(e, "Q_ENUM_NS"))
		}
		closeNamespace(w, ns)
		w.Blank()
	}
}

func openNamespace(w *writer.Writer, ns string) {
	if ns != "" {
		w.Linef("namespace %s {", ns)
	}
}

func closeNamespace(w *writer.Writer, ns string) {
	if ns != "" {
		w.Linef("} // namespace %s", ns)
	}
}
