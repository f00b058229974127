package host

import (
	"strings"
	"unicode"

	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
)

// DefaultRuntime is the import path of the runtime packages generated
// stubs link against.
const DefaultRuntime = "github.com/wippyai/qtbind"

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	// Keep leading acronyms readable: HTTPServer -> httpServer.
	i := 0
	for i < len(r) && unicode.IsUpper(r[i]) {
		if i > 0 && i+1 < len(r) && unicode.IsLower(r[i+1]) {
			break
		}
		r[i] = unicode.ToLower(r[i])
		i++
	}
	return string(r)
}

// goParams renders "a int32, b string".
func goParams(params []ir.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = goIdent(p.Name) + " " + marshal.HostType(p.Type)
	}
	return strings.Join(parts, ", ")
}

// hostParams renders parameters as host logic declares them.
func hostParams(params []ir.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = goIdent(p.Name) + " " + marshal.HostType(p.Type.HostSide())
	}
	return strings.Join(parts, ", ")
}

func goArgs(params []ir.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = goIdent(p.Name)
	}
	return strings.Join(parts, ", ")
}

// hostArgs renders the arguments handed to host logic, converting those
// whose host pass mode differs.
func hostArgs(params []ir.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = hostConvert(p.Type.HostSide(), p.Type, goIdent(p.Name))
	}
	return strings.Join(parts, ", ")
}

// hostConvert wraps the variable v, spelled as src, in the marshal
// function that produces dst. Opaque borrows are plain values on the host
// side and only need a dereference.
func hostConvert(dst, src ir.TypeRef, v string) string {
	st := marshal.Select(src, dst)
	if st == marshal.Borrow {
		pointer := strings.HasPrefix(marshal.HostType(src), "*")
		switch {
		case marshal.HostType(dst) == dst.Host && pointer:
			return "*" + v
		case marshal.HostType(dst) == dst.Host:
			return v
		case !pointer:
			v = "&" + v
		}
	}
	if fn := st.HostFunc(); fn != "" {
		return fn + "(" + v + ")"
	}
	return v
}

// addressable reports whether converting src to dst lends a value that
// must first be stored in a variable.
func addressable(dst, src ir.TypeRef) bool {
	return marshal.Select(src, dst) == marshal.Borrow &&
		marshal.HostType(dst) != dst.Host &&
		!strings.HasPrefix(marshal.HostType(src), "*")
}

// freeName returns name, suffixed until no parameter uses it.
func freeName(params []ir.Param, name string) string {
	for {
		taken := false
		for _, p := range params {
			if goIdent(p.Name) == name {
				taken = true
			}
		}
		if !taken {
			return name
		}
		name += "_"
	}
}

func hostReturn(t *ir.TypeRef) string {
	if t == nil {
		return ""
	}
	return " " + marshal.HostType(*t)
}

// logicReturn spells the return type of a host logic method.
func logicReturn(t *ir.TypeRef) string {
	if t == nil {
		return ""
	}
	return " " + marshal.HostType(t.HostSide())
}

// zero renders the zero value literal of a host type.
func zero(host string, enums map[string]bool) string {
	switch host {
	case "bool":
		return "false"
	case "string":
		return `""`
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64":
		return "0"
	}
	switch {
	case enums[host]:
		return "0"
	case strings.HasPrefix(host, "*"), strings.HasPrefix(host, "[]"),
		strings.HasPrefix(host, "map["), strings.HasPrefix(host, "func("):
		return "nil"
	default:
		return host + "{}"
	}
}

func fieldGoType(k ir.FieldKind) string {
	switch k {
	case ir.FieldBool:
		return "bool"
	case ir.FieldInt8:
		return "int8"
	case ir.FieldInt16:
		return "int16"
	case ir.FieldInt32:
		return "int32"
	case ir.FieldInt64:
		return "int64"
	case ir.FieldUint8:
		return "uint8"
	case ir.FieldUint16:
		return "uint16"
	case ir.FieldUint32:
		return "uint32"
	case ir.FieldUint64:
		return "uint64"
	case ir.FieldFloat32:
		return "float32"
	case ir.FieldFloat64:
		return "float64"
	default:
		return "unsafe.Pointer"
	}
}

func enumUnderlying(e *ir.Enum) string {
	for _, v := range e.Values {
		if v.Value > 1<<31-1 || v.Value < -1<<31 {
			return "int64"
		}
	}
	return "int32"
}
