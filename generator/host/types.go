package host

import (
	"github.com/wippyai/qtbind/generator/internal/writer"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
)

// TypesFileName holds the namespace-level enums and value types of f.
func TypesFileName(f *ir.File) string {
	return f.Package + "_types_qtbind.go"
}

// LayoutFileName holds the compile-time layout assertions of f.
func LayoutFileName(f *ir.File) string {
	return f.Package + "_layout_qtbind.go"
}

// Types renders the Go definitions of namespace-level enums and value
// types. It reports false when f declares neither.
func Types(f *ir.File) ([]byte, bool) {
	if len(f.Enums) == 0 && len(f.ValueTypes) == 0 {
		return nil, false
	}
	w := writer.New("\t")
	imports := map[string]bool{}
	for i := range f.Enums {
		writeEnum(w, "", &f.Enums[i])
	}
	for i := range f.ValueTypes {
		vt := &f.ValueTypes[i]
		w.Linef("// %s is stored inline as %s on the native side.", vt.Host, vt.Native)
		w.Linef("type %s struct {", vt.Host)
		w.Indent()
		for _, fld := range vt.Fields {
			if fld.Type == ir.FieldPointer {
				imports["unsafe"] = true
			}
			w.Linef("%s %s", ir.GoName(fld.Name), fieldGoType(fld.Type))
		}
		w.Dedent()
		w.Line("}")
		w.Blank()
	}
	return finish(f.Package, imports, w.String()), true
}

var buildTags = map[marshal.DataModel]string{
	marshal.LP64:  "amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x",
	// The ILP32 rules are the i386 ones; 32-bit arm and mips align 8-byte
	// scalars to 8 and get no assertions.
	marshal.ILP32: "386",
}

// Layout renders assertions that fail to compile when a Go value type
// drifts from the native layout computed for opts.Model. The file is
// constrained to architectures of that data model.
func Layout(f *ir.File, opts Options) ([]byte, bool) {
	if len(f.ValueTypes) == 0 {
		return nil, false
	}
	model := opts.Model
	if model == 0 {
		model = marshal.LP64
	}
	calc := marshal.NewLayoutCalculator(model)

	w := writer.New("\t")
	w.Line("var (")
	w.Indent()
	for i := range f.ValueTypes {
		vt := &f.ValueTypes[i]
		proof := calc.Prove(vt)
		w.Linef("_ = [1]struct{}{}[unsafe.Sizeof(%s{})-%d]", vt.Host, proof.Size)
		w.Linef("_ = [1]struct{}{}[unsafe.Alignof(%s{})-%d]", vt.Host, proof.Align)
		for _, fld := range vt.Fields {
			w.Linef("_ = [1]struct{}{}[unsafe.Offsetof(%s{}.%s)-%d]", vt.Host, ir.GoName(fld.Name), proof.FieldOffs[fld.Name])
		}
	}
	w.Dedent()
	w.Line(")")

	src := string(finish(f.Package, map[string]bool{"unsafe": true}, w.String()))
	// Build constraints must precede the package clause.
	return []byte("//go:build " + buildTags[model] + "\n\n" + src), true
}
