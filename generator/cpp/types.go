package cpp

import (
	"sort"

	"github.com/wippyai/qtbind/generator/internal/writer"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
)

// TypesName is the shared header of namespace-level enums and value type
// layout checks. It exists only when f declares either.
func TypesName(f *ir.File) (string, bool) {
	if len(f.Enums) == 0 && len(f.ValueTypes) == 0 {
		return "", false
	}
	return f.Package + "_types.qtbind.h", true
}

// Types renders the shared header. Value type proofs are computed for
// model and checked by the native compiler.
func Types(f *ir.File, model marshal.DataModel) (string, bool) {
	if _, ok := TypesName(f); !ok {
		return "", false
	}
	w := writer.New(indent)
	w.Line(Banner)
	w.Line("#pragma once")
	w.Blank()
	w.Line("#include <cstddef>")
	w.Line("#include <cstdint>")
	w.Line("#include <type_traits>")
	w.Blank()
	w.Line("#include <QtCore/QObject>")
	for _, inc := range valueIncludes(f) {
		w.Linef("#include %s", inc)
	}
	w.Blank()

	namespaceEnums(w, f.Enums)

	calc := marshal.NewLayoutCalculator(model)
	for i := range f.ValueTypes {
		vt := &f.ValueTypes[i]
		proof := calc.Prove(vt)
		w.Linef("static_assert(sizeof(%s) == %d, \"%s: unexpected size\");", vt.Native, proof.Size, vt.Name)
		w.Linef("static_assert(alignof(%s) == %d, \"%s: unexpected alignment\");", vt.Native, proof.Align, vt.Name)
		if proof.Relocatable {
			w.Linef("static_assert(::std::is_trivially_copyable<%s>::value, \"%s must be trivially relocatable\");", vt.Native, vt.Name)
		}
		w.Blank()
	}
	return w.String(), true
}

// valueIncludes returns the headers declaring the native value types, in
// declaration order without duplicates.
func valueIncludes(f *ir.File) []string {
	var out []string
	seen := make(map[string]bool)
	for i := range f.ValueTypes {
		inc := f.ValueTypes[i].NativeInclude()
		if inc == "" || seen[inc] {
			continue
		}
		seen[inc] = true
		out = append(out, inc)
	}
	return out
}

// PluginName is the QML extension plugin source of a file.
const PluginName = "qml_plugin.cpp"

// Plugin renders the QML extension plugin that registers every QML
// element of f. It exists only when f declares a QML module.
func Plugin(f *ir.File, opts Options) (string, bool) {
	if f.QML == nil {
		return "", false
	}
	var objects []*ir.Object
	for i := range f.Objects {
		if f.Objects[i].QML != nil {
			objects = append(objects, &f.Objects[i])
		}
	}
	sort.SliceStable(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })

	class := f.QML.PluginName
	if class == "" {
		class = ir.GoName(f.Package) + "Plugin"
	}

	w := writer.New(indent)
	w.Line(Banner)
	w.Line("#include <QtQml/QQmlExtensionPlugin>")
	w.Blank()
	for _, o := range objects {
		w.Linef("#include \"%s%s\"", opts.IncludePrefix, HeaderName(o))
	}
	w.Blank()
	w.Linef("class %s : public QQmlExtensionPlugin", class)
	w.Line("{")
	w.Indent()
	w.Line("Q_OBJECT")
	w.Line("Q_PLUGIN_METADATA(IID QQmlExtensionInterface_iid)")
	w.Dedent()
	w.Blank()
	w.Line("public:")
	w.Indent()
	w.Line("void registerTypes(char const* uri) override")
	w.Line("{")
	w.Indent()
	w.Linef("%s::registerNumericAliases();", Runtime)
	for _, o := range objects {
		w.Linef("%s::%s(uri, %d, %d);", nsPrefix(o.Namespace), registerName(o), f.QML.Major, f.QML.Minor)
	}
	w.Dedent()
	w.Line("}")
	w.Dedent()
	w.Line("};")
	w.Blank()
	w.Line("#include \"qml_plugin.moc\"")
	return w.String(), true
}

func nsPrefix(ns string) string {
	if ns == "" {
		return ""
	}
	return "::" + ns
}
