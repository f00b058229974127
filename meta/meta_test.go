package meta

import (
	"errors"
	"testing"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/ir"
)

func loadObject(t *testing.T) (*ir.File, *ir.Object) {
	t.Helper()
	f, err := ir.LoadFile("../ir/testdata/my_object.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return f, &f.Objects[0]
}

func TestFromIR(t *testing.T) {
	_, obj := loadObject(t)
	mo := FromIR(obj)

	if mo.ClassName != "::cxx_qt::my_object::MyObject" {
		t.Errorf("class = %q", mo.ClassName)
	}
	if mo.SuperClass != "QObject" {
		t.Errorf("super = %q", mo.SuperClass)
	}

	count, ok := mo.Property("count")
	if !ok {
		t.Fatal("count property missing")
	}
	if count.Type != "qint32" {
		t.Errorf("count type = %q, want the registered alias", count.Type)
	}
	if label, _ := mo.Property("label"); label.Type != "QString" {
		t.Errorf("label type = %q", label.Type)
	}
	if count.Read != "getCount" || count.Write != "setCount" || count.Notify != "countChanged" {
		t.Errorf("count = %+v", count)
	}

	version, ok := mo.Property("version")
	if !ok || !version.Constant || version.Notify != "" || version.Write != "" {
		t.Errorf("version = %+v", version)
	}

	if _, ok := mo.Signal("countChanged"); !ok {
		t.Error("notify signal missing")
	}
	data, ok := mo.Signal("dataChanged")
	if !ok || len(data.Params) != 2 || data.ParamTypes[0] != "qint32" || data.ParamTypes[1] != "QPoint" {
		t.Errorf("dataChanged = %+v", data)
	}

	for _, m := range mo.Methods {
		if m.Name == "increment" && m.Const {
			t.Error("mutable invokable must not be const")
		}
		if m.Name == "sum" && (m.Return != "qint32" || !m.Const) {
			t.Errorf("sum = %+v", m)
		}
	}

	if len(mo.Enums) != 1 || mo.Enums[0].Keys[1] != "Running" || mo.Enums[0].Values[1] != 1 {
		t.Errorf("enums = %+v", mo.Enums)
	}
}

func TestFromIR_PrivateSignal(t *testing.T) {
	f := &ir.File{Package: "p", Objects: []ir.Object{{
		Name:    "A",
		Signals: []ir.Signal{{Name: "secret", Private: true}},
	}}}
	ir.Normalize(f)

	if _, ok := FromIR(&f.Objects[0]).Signal("secret"); !ok {
		t.Error("a private signal is still a connectable meta signal")
	}
}

func TestRegistry(t *testing.T) {
	f, obj := loadObject(t)
	reg := NewRegistry()

	if err := reg.RegisterFile(f); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	r, ok := reg.Lookup(f.QML.URI, obj.QMLName())
	if !ok {
		t.Fatal("Lookup failed")
	}
	if r.Major != 1 || r.Minor != 0 || r.Meta.ClassName != obj.QualifiedName() {
		t.Errorf("registration = %+v", r)
	}
	if names := reg.Types(f.QML.URI); len(names) != 1 || names[0] != "MyObject" {
		t.Errorf("types = %v", names)
	}

	err := reg.RegisterType(f.QML.URI, 1, 0, FromIR(obj))
	if !errors.Is(err, &qerrors.Error{Phase: qerrors.PhaseRegister, Kind: qerrors.KindRegistration}) {
		t.Errorf("duplicate registration err = %v", err)
	}

	if err := reg.RegisterType("", 1, 0, FromIR(obj)); err == nil {
		t.Error("empty URI should fail")
	}
	if err := reg.RegisterType("other", -1, 0, FromIR(obj)); err == nil {
		t.Error("negative version should fail")
	}
	if _, ok := reg.Lookup("other", "MyObject"); ok {
		t.Error("failed registration must not be recorded")
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		t    ir.TypeRef
		want string
	}{
		{ir.TypeRef{Native: "::std::uint16_t", Host: "uint16", Kind: ir.KindPrimitive}, "quint16"},
		{ir.TypeRef{Native: "double", Host: "float64", Kind: ir.KindPrimitive}, "qreal"},
		{ir.TypeRef{Native: "bool", Host: "bool", Kind: ir.KindPrimitive}, "bool"},
		{ir.TypeRef{Native: "QPoint", Host: "Point", Kind: ir.KindTrivial}, "QPoint"},
		{ir.TypeRef{Native: "Handle", Host: "int64", Kind: ir.KindOpaque}, "Handle"},
	}
	for _, tc := range tests {
		if got := TypeName(tc.t); got != tc.want {
			t.Errorf("TypeName(%s) = %q, want %q", tc.t.Native, got, tc.want)
		}
	}
}

func TestAlias(t *testing.T) {
	tests := map[string]string{
		"int8":    "qint8",
		"uint64":  "quint64",
		"float64": "qreal",
	}
	for host, want := range tests {
		if got, ok := Alias(host); !ok || got != want {
			t.Errorf("Alias(%q) = %q, %v", host, got, ok)
		}
	}
	if _, ok := Alias("string"); ok {
		t.Error("string has no numeric alias")
	}
}
