package cpp

import (
	"testing"

	"github.com/wippyai/qtbind/ir"
)

func TestQProperty(t *testing.T) {
	i32 := ir.TypeRef{Native: "::std::int32_t"}
	tests := []struct {
		name string
		prop ir.Property
		want string
	}{
		{
			name: "reset",
			prop: ir.Property{Name: "num", Type: i32, Write: "mySetter", Reset: "my_resetter"},
			want: "Q_PROPERTY(::std::int32_t num READ getNum WRITE mySetter RESET my_resetter NOTIFY numChanged)",
		},
		{
			name: "constant and required",
			prop: ir.Property{Name: "num", Type: i32, Constant: true, Required: true},
			want: "Q_PROPERTY(::std::int32_t num READ getNum CONSTANT REQUIRED)",
		},
		{
			name: "final",
			prop: ir.Property{Name: "num", Type: i32, ReadOnly: true, Final: true},
			want: "Q_PROPERTY(::std::int32_t num READ getNum NOTIFY numChanged FINAL)",
		},
		{
			name: "renamed",
			prop: ir.Property{Name: "trivial_property", CxxName: "trivialProperty", Type: i32},
			want: "Q_PROPERTY(::std::int32_t trivialProperty READ getTrivialProperty WRITE setTrivialProperty NOTIFY trivialPropertyChanged)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := qProperty(&tc.prop, tc.prop.Names()); got != tc.want {
				t.Errorf("qProperty =\n%s\nwant\n%s", got, tc.want)
			}
		})
	}
}

func TestObject_RenamedProperty(t *testing.T) {
	f := &ir.File{Package: "p", Namespace: "ns", Objects: []ir.Object{{
		Name: "Gauge",
		Properties: []ir.Property{{
			Name: "level_value", CxxName: "level", HostName: "value",
			Type:  ir.TypeRef{Native: "::std::int32_t"},
			Reset: "resetLevel",
		}},
		Invokables: []ir.Invokable{{Name: "reset_level", CxxName: "resetLevel", Mutable: true, Invokable: true}},
	}}}
	ir.Normalize(f)
	if err := ir.Validate(f); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	u := Object(f, &f.Objects[0], Options{})

	mustContain(t, "header", u.Header,
		"Q_PROPERTY(::std::int32_t level READ getLevel WRITE setLevel RESET resetLevel NOTIFY levelChanged)",
		"::std::int32_t getLevel() const;",
		"Q_SLOT void setLevel(::std::int32_t value);",
		"Q_SIGNAL void levelChanged();",
		"Q_INVOKABLE void resetLevel();",
	)
	mustContain(t, "source", u.Source,
		"void Gauge::resetLevel()",
		"Gauge_reset_level(*this);",
	)
	mustNotContain(t, "header", u.Header, "level_value")
}

func TestObject_Casting(t *testing.T) {
	f, o := loadMyObject(t)
	u := Object(f, o, Options{})

	mustContain(t, "header", u.Header,
		"#include <qtbind/casting.h>",
		"QObject const* MyObject_upcastPtr(::cxx_qt::my_object::MyObject const* thiz);",
		"::cxx_qt::my_object::MyObject const* MyObject_downcastPtr(QObject const* base);",
	)
	mustContain(t, "source", u.Source,
		"QObject const*\nMyObject_upcastPtr(::cxx_qt::my_object::MyObject const* thiz)\n{\n  return ::qtbind::upcastPtr<::cxx_qt::my_object::MyObject, QObject>(thiz);\n}",
		"return ::qtbind::downcastPtr<::cxx_qt::my_object::MyObject, QObject>(base);",
	)
}
