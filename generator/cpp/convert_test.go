package cpp

import (
	"regexp"
	"strings"
	"testing"

	"github.com/wippyai/qtbind/generator/headers"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
)

func TestObject_HostPassConversions(t *testing.T) {
	f, o := loadMyObject(t)
	u := Object(f, o, Options{})

	mustContain(t, "header", u.Header,
		"QString const& getLabel() const;",
		"QString& MyObject_getLabel(::cxx_qt::my_object::MyObject const& self);",
		"Q_INVOKABLE ::std::unique_ptr<QPoint> snapshot() const;",
		"QPoint MyObject_snapshot(::cxx_qt::my_object::MyObject const& self);",
	)
	mustContain(t, "source", u.Source,
		"return ::qtbind::convert<QString const&, QString&>(::cxx_qt::my_object::qtbind_my_object::MyObject_getLabel(*this));",
		"return ::qtbind::convert<::std::unique_ptr<QPoint>, QPoint>(::cxx_qt::my_object::qtbind_my_object::MyObject_snapshot(*this));",
	)
	mustNotContain(t, "source", u.Source,
		"convert<QString const&, QString const&>",
		"convert<::std::unique_ptr<QPoint>, ::std::unique_ptr<QPoint>>",
	)
}

func TestConvertTo(t *testing.T) {
	point := ir.TypeRef{Native: "QPoint", Host: "Point", Kind: ir.KindTrivial}
	with := func(native, host ir.Pass) (ir.TypeRef, ir.TypeRef) {
		dst, src := point, point
		dst.Pass, src.Pass = native, host
		return dst, src
	}

	tests := []struct {
		name     string
		native   ir.Pass
		host     ir.Pass
		strategy marshal.Strategy
		want     string
	}{
		{"identity", ir.PassValue, ir.PassValue, marshal.Identity, "::qtbind::convert<QPoint, QPoint>(x)"},
		{"identity ref", ir.PassRef, ir.PassRef, marshal.Identity, "::qtbind::convert<QPoint&, QPoint&>(x)"},
		{"unwrap", ir.PassValue, ir.PassOwned, marshal.UnwrapOwned, "::qtbind::convert<QPoint, ::std::unique_ptr<QPoint>>(x)"},
		{"box", ir.PassOwned, ir.PassValue, marshal.BoxValue, "::qtbind::convert<::std::unique_ptr<QPoint>, QPoint>(x)"},
		{"borrow", ir.PassConstRef, ir.PassRef, marshal.Borrow, "::qtbind::convert<QPoint const&, QPoint&>(x)"},
		{"borrow value", ir.PassConstRef, ir.PassValue, marshal.Borrow, "::qtbind::convert<QPoint const&, QPoint>(x)"},
	}
	specs := specializations(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dst, src := with(tc.native, tc.host)
			if got := marshal.Select(src, dst); got != tc.strategy {
				t.Fatalf("Select = %s, want %s", got, tc.strategy)
			}
			got := convertTo(dst, src, "x")
			if got != tc.want {
				t.Fatalf("convertTo = %s, want %s", got, tc.want)
			}

			r, from := templateArgs(t, got)
			matched := 0
			for _, s := range specs {
				if s.matches(r, decay(from)) {
					matched++
				}
			}
			if matched != 1 {
				t.Errorf("%s matches %d Converter specializations, want 1", got, matched)
			}
		})
	}
}

type specialization struct {
	r, t string
}

var typeParam = regexp.MustCompile(`\bT\b`)

// matches reports whether some T makes the specialization spell (r, t).
func (s specialization) matches(r, t string) bool {
	candidates := []string{t, strings.TrimSuffix(r, "&"), strings.TrimSuffix(r, " const&")}
	if inner, ok := unwrapPtr(t); ok {
		candidates = append(candidates, inner)
	}
	if inner, ok := unwrapPtr(r); ok {
		candidates = append(candidates, inner)
	}
	for _, c := range candidates {
		if typeParam.ReplaceAllLiteralString(s.r, c) == r && typeParam.ReplaceAllLiteralString(s.t, c) == t {
			return true
		}
	}
	return false
}

func unwrapPtr(s string) (string, bool) {
	const prefix = "::std::unique_ptr<"
	if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, ">") {
		return s[len(prefix) : len(s)-1], true
	}
	return "", false
}

// decay mirrors std::decay_t for the spellings the generator emits.
func decay(s string) string {
	s = strings.TrimSuffix(s, "&")
	return strings.TrimSuffix(s, " const")
}

func specializations(t *testing.T) []specialization {
	t.Helper()
	data, ok := headers.Lookup("qtbind/convert.h")
	if !ok {
		t.Fatal("convert.h not embedded")
	}
	re := regexp.MustCompile(`struct Converter<(.+)>\n`)
	var out []specialization
	for _, m := range re.FindAllStringSubmatch(string(data), -1) {
		args := splitTopLevel(m[1])
		out = append(out, specialization{r: args[0], t: args[1]})
	}
	if len(out) != 5 {
		t.Fatalf("found %d Converter specializations, want 5", len(out))
	}
	for _, s := range out {
		if s.r == "T const&" && s.t != "T" {
			t.Errorf("borrow specialization is keyed on %q; lookups use the decayed source type", s.t)
		}
	}
	return out
}

func templateArgs(t *testing.T, expr string) (string, string) {
	t.Helper()
	start := strings.Index(expr, "<")
	end := strings.LastIndex(expr, ">(")
	args := splitTopLevel(expr[start+1 : end])
	if len(args) != 2 {
		t.Fatalf("%s: want two template arguments", expr)
	}
	return args[0], args[1]
}

func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, c := range s {
		switch c {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(s[start:]))
}
