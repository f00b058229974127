package writer

import "testing"

func TestWriter(t *testing.T) {
	w := New("  ")
	w.Line("class A {").
		Indent().
		Linef("int %s;", "x").
		Blank().
		Blank().
		Block("void f();\n\nvoid g();\n").
		Dedent().
		Line("};")

	want := "class A {\n  int x;\n\n  void f();\n\n  void g();\n};\n"
	if got := w.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestWriter_LiteralPercent(t *testing.T) {
	w := New("\t")
	w.Line("100%").Linef("%d%%", 50)
	if w.String() != "100%\n50%\n" {
		t.Errorf("got %q", w.String())
	}
}

func TestWriter_DedentFloor(t *testing.T) {
	w := New("\t").Dedent().Line("x")
	if w.String() != "x\n" {
		t.Errorf("got %q", w.String())
	}
}

func TestJoin(t *testing.T) {
	if got := Join(", ", "a", "", "b"); got != "a, b" {
		t.Errorf("Join = %q", got)
	}
	if got := Join(", "); got != "" {
		t.Errorf("empty Join = %q", got)
	}
}
