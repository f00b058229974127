package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates indented source text. Methods chain.
type Writer struct {
	sb     strings.Builder
	unit   string
	indent int
}

// New returns a writer that indents with unit, for example "  " or "\t".
func New(unit string) *Writer {
	return &Writer{unit: unit}
}

// Line writes s as one indented line. An empty s writes a bare newline.
func (w *Writer) Line(s string) *Writer {
	if s == "" {
		w.sb.WriteByte('\n')
		return w
	}
	w.writeIndent()
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
	return w
}

// Linef writes one indented, formatted line.
func (w *Writer) Linef(format string, args ...any) *Writer {
	w.writeIndent()
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
	return w
}

// Blank writes an empty line unless the output already ends with one.
func (w *Writer) Blank() *Writer {
	s := w.sb.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return w
	}
	w.sb.WriteByte('\n')
	return w
}

// Block writes multi-line text, indenting every non-empty line.
func (w *Writer) Block(text string) *Writer {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return w
	}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			w.sb.WriteByte('\n')
			continue
		}
		w.writeIndent()
		w.sb.WriteString(line)
		w.sb.WriteByte('\n')
	}
	return w
}

// Raw writes text verbatim.
func (w *Writer) Raw(s string) *Writer {
	w.sb.WriteString(s)
	return w
}

func (w *Writer) Indent() *Writer {
	w.indent++
	return w
}

func (w *Writer) Dedent() *Writer {
	if w.indent > 0 {
		w.indent--
	}
	return w
}

func (w *Writer) Len() int {
	return w.sb.Len()
}

func (w *Writer) String() string {
	return w.sb.String()
}

func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}

func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.sb.WriteString(w.unit)
	}
}

// Join renders items separated by sep, skipping empty ones.
func Join(sep string, items ...string) string {
	out := items[:0:0]
	for _, it := range items {
		if it != "" {
			out = append(out, it)
		}
	}
	return strings.Join(out, sep)
}
