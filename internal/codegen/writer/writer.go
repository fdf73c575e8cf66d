// Package writer builds Go source text line by line with tab indentation.
package writer

import (
	"fmt"
	"sort"
	"strings"
)

// Writer accumulates generated source. The zero value is not usable; call New.
type Writer struct {
	sb          strings.Builder
	indentLevel int
	linePrefix  string
	needsIndent bool
}

// New creates a writer that indents with tabs, as gofmt does.
func New() *Writer {
	return &Writer{needsIndent: true}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.linePrefix = strings.Repeat("\t", w.indentLevel)
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.linePrefix = strings.Repeat("\t", w.indentLevel)
	}
}

// Write writes s without a trailing newline.
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Line writes a formatted line.
func (w *Writer) Line(format string, args ...any) {
	if len(args) == 0 {
		w.Write(format)
	} else {
		w.Write(fmt.Sprintf(format, args...))
	}
	w.Newline()
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine adds an empty line unless the output already ends with one.
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		w.Newline()
	}
}

// Block writes an opening line ending in "{", the indented body and the
// closing "}".
//
//	w.Block("func (w %s) Get() %s", name, typ)(func() { w.Line("return w.v") })
func (w *Writer) Block(format string, args ...any) func(body func()) {
	return func(body func()) {
		w.Line(fmt.Sprintf(format, args...) + " {")
		w.Indent()
		body()
		w.Dedent()
		w.Line("}")
	}
}

// Doc writes a doc comment, one "//" line per line of text.
func (w *Writer) Doc(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			w.Line("//")
			continue
		}
		w.Line("// %s", line)
	}
}

// Imports writes an import block with standard library paths first, then a
// blank line, then the rest. Both groups are sorted and deduplicated. It
// writes nothing for an empty set.
func (w *Writer) Imports(paths []string) {
	var std, other []string
	seen := make(map[string]bool)
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		if isStdlib(p) {
			std = append(std, p)
		} else {
			other = append(other, p)
		}
	}
	if len(std)+len(other) == 0 {
		return
	}
	sort.Strings(std)
	sort.Strings(other)

	w.Line("import (")
	w.Indent()
	for _, p := range std {
		w.Line("%q", p)
	}
	if len(std) > 0 && len(other) > 0 {
		w.Newline()
	}
	for _, p := range other {
		w.Line("%q", p)
	}
	w.Dedent()
	w.Line(")")
}

// isStdlib uses the goimports heuristic: standard library paths have no dot
// in their first element.
func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

func (w *Writer) String() string {
	return w.sb.String()
}

func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}
