package writer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Indentation(t *testing.T) {
	// Test: nested blocks indent with tabs
	w := New()

	w.Block("func f()")(func() {
		w.Block("if ok")(func() {
			w.Line("return")
		})
	})

	assert.Equal(t, "func f() {\n\tif ok {\n\t\treturn\n\t}\n}\n", w.String())
}

func TestWriter_LineFormatting(t *testing.T) {
	w := New()
	w.Line("100%")
	w.Line("x := %d", 42)

	assert.Equal(t, "100%\nx := 42\n", w.String())
}

func TestWriter_DedentBelowZero(t *testing.T) {
	w := New()
	w.Dedent()
	w.Line("a")
	assert.Equal(t, "a\n", w.String())
}

func TestWriter_BlankLine(t *testing.T) {
	// Test: BlankLine never stacks and is a no-op on empty output
	w := New()
	w.BlankLine()
	w.Line("a")
	w.BlankLine()
	w.BlankLine()
	w.Line("b")

	lines := strings.Split(w.String(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"a", "", "b", ""}, lines)
}

func TestWriter_Doc(t *testing.T) {
	w := New()
	w.Doc("NewOrderID wraps value.\n\nIt never fails.")

	assert.Equal(t, "// NewOrderID wraps value.\n//\n// It never fails.\n", w.String())
}

func TestWriter_Imports(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{
			name:  "empty",
			paths: nil,
			want:  "",
		},
		{
			name:  "stdlib only",
			paths: []string{"time", "database/sql/driver", "time"},
			want:  "import (\n\t\"database/sql/driver\"\n\t\"time\"\n)\n",
		},
		{
			name:  "grouped",
			paths: []string{"github.com/okra-platform/adaptergen/strongtype", "time", ""},
			want:  "import (\n\t\"time\"\n\n\t\"github.com/okra-platform/adaptergen/strongtype\"\n)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			w.Imports(tt.paths)
			assert.Equal(t, tt.want, w.String())
		})
	}
}
