package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		line   string
		want   Annotation
		wantOK bool
	}{
		{"// @strongtype.GenerateAdapters(true, true, false)", Annotation{Name: "strongtype.GenerateAdapters", Args: "true, true, false"}, true},
		{"//@GenerateAdapters(true,false,true)", Annotation{Name: "GenerateAdapters", Args: "true,false,true"}, true},
		{"// @Deprecated", Annotation{Name: "Deprecated"}, true},
		{"  // @st.GenerateAdapters( )  ", Annotation{Name: "st.GenerateAdapters"}, true},
		{"// OrderID identifies an order.", Annotation{}, false},
		{"// email me @ home", Annotation{}, false},
		{"//go:generate adaptergen", Annotation{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseAnnotation(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs(`true, false, 3, 1.5, "x", maybe, !true`)
	require.NoError(t, err)
	assert.Equal(t, []any{true, false, int64(3), 1.5, "x", "maybe", "!true"}, args)

	args, err = ParseArgs("")
	require.NoError(t, err)
	assert.Empty(t, args)

	_, err = ParseArgs("true, (")
	assert.Error(t, err)
}

func TestSplitQualified(t *testing.T) {
	q, n := SplitQualified("github.com/okra-platform/adaptergen/strongtype.GenerateAdapters")
	assert.Equal(t, "github.com/okra-platform/adaptergen/strongtype", q)
	assert.Equal(t, "GenerateAdapters", n)

	q, n = SplitQualified("GenerateAdapters")
	assert.Empty(t, q)
	assert.Equal(t, "GenerateAdapters", n)
}

func TestMemoryOracle_TypeIdentity(t *testing.T) {
	// Test: types are interned, identity is by pointer not by name
	o := NewMemoryOracle()
	a := o.Type("example.com/strongtype.GenerateAdapters")
	b := o.Type("example.com/strongtype.GenerateAdapters")
	other := &TypeSymbol{Name: "GenerateAdapters", Package: "example.com/strongtype"}

	assert.True(t, a.Is(b))
	assert.False(t, a.Is(other))
	assert.False(t, (*TypeSymbol)(nil).Is(nil))

	resolved, ok := o.ResolveMarkerType("example.com/strongtype.GenerateAdapters")
	require.True(t, ok)
	assert.True(t, resolved.Is(a))

	_, ok = o.ResolveMarkerType("example.com/other.GenerateAdapters")
	assert.False(t, ok)
}

func TestSymbol_Ancestors(t *testing.T) {
	root := &BaseType{Name: "Record", TypeArgs: []TypeArg{{Display: "int"}}}
	mid := &BaseType{Name: "Identifier"}
	s := &Symbol{Name: "OrderID", Base: Chain(mid, root)}

	anc := s.Ancestors()
	require.Len(t, anc, 2)
	assert.Equal(t, "Identifier", anc[0].String())
	assert.Equal(t, "Record[int]", anc[1].String())

	// Test: a looping chain stops at the repeated link
	root.Base = mid
	assert.Len(t, s.Ancestors(), 2)
}

func TestSymbol_PathTo(t *testing.T) {
	isRecord := func(b *BaseType) bool { return b.Name == "Record" }

	tests := []struct {
		name string
		base func() *BaseType
		want []string
	}{
		{
			name: "immediate base",
			base: func() *BaseType { return &BaseType{Name: "Record"} },
			want: []string{"Record"},
		},
		{
			name: "later embedded field",
			base: func() *BaseType {
				return Fields(&BaseType{Name: "Audit"}, &BaseType{Name: "Record"})
			},
			want: []string{"Record"},
		},
		{
			name: "through an earlier field's embedding",
			base: func() *BaseType {
				return Fields(
					Chain(&BaseType{Name: "Audit"}, &BaseType{Name: "Stamp"}),
					Chain(&BaseType{Name: "Identifier"}, &BaseType{Name: "Record"}),
				)
			},
			want: []string{"Identifier", "Record"},
		},
		{
			name: "no match",
			base: func() *BaseType { return Fields(&BaseType{Name: "Audit"}, &BaseType{Name: "Model"}) },
		},
		{
			name: "loop",
			base: func() *BaseType {
				a := &BaseType{Name: "A"}
				a.Base = a
				return a
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Symbol{Name: "OrderID", Base: tt.base()}
			var got []string
			for _, b := range s.PathTo(isRecord) {
				got = append(got, b.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryOracle_AddFillsSymbol(t *testing.T) {
	o := NewMemoryOracle()
	d := &Declaration{Name: "OrderID", Namespace: "example.com/orders"}
	lost := &Declaration{Name: "Lost"}
	o.Add(d, &Symbol{})
	o.Add(lost, nil)

	assert.Len(t, o.Declarations(), 2)
	s, ok := o.ResolveSymbol(d)
	require.True(t, ok)
	assert.Equal(t, "OrderID", s.Name)
	assert.Equal(t, "example.com/orders", s.Namespace)
	assert.Same(t, d, s.Declaration)
	assert.Equal(t, "example.com/orders.OrderID", d.QualifiedName())

	_, ok = o.ResolveSymbol(lost)
	assert.False(t, ok)
}
