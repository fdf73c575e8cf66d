package decl

// MemoryOracle is an Oracle over an in-memory declaration graph. It backs
// tests and callers that build declarations without a Go toolchain.
type MemoryOracle struct {
	decls   []*Declaration
	symbols map[*Declaration]*Symbol
	types   map[string]*TypeSymbol
}

func NewMemoryOracle() *MemoryOracle {
	return &MemoryOracle{
		symbols: make(map[*Declaration]*Symbol),
		types:   make(map[string]*TypeSymbol),
	}
}

// Type interns the type named "pkg.Name" and returns its single symbol.
func (o *MemoryOracle) Type(qualifiedName string) *TypeSymbol {
	if t, ok := o.types[qualifiedName]; ok {
		return t
	}
	pkg, name := SplitQualified(qualifiedName)
	t := &TypeSymbol{Name: name, Package: pkg}
	o.types[qualifiedName] = t
	return t
}

// Add registers d. A nil symbol makes d unresolvable.
func (o *MemoryOracle) Add(d *Declaration, s *Symbol) {
	o.decls = append(o.decls, d)
	if s != nil {
		if s.Name == "" {
			s.Name = d.Name
		}
		if s.Namespace == "" {
			s.Namespace = d.Namespace
		}
		s.Declaration = d
		o.symbols[d] = s
	}
}

func (o *MemoryOracle) Declarations() []*Declaration {
	return o.decls
}

func (o *MemoryOracle) ResolveSymbol(d *Declaration) (*Symbol, bool) {
	s, ok := o.symbols[d]
	return s, ok
}

// ResolveMarkerType only resolves types previously interned through Type.
func (o *MemoryOracle) ResolveMarkerType(qualifiedName string) (*TypeSymbol, bool) {
	t, ok := o.types[qualifiedName]
	return t, ok
}

// Chain links bases so that each one's Base is the next, and returns the
// first.
func Chain(bases ...*BaseType) *BaseType {
	for i := 0; i+1 < len(bases); i++ {
		bases[i].Base = bases[i+1]
	}
	if len(bases) == 0 {
		return nil
	}
	return bases[0]
}

// Fields links bases as consecutive embedded fields of one struct, and
// returns the first.
func Fields(bases ...*BaseType) *BaseType {
	for i := 0; i+1 < len(bases); i++ {
		bases[i].Next = bases[i+1]
	}
	if len(bases) == 0 {
		return nil
	}
	return bases[0]
}
