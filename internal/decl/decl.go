// Package decl is the declaration model the generation pass works on and the
// Oracle interface through which the host toolchain supplies it.
//
// The engine never talks to go/packages or go/types directly. It sees plain
// Declarations (syntax), asks the Oracle to resolve them into Symbols
// (semantics), and compares attribute types by TypeSymbol identity.
package decl

import (
	"fmt"
	"strings"

	"github.com/okra-platform/adaptergen/internal/diag"
)

// Oracle supplies declarations and answers semantic queries for one pass.
type Oracle interface {
	// Declarations returns every type declaration in a deterministic order.
	Declarations() []*Declaration

	// ResolveSymbol returns the semantic view of d, or false when d cannot be
	// resolved.
	ResolveSymbol(d *Declaration) (*Symbol, bool)

	// ResolveMarkerType resolves a fully qualified type name of the form
	// "import/path.Name".
	ResolveMarkerType(qualifiedName string) (*TypeSymbol, bool)
}

// Annotation is a marker attached to a declaration as written in source,
// e.g. "strongtype.GenerateAdapters" with args "true, true, false".
type Annotation struct {
	Name string
	Args string
}

// Declaration is a type declaration as found in source. It is owned by the
// Oracle that produced it.
type Declaration struct {
	Name        string
	Namespace   string // package import path
	PackageName string
	Dir         string // package directory, where generated files go
	Location    diag.Location
	Annotations []Annotation
}

// QualifiedName returns "namespace.Name".
func (d *Declaration) QualifiedName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "." + d.Name
}

// TypeSymbol is a resolved named type. Oracles intern exactly one
// *TypeSymbol per type, so identity is pointer identity.
type TypeSymbol struct {
	Name    string
	Package string
}

// Is reports whether t and other denote the same type.
func (t *TypeSymbol) Is(other *TypeSymbol) bool {
	return t != nil && t == other
}

// QualifiedName returns "package.Name".
func (t *TypeSymbol) QualifiedName() string {
	if t == nil {
		return "<unresolved>"
	}
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// TypeArg is a generic type argument as displayed relative to the declaring
// package, with the import paths the display string refers to.
type TypeArg struct {
	Display string
	Imports []string
}

// BaseType is one embedded field in a symbol's embedding tree. Base is the
// first field embedded by this type; Next is the field that follows it in the
// embedding struct.
type BaseType struct {
	Name     string // short name, without type arguments
	Package  string
	TypeArgs []TypeArg
	Pointer  bool // embedded as *Name
	Base     *BaseType
	Next     *BaseType
}

func (b *BaseType) String() string {
	if b == nil {
		return "<nil>"
	}
	if len(b.TypeArgs) == 0 {
		return b.Name
	}
	args := make([]string, len(b.TypeArgs))
	for i, a := range b.TypeArgs {
		args[i] = a.Display
	}
	return fmt.Sprintf("%s[%s]", b.Name, strings.Join(args, ", "))
}

// Attribute is an annotation after semantic resolution. Type is nil when the
// annotation name did not resolve to a type.
type Attribute struct {
	Name string
	Type *TypeSymbol
	Args []any
}

// Symbol is the semantic view of a Declaration.
type Symbol struct {
	Name        string
	Namespace   string
	Base        *BaseType
	Attributes  []Attribute
	Declaration *Declaration
}

// Ancestors returns the chain of first embedded fields from the immediate
// base to the root. A chain that loops back on itself is cut at the first
// repeated link.
func (s *Symbol) Ancestors() []*BaseType {
	var out []*BaseType
	seen := make(map[*BaseType]bool)
	for b := s.Base; b != nil && !seen[b]; b = b.Base {
		seen[b] = true
		out = append(out, b)
	}
	return out
}

// PathTo searches the embedding tree depth first, in field order, for a base
// accepted by match. It returns the links from the immediate base down to
// that base, or nil when none matches.
func (s *Symbol) PathTo(match func(*BaseType) bool) []*BaseType {
	onPath := make(map[*BaseType]bool)
	var walk func(b *BaseType, path []*BaseType) []*BaseType
	walk = func(b *BaseType, path []*BaseType) []*BaseType {
		for ; b != nil; b = b.Next {
			if onPath[b] {
				continue
			}
			p := append(path[:len(path):len(path)], b)
			if match(b) {
				return p
			}
			onPath[b] = true
			found := walk(b.Base, p)
			delete(onPath, b)
			if found != nil {
				return found
			}
		}
		return nil
	}
	return walk(s.Base, nil)
}
