package engine

import (
	"strings"

	"github.com/okra-platform/adaptergen/internal/decl"
	"github.com/okra-platform/adaptergen/internal/diag"
)

// Validator accepts candidates that embed, directly or transitively, one of
// the wrapper bases.
type Validator struct {
	Bases []string
}

// Validate resolves d and searches its embedded fields for a wrapper base.
// It returns the symbol and the immediate base on the path to the wrapper
// base. It reports a warning and returns false when d does not resolve, when
// no embedded field leads to a wrapper base, or when that path goes through a
// pointer the generated factory would leave nil.
func (v Validator) Validate(o decl.Oracle, d *decl.Declaration, r diag.Reporter) (*decl.Symbol, *decl.BaseType, bool) {
	sym, ok := o.ResolveSymbol(d)
	if !ok || sym == nil {
		diag.Warnf(r, diag.SemanticResolutionFailed, d.Location,
			"%s: could not resolve declaration", d.QualifiedName())
		return nil, nil, false
	}

	path := sym.PathTo(func(b *decl.BaseType) bool { return v.isBase(b.Name) })
	if path == nil {
		diag.Warnf(r, diag.InheritanceCheckFailed, d.Location,
			"%s: does not embed %s", d.QualifiedName(), strings.Join(v.Bases, " or "))
		return nil, nil, false
	}
	for _, b := range path {
		if b.Pointer {
			diag.Warnf(r, diag.InheritanceCheckFailed, d.Location,
				"%s: embeds *%s; embed %s by value", d.QualifiedName(), b.Name, b.Name)
			return nil, nil, false
		}
	}
	return sym, path[0], true
}

func (v Validator) isBase(name string) bool {
	for _, b := range v.Bases {
		if b == name {
			return true
		}
	}
	return false
}
