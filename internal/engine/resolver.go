package engine

import (
	"github.com/okra-platform/adaptergen/internal/codegen"
	"github.com/okra-platform/adaptergen/internal/decl"
	"github.com/okra-platform/adaptergen/internal/diag"
	"github.com/okra-platform/adaptergen/internal/errors"
)

// MissingTypeArgument selects what happens when a wrapper's immediate base
// has no type argument.
type MissingTypeArgument string

const (
	// RejectMissingTypeArgument drops the candidate with a warning.
	RejectMissingTypeArgument MissingTypeArgument = "reject"
	// FallbackMissingTypeArgument encapsulates FallbackType instead.
	FallbackMissingTypeArgument MissingTypeArgument = "fallback"
)

// FallbackType is encapsulated under FallbackMissingTypeArgument.
const FallbackType = "int"

// ParseMissingTypeArgument validates a policy name. The empty string selects
// RejectMissingTypeArgument.
func ParseMissingTypeArgument(s string) (MissingTypeArgument, error) {
	switch MissingTypeArgument(s) {
	case "", RejectMissingTypeArgument:
		return RejectMissingTypeArgument, nil
	case FallbackMissingTypeArgument:
		return FallbackMissingTypeArgument, nil
	}
	return "", errors.WithHintf(
		errors.Newf("unknown missing type argument policy %q", s),
		"use %q or %q", RejectMissingTypeArgument, FallbackMissingTypeArgument)
}

// Resolver determines the encapsulated type of a validated symbol.
type Resolver struct {
	Policy MissingTypeArgument
}

// Resolve returns the first type argument of base, the immediate base of s
// on its path to a wrapper base.
func (r Resolver) Resolve(s *decl.Symbol, base *decl.BaseType, rep diag.Reporter) (codegen.EncapsulatedType, bool) {
	if base != nil && len(base.TypeArgs) > 0 {
		arg := base.TypeArgs[0]
		return codegen.EncapsulatedType{Name: arg.Display, Imports: arg.Imports}, true
	}

	if r.Policy == FallbackMissingTypeArgument {
		diag.Infof(rep, diag.EncapsulatedTypeMissing, location(s),
			"%s: base %s has no type argument, using %s", s.Name, base, FallbackType)
		return codegen.EncapsulatedType{Name: FallbackType}, true
	}

	diag.Warnf(rep, diag.EncapsulatedTypeMissing, location(s),
		"%s: base %s has no type argument", s.Name, base)
	return codegen.EncapsulatedType{}, false
}
