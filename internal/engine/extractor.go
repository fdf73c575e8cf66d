package engine

import (
	"github.com/okra-platform/adaptergen/internal/codegen"
	"github.com/okra-platform/adaptergen/internal/decl"
	"github.com/okra-platform/adaptergen/internal/diag"
)

// markerArity is the number of positional arguments of the marker:
// persistence, json, conversion.
const markerArity = 3

// ExtractConfig reads the GenerationConfig off the first attribute of s whose
// type is marker and which has exactly three arguments. Attributes are
// matched by type identity only; a same-named type from another package does
// not match.
func ExtractConfig(s *decl.Symbol, marker *decl.TypeSymbol, r diag.Reporter) (codegen.GenerationConfig, bool) {
	loc := location(s)
	for _, a := range s.Attributes {
		match := a.Type.Is(marker) && len(a.Args) == markerArity
		diag.Infof(r, diag.AttributeCompared, loc,
			"%s: attribute %s (%s) against %s: match=%t",
			s.Name, a.Name, a.Type.QualifiedName(), marker.QualifiedName(), match)
		if !match {
			continue
		}
		return codegen.GenerationConfig{
			Persistence: boolArg(a.Args, 0),
			JSON:        boolArg(a.Args, 1),
			Conversion:  boolArg(a.Args, 2),
		}, true
	}

	diag.Warnf(r, diag.MarkerNotFound, loc,
		"%s: no %s annotation with %d arguments", s.Name, marker.QualifiedName(), markerArity)
	return codegen.GenerationConfig{}, false
}

// boolArg returns args[i] when it is a bool, false otherwise.
func boolArg(args []any, i int) bool {
	if i >= len(args) {
		return false
	}
	b, _ := args[i].(bool)
	return b
}

func location(s *decl.Symbol) diag.Location {
	if s.Declaration == nil {
		return diag.Location{}
	}
	return s.Declaration.Location
}
