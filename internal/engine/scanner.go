package engine

import (
	"strings"

	"github.com/okra-platform/adaptergen/internal/decl"
)

// Scan returns the declarations carrying an annotation whose name contains
// markerShortName. It is a syntactic pre-filter: nothing is resolved, and an
// annotation from an unrelated package with the same short name still passes.
func Scan(decls []*decl.Declaration, markerShortName string) []*decl.Declaration {
	var out []*decl.Declaration
	for _, d := range decls {
		for _, a := range d.Annotations {
			if strings.Contains(a.Name, markerShortName) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
