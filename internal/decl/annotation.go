package decl

import (
	"regexp"
	"strings"
)

var annotationPattern = regexp.MustCompile(`^//\s*@([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)?)\s*(?:\((.*)\))?\s*$`)

// ParseAnnotation parses one comment line of the form
//
//	// @pkg.Name(arg, arg)
//
// and reports false for any other line. The argument text is kept as written.
func ParseAnnotation(line string) (Annotation, bool) {
	m := annotationPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Annotation{}, false
	}
	return Annotation{Name: m[1], Args: strings.TrimSpace(m[2])}, true
}

// SplitQualified splits "pkg.Name" into ("pkg", "Name"); an unqualified name
// yields ("", name).
func SplitQualified(name string) (qualifier, short string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
