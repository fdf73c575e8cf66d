// Package diagfmt renders diagnostics for people (Pretty) and tools (JSON).
package diagfmt

import (
	"path/filepath"

	"github.com/okra-platform/adaptergen/internal/diag"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeRelative shows paths relative to BaseDir when possible.
	PathModeRelative PathMode = iota
	PathModeAbsolute
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	PathMode    PathMode
	BaseDir     string
	MinSeverity diag.Severity
	ShowSlug    bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode    PathMode
	BaseDir     string
	MinSeverity diag.Severity
	Max         int // 0 means no limit
}

func formatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return ""
	}
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	default:
		if base == "" {
			return path
		}
		if rel, err := filepath.Rel(base, path); err == nil {
			return rel
		}
		return path
	}
}
