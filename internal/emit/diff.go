package emit

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/okra-platform/adaptergen/internal/codegen"
	"github.com/okra-platform/adaptergen/internal/errors"
)

// Drift is a generated file whose content on disk differs from what a pass
// produced.
type Drift struct {
	Path    string
	Missing bool
	Diff    string // unified diff from disk to generated; empty when Missing
}

// Compare reports every unit whose file is missing or stale. It never writes.
func Compare(units []*codegen.Unit) ([]Drift, error) {
	var out []Drift
	for _, u := range units {
		target := filepath.Join(u.Dir, u.Key)
		existing, err := os.ReadFile(target)
		if os.IsNotExist(err) {
			out = append(out, Drift{Path: target, Missing: true})
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", target)
		}
		if bytes.Equal(existing, u.Source) {
			continue
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(existing)),
			B:        difflib.SplitLines(string(u.Source)),
			FromFile: target,
			ToFile:   target + " (generated)",
			Context:  3,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to diff %s", target)
		}
		out = append(out, Drift{Path: target, Diff: diff})
	}
	return out, nil
}
