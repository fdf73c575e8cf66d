package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/okra-platform/adaptergen/internal/emit"
	"github.com/okra-platform/adaptergen/internal/errors"
)

// ErrStaleFiles is returned by check --diff when generated files on disk do
// not match a fresh pass.
var ErrStaleFiles = errors.New("generated files are out of date")

// Check runs one pass without writing anything. With --diff it also compares
// the result against the files on disk.
func (c *Controller) Check(ctx context.Context) error {
	cfg, root, err := c.loadConfig()
	if err != nil {
		return err
	}

	sink := emit.NewMemorySink()
	_, bag, err := c.pass(ctx, cfg, root, sink)
	if perr := c.printDiagnostics(bag, root); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	if err := failure(bag); err != nil {
		return err
	}
	if !c.flags().Diff {
		return nil
	}

	drifts, err := emit.Compare(sink.Units())
	if err != nil {
		return err
	}
	for _, d := range drifts {
		rel, relErr := filepath.Rel(root, d.Path)
		if relErr != nil {
			rel = d.Path
		}
		if d.Missing {
			fmt.Fprintf(c.stdout(), "missing %s\n", rel)
			continue
		}
		fmt.Fprintf(c.stdout(), "stale %s\n%s", rel, d.Diff)
	}
	if len(drifts) > 0 {
		return errors.WithHint(
			errors.Wrapf(ErrStaleFiles, "%d files", len(drifts)),
			"run adaptergen generate")
	}
	return nil
}
