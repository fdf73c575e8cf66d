package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/okra-platform/adaptergen/internal/config"
	"github.com/okra-platform/adaptergen/internal/emit"
)

// Generate runs one pass and writes the generated files next to their
// declarations.
func (c *Controller) Generate(ctx context.Context) error {
	cfg, root, err := c.loadConfig()
	if err != nil {
		return err
	}
	return c.generate(ctx, cfg, root)
}

func (c *Controller) generate(ctx context.Context, cfg *config.Config, root string) error {
	sink := emit.NewFileSink(c.logger())
	res, bag, err := c.pass(ctx, cfg, root, sink)
	if perr := c.printDiagnostics(bag, root); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}

	for _, ch := range sink.Changes() {
		if ch.Status == emit.Unchanged && !c.flags().Verbose {
			continue
		}
		rel, relErr := filepath.Rel(root, ch.Path)
		if relErr != nil {
			rel = ch.Path
		}
		fmt.Fprintf(c.stdout(), "%s %s\n", ch.Status, rel)
	}

	c.logger().Info().
		Int("generated", res.Generated).
		Int("rejected", res.Rejected).
		Int("failed", res.Failed).
		Msg("generation finished")

	return failure(bag)
}
