package commands

import (
	"context"
	"sync"

	"github.com/okra-platform/adaptergen/internal/errors"
	"github.com/okra-platform/adaptergen/internal/watch"
)

// Watch generates once, then regenerates whenever a watched Go file under
// the project root changes. It runs until ctx is cancelled.
func (c *Controller) Watch(ctx context.Context) error {
	cfg, root, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger := c.logger()

	var mu sync.Mutex
	regenerate := func() {
		mu.Lock()
		defer mu.Unlock()
		if err := c.generate(ctx, cfg, root); err != nil {
			logger.Error().Err(err).Msg("generation failed")
		}
	}
	regenerate()

	fw, err := watch.NewFileWatcher(watch.Options{
		Patterns: cfg.Watch.Patterns,
		Exclude:  cfg.Watch.Exclude,
		Debounce: cfg.Watch.Debounce.Duration,
		Logger:   logger,
	}, func(paths []string) {
		logger.Info().Strs("files", paths).Msg("regenerating")
		regenerate()
	})
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.AddDirectory(root); err != nil {
		return err
	}

	logger.Info().Str("root", root).Msg("watching for changes")
	if err := fw.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
