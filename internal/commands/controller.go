// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/adaptergen/internal/codegen"
	"github.com/okra-platform/adaptergen/internal/config"
	"github.com/okra-platform/adaptergen/internal/diag"
	"github.com/okra-platform/adaptergen/internal/diagfmt"
	"github.com/okra-platform/adaptergen/internal/emit"
	"github.com/okra-platform/adaptergen/internal/engine"
	"github.com/okra-platform/adaptergen/internal/errors"
	"github.com/okra-platform/adaptergen/internal/loader"
)

// ErrGenerationFailed is returned when a pass reported errors.
var ErrGenerationFailed = errors.New("adapter generation failed")

type Flags struct {
	LogLevel            string
	Dir                 string
	Config              string
	Packages            []string
	Jobs                int
	BuildTags           []string
	MissingTypeArgument string
	Format              string
	Diff                bool
	Verbose             bool
	NoColor             bool
}

type Controller struct {
	Flags  *Flags
	Stdout io.Writer
	Logger *zerolog.Logger
}

func (c *Controller) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *Controller) logger() zerolog.Logger {
	if c.Logger != nil {
		return *c.Logger
	}
	return log.Logger
}

func (c *Controller) flags() *Flags {
	if c.Flags == nil {
		c.Flags = &Flags{}
	}
	return c.Flags
}

// loadConfig finds the configuration for the run and applies flag
// overrides. Without a configuration file the defaults are used and the
// root is the working directory.
func (c *Controller) loadConfig() (*config.Config, string, error) {
	f := c.flags()

	var (
		cfg  *config.Config
		root string
		err  error
	)
	switch {
	case f.Config != "":
		cfg, err = config.LoadConfigFromPath(f.Config)
		root = filepath.Dir(f.Config)
	default:
		start := f.Dir
		if start == "" {
			if start, err = os.Getwd(); err != nil {
				return nil, "", errors.Wrap(err, "failed to get current directory")
			}
		}
		cfg, root, err = config.LoadConfigFromDir(start)
		if errors.Is(err, errors.ErrNotFound) {
			c.logger().Debug().Str("dir", start).Msg("no config file, using defaults")
			cfg, root, err = config.Default(), start, nil
		}
	}
	if err != nil {
		return nil, "", err
	}

	if len(f.Packages) > 0 {
		cfg.Packages = f.Packages
	}
	if f.Jobs > 0 {
		cfg.Jobs = f.Jobs
	}
	if len(f.BuildTags) > 0 {
		cfg.BuildTags = f.BuildTags
	}
	if f.MissingTypeArgument != "" {
		cfg.MissingTypeArgument = f.MissingTypeArgument
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}

// pass loads the packages under root and runs one generation pass into sink.
// Diagnostics go to the returned bag and to the log.
func (c *Controller) pass(ctx context.Context, cfg *config.Config, root string, sink emit.Sink) (engine.Result, *diag.Bag, error) {
	logger := c.logger()
	bag := diag.NewBag()

	oracle, err := loader.Load(ctx, loader.Config{
		Dir:       root,
		Patterns:  cfg.Packages,
		BuildTags: cfg.BuildTags,
		Logger:    logger,
	})
	if err != nil {
		return engine.Result{}, bag, err
	}

	policy, err := engine.ParseMissingTypeArgument(cfg.MissingTypeArgument)
	if err != nil {
		return engine.Result{}, bag, err
	}

	eng := engine.New(engine.Options{
		MarkerType:          cfg.Marker,
		RecordBase:          cfg.RecordBase,
		ClassBase:           cfg.ClassBase,
		MissingTypeArgument: policy,
		Jobs:                cfg.Jobs,
		Synthesizer: codegen.NewSynthesizer(
			codegen.WithRuntimePackage(cfg.RuntimePackage),
			codegen.WithFileSuffix(cfg.FileSuffix),
		),
		Logger: logger,
	})

	reporter := diag.MultiReporter{
		&diag.BagReporter{Bag: bag},
		diag.LogReporter{Logger: logger},
	}
	res, err := eng.Run(ctx, oracle, sink, reporter)
	return res, bag, err
}

// printDiagnostics renders bag in the requested format.
func (c *Controller) printDiagnostics(bag *diag.Bag, root string) error {
	f := c.flags()
	minSev := diag.SevWarning
	if f.Verbose {
		minSev = diag.SevInfo
	}

	switch f.Format {
	case "json":
		return diagfmt.JSON(c.stdout(), bag, diagfmt.JSONOpts{BaseDir: root, MinSeverity: minSev})
	case "", "pretty":
		opts := diagfmt.PrettyOpts{
			Color:       !f.NoColor && !color.NoColor && c.Stdout == nil,
			BaseDir:     root,
			MinSeverity: minSev,
			ShowSlug:    f.Verbose,
		}
		bag.Sort()
		if err := diagfmt.Pretty(c.stdout(), bag, opts); err != nil {
			return err
		}
		return diagfmt.Summary(c.stdout(), bag, opts)
	default:
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "unknown format %q", f.Format),
			"use pretty or json")
	}
}

// failure turns a pass with error diagnostics into ErrGenerationFailed.
func failure(bag *diag.Bag) error {
	if !bag.HasErrors() {
		return nil
	}
	return errors.WithHint(
		errors.Wrapf(ErrGenerationFailed, "%d errors", bag.Count(diag.SevError)),
		"fix the declarations reported above and run again")
}
