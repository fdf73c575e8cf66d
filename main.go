package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/adaptergen/internal/commands"
	"github.com/okra-platform/adaptergen/internal/errors"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	flags := &commands.Flags{}
	ctrl := &commands.Controller{
		Flags: flags,
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	passFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to adaptergen.json or adaptergen.toml (default: searched from --dir upwards)",
			Destination: &flags.Config,
		},
		&cli.StringSliceFlag{
			Name:    "packages",
			Aliases: []string{"p"},
			Usage:   "package patterns to scan",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "candidates processed in parallel (default: GOMAXPROCS)",
		},
		&cli.StringSliceFlag{
			Name:  "tags",
			Usage: "build tags used when loading packages",
		},
		&cli.StringFlag{
			Name:        "missing-type-argument",
			Usage:       "reject or fallback",
			Destination: &flags.MissingTypeArgument,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "diagnostics format (pretty, json)",
			Value:       "pretty",
			Destination: &flags.Format,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "show informational diagnostics",
			Destination: &flags.Verbose,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "disable colored output",
			Sources:     cli.EnvVars("NO_COLOR"),
			Destination: &flags.NoColor,
		},
	}

	// readPassFlags copies slice and int flags, which have no destination of
	// the right type.
	readPassFlags := func(ctx context.Context, c *cli.Command) (context.Context, error) {
		flags.Packages = c.StringSlice("packages")
		flags.Jobs = int(c.Int("jobs"))
		flags.BuildTags = c.StringSlice("tags")
		return ctx, nil
	}

	app := &cli.Command{
		Name:    "adaptergen",
		Usage:   "Generate persistence, JSON and conversion adapters for strong types",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("ADAPTERGEN_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"C"},
				Usage:       "run as if started in `DIR`",
				Destination: &flags.Dir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, errors.Wrap(err, "failed to parse log level")
			}

			log.Logger = log.Level(level)

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "Write adapter files for every annotated strong type",
				Flags:  passFlags,
				Before: readPassFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx)
				},
			},
			{
				Name:  "check",
				Usage: "Report diagnostics without writing; --diff compares with files on disk",
				Flags: append(append([]cli.Flag{}, passFlags...), &cli.BoolFlag{
					Name:        "diff",
					Usage:       "fail when generated files are missing or stale",
					Destination: &flags.Diff,
				}),
				Before: readPassFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Check(ctx)
				},
			},
			{
				Name:   "watch",
				Usage:  "Regenerate adapters when Go files change",
				Flags:  passFlags,
				Before: readPassFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx)
				},
			},
			{
				Name:  "init",
				Usage: "Create an adaptergen configuration file",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		ev := log.Fatal().Err(err)
		if hints := errors.Hints(err); hints != "" {
			ev = ev.Str("hint", hints)
		}
		ev.Msg("failed to run adaptergen")
	}
}
