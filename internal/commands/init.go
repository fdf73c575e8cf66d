package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/okra-platform/adaptergen/internal/config"
	"github.com/okra-platform/adaptergen/internal/engine"
	"github.com/okra-platform/adaptergen/internal/errors"
)

type InitOptions struct {
	Packages            string
	RuntimePackage      string
	MissingTypeArgument string
	Format              string // json or toml
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type InitCommand struct {
	dir        string
	filesystem FileSystem
	out        io.Writer
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand(dir string, out io.Writer) *InitCommand {
	return &InitCommand{
		dir:        dir,
		filesystem: &osFileSystem{},
		out:        out,
	}
}

func (c *Controller) Init(ctx context.Context) error {
	dir := c.flags().Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get current directory")
		}
		dir = wd
	}
	cmd := NewInitCommand(dir, c.stdout())
	return cmd.Run(ctx)
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	for _, name := range []string{config.JSONFileName, config.TOMLFileName} {
		if _, err := ic.filesystem.Stat(filepath.Join(ic.dir, name)); err == nil {
			return errors.WithHint(
				errors.Newf("%s already exists in %s", name, ic.dir),
				"edit the existing file or remove it first")
		}
	}

	var options *InitOptions
	var err error

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return errors.Wrap(err, "failed to get init options")
		}
	}

	cfg, err := options.config()
	if err != nil {
		return err
	}

	name, data, err := encodeConfig(cfg, options.Format)
	if err != nil {
		return err
	}
	path := filepath.Join(ic.dir, name)
	if err := ic.filesystem.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	fmt.Fprintf(ic.out, "created %s\n", path)
	return nil
}

// config turns the answers into a validated configuration.
func (o *InitOptions) config() (*config.Config, error) {
	cfg := &config.Config{
		RuntimePackage:      strings.TrimSpace(o.RuntimePackage),
		MissingTypeArgument: o.MissingTypeArgument,
	}
	for _, p := range strings.Split(o.Packages, ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.Packages = append(cfg.Packages, p)
		}
	}
	defaults := config.Default()
	if cfg.RuntimePackage == "" {
		cfg.RuntimePackage = defaults.RuntimePackage
	}
	cfg.Marker = cfg.RuntimePackage + ".GenerateAdapters"
	if len(cfg.Packages) == 0 {
		cfg.Packages = defaults.Packages
	}
	cfg.RecordBase = defaults.RecordBase
	cfg.ClassBase = defaults.ClassBase
	cfg.FileSuffix = defaults.FileSuffix
	cfg.Watch = defaults.Watch
	if cfg.MissingTypeArgument == "" {
		cfg.MissingTypeArgument = defaults.MissingTypeArgument
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func encodeConfig(cfg *config.Config, format string) (string, []byte, error) {
	switch format {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return "", nil, errors.Wrap(err, "failed to encode config")
		}
		return config.TOMLFileName, buf.Bytes(), nil
	case "", "json":
		data, err := cfg.Marshal()
		if err != nil {
			return "", nil, err
		}
		return config.JSONFileName, data, nil
	}
	return "", nil, errors.Newf("unknown config format %q", format)
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	options := &InitOptions{
		Packages:            "./...",
		RuntimePackage:      config.Default().RuntimePackage,
		MissingTypeArgument: string(engine.RejectMissingTypeArgument),
		Format:              "json",
	}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		// Normal execution
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(options *InitOptions) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Packages").
				Description("Comma-separated package patterns to scan").
				Value(&options.Packages).
				Validate(validatePackages),

			huh.NewInput().
				Title("Runtime package").
				Description("Import path of the strongtype runtime generated code builds on").
				Value(&options.RuntimePackage).
				Validate(validateImportPath),

			huh.NewSelect[string]().
				Title("Missing type argument").
				Description("What to do when a wrapper's base has no type argument").
				Options(
					huh.NewOption("Reject the wrapper", string(engine.RejectMissingTypeArgument)),
					huh.NewOption("Fall back to int", string(engine.FallbackMissingTypeArgument)),
				).
				Value(&options.MissingTypeArgument),

			huh.NewSelect[string]().
				Title("Format").
				Options(
					huh.NewOption("JSON", "json"),
					huh.NewOption("TOML", "toml"),
				).
				Value(&options.Format),
		),
	)
}

func validatePackages(s string) error {
	if strings.TrimSpace(strings.ReplaceAll(s, ",", "")) == "" {
		return errors.New("at least one package pattern is required")
	}
	return nil
}

func validateImportPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("runtime package cannot be empty")
	}
	if strings.ContainsAny(s, " \t") || strings.HasSuffix(s, "/") {
		return errors.Newf("%q is not an import path", s)
	}
	return nil
}
