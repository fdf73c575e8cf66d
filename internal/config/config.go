// Package config loads adaptergen.json or adaptergen.toml.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"

	"github.com/okra-platform/adaptergen/internal/codegen"
	"github.com/okra-platform/adaptergen/internal/decl"
	"github.com/okra-platform/adaptergen/internal/engine"
	"github.com/okra-platform/adaptergen/internal/errors"
)

// File names searched for, in order of preference.
const (
	JSONFileName = "adaptergen.json"
	TOMLFileName = "adaptergen.toml"
)

// Config represents the adaptergen configuration file
type Config struct {
	Packages            []string    `json:"packages" toml:"packages"`
	RuntimePackage      string      `json:"runtimePackage" toml:"runtimePackage"`
	Marker              string      `json:"marker" toml:"marker"`
	RecordBase          string      `json:"recordBase" toml:"recordBase"`
	ClassBase           string      `json:"classBase" toml:"classBase"`
	FileSuffix          string      `json:"fileSuffix" toml:"fileSuffix"`
	MissingTypeArgument string      `json:"missingTypeArgument" toml:"missingTypeArgument"`
	Jobs                int         `json:"jobs,omitempty" toml:"jobs"`
	BuildTags           []string    `json:"buildTags,omitempty" toml:"buildTags"`
	Watch               WatchConfig `json:"watch" toml:"watch"`
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	Patterns []string `json:"patterns" toml:"patterns"`
	Exclude  []string `json:"exclude" toml:"exclude"`
	Debounce Duration `json:"debounce" toml:"debounce"`
}

// Duration is a time.Duration written as a string such as "300ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "duration must be a string")
	}
	return d.UnmarshalText([]byte(s))
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if len(c.Packages) == 0 {
		c.Packages = []string{"./..."}
	}
	if c.RuntimePackage == "" {
		c.RuntimePackage = codegen.DefaultRuntimePackage
	}
	if c.Marker == "" {
		c.Marker = c.RuntimePackage + ".GenerateAdapters"
	}
	if c.RecordBase == "" {
		c.RecordBase = engine.DefaultRecordBase
	}
	if c.ClassBase == "" {
		c.ClassBase = engine.DefaultClassBase
	}
	if c.FileSuffix == "" {
		c.FileSuffix = codegen.DefaultFileSuffix
	}
	if c.MissingTypeArgument == "" {
		c.MissingTypeArgument = string(engine.RejectMissingTypeArgument)
	}
	if len(c.Watch.Patterns) == 0 {
		c.Watch.Patterns = []string{"*.go", "**/*.go"}
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{"*" + c.FileSuffix, "*_test.go", ".git", "vendor", "node_modules"}
	}
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 300 * time.Millisecond
	}
}

// Validate rejects values no pass could run with.
func (c *Config) Validate() error {
	if pkg, _ := decl.SplitQualified(c.Marker); pkg == "" {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidConfig, "marker %q is not qualified", c.Marker),
			"write the marker as import/path.Name, e.g. %s", engine.DefaultMarkerType)
	}
	if c.RecordBase == "" || c.ClassBase == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "recordBase and classBase must not be empty")
	}
	if !strings.HasSuffix(c.FileSuffix, ".go") {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "fileSuffix %q does not end in .go", c.FileSuffix),
			"generated files must be Go source files")
	}
	if c.Jobs < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "jobs must not be negative, got %d", c.Jobs)
	}
	if _, err := engine.ParseMissingTypeArgument(c.MissingTypeArgument); err != nil {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "missingTypeArgument %q is not a known policy", c.MissingTypeArgument),
			errors.Hints(err))
	}
	if c.Watch.Debounce.Duration < 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "watch.debounce must not be negative")
	}
	return nil
}

// LoadConfig loads the configuration from the current directory or a parent
// directory. It returns the directory the file was found in.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to get current directory")
	}

	return LoadConfigFromDir(dir)
}

// LoadConfigFromPath loads a configuration file; the extension selects the
// format.
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var config Config
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return &config, nil
}

// LoadConfigFromDir searches for a configuration file in startDir and its
// parents. When none exists the error wraps errors.ErrNotFound.
func LoadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range []string{JSONFileName, TOMLFileName} {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				config, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return config, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", errors.WithHint(
		errors.Wrapf(errors.ErrNotFound, "no %s or %s in %s or any parent directory", JSONFileName, TOMLFileName, startDir),
		"run adaptergen init to create one")
}

// Marshal encodes c as indented JSON.
func (c *Config) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return append(data, '\n'), nil
}

// Save writes c as indented JSON to path.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
