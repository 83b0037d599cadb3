package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"starter-generator/internal/binding"
	"starter-generator/internal/common"
	"starter-generator/internal/gen"
)

// Format is a config file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// Validation errors.
var (
	ErrNoPackages    = errors.New("no packages to scan")
	ErrBadSuffix     = errors.New("suffix must be an identifier fragment")
	ErrOutputDir     = errors.New("output.dir is required when output.package is set")
	ErrNegativeJobs  = errors.New("jobs must not be negative")
	ErrUnknownFormat = errors.New("unknown config format")
	ErrBadCapability = errors.New("capability must be a qualified name like pkg/path.Name")
)

// Config is the generator configuration.
type Config struct {
	// Packages are go/packages patterns to scan for targets.
	Packages []string `yaml:"packages" toml:"packages"`
	// Suffix is appended to target names to form binding names.
	Suffix string `yaml:"suffix" toml:"suffix"`
	// Runtime is the import path of the starter runtime package.
	Runtime      string       `yaml:"runtime" toml:"runtime"`
	Output       Output       `yaml:"output" toml:"output"`
	Capabilities Capabilities `yaml:"capabilities" toml:"capabilities"`
	// Comments toggles doc comments on generated routines.
	Comments *bool `yaml:"comments,omitempty" toml:"comments,omitempty"`
	// Jobs bounds parallel target compilation; 0 means unlimited.
	Jobs int `yaml:"jobs" toml:"jobs"`
	// Verbose is the log verbosity passed to commonlog.
	Verbose int `yaml:"verbose" toml:"verbose"`
}

// Output selects where generated files go.
type Output struct {
	// Package is the import path of a separate output package. Empty means
	// each binding is generated into its target's package.
	Package string `yaml:"package" toml:"package"`
	// Dir is the directory of the output package.
	Dir string `yaml:"dir" toml:"dir"`
	// Name overrides the output package name.
	Name string `yaml:"name" toml:"name"`
}

// Capabilities name the reference-capable and value-capable interfaces.
type Capabilities struct {
	Reference string `yaml:"reference" toml:"reference"`
	Value     string `yaml:"value" toml:"value"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads a config file, choosing the syntax by extension.
func LoadFile(path string) (*Config, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func formatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Parse parses config data and applies defaults.
func Parse(data []byte, format Format) (*Config, error) {
	var c Config

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &c); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}

	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for unset fields.
func applyDefaults(c *Config) {
	if c.Suffix == "" {
		c.Suffix = binding.DefaultOptions().Suffix
	}

	if c.Runtime == "" {
		c.Runtime = gen.DefaultRuntime
	}

	if c.Capabilities.Reference == "" {
		c.Capabilities.Reference = binding.DefaultReferenceCapability
	}

	if c.Capabilities.Value == "" {
		c.Capabilities.Value = binding.DefaultValueCapability
	}

	if c.Comments == nil {
		on := true
		c.Comments = &on
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Packages) == 0 {
		errs = append(errs, ErrNoPackages)
	}

	if !token.IsIdentifier("X" + c.Suffix) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrBadSuffix, c.Suffix))
	}

	if c.Output.Package != "" && c.Output.Dir == "" {
		errs = append(errs, ErrOutputDir)
	}

	if c.Jobs < 0 {
		errs = append(errs, ErrNegativeJobs)
	}

	for _, name := range []string{c.Capabilities.Reference, c.Capabilities.Value} {
		if pkg, _ := common.SplitQualified(name); pkg == "" {
			errs = append(errs, fmt.Errorf("%w: %q", ErrBadCapability, name))
		}
	}

	return errors.Join(errs...)
}

// CompilerOptions returns the binding compiler options.
func (c *Config) CompilerOptions() binding.Options {
	return binding.Options{
		Suffix:        c.Suffix,
		OutputPkgPath: c.Output.Package,
		Reference:     c.Capabilities.Reference,
		Value:         c.Capabilities.Value,
	}
}

// GeneratorConfig returns the generator configuration.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		Runtime:          c.Runtime,
		PackageName:      c.Output.Name,
		OutputDir:        c.Output.Dir,
		GenerateComments: c.Comments == nil || *c.Comments,
	}
}

// SupportPackages returns the packages that must be loaded for capability
// interfaces to resolve: the runtime and the capabilities' packages.
func (c *Config) SupportPackages() []string {
	seen := map[string]bool{}

	var out []string

	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	add(c.Runtime)

	for _, name := range []string{c.Capabilities.Reference, c.Capabilities.Value} {
		pkg, _ := common.SplitQualified(name)
		add(pkg)
	}

	return out
}
