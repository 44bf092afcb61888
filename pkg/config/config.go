// Package config loads the flowlint project configuration, .flowlint.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/provider"
	"github.com/githubnext/flowlint/pkg/validation"
	"github.com/githubnext/flowlint/pkg/varlib"
)

var configLog = logger.New("config:config")

// Config is the contents of a .flowlint.yaml file.
type Config struct {
	// Connections map model names to providers.
	Connections []provider.Connection `yaml:"connections,omitempty"`
	// Ignore lists issue codes that are dropped from reports.
	Ignore []string `yaml:"ignore,omitempty"`
	// Suppress lists expressions; issues matching any of them are dropped.
	Suppress []string `yaml:"suppress,omitempty"`
	// Strict makes warnings fail the run.
	Strict bool `yaml:"strict,omitempty"`
	// MaxParallel caps concurrently running rules. Zero means one per CPU.
	MaxParallel int `yaml:"maxParallel,omitempty"`
	// Variables extends the built-in variable library.
	Variables []*varlib.Variable `yaml:"variables,omitempty"`
	Watch     WatchConfig        `yaml:"watch,omitempty"`
}

// WatchConfig holds settings for validate --watch.
type WatchConfig struct {
	// Debounce is a duration string such as "300ms".
	Debounce string `yaml:"debounce,omitempty"`
}

func defaults() *Config {
	return &Config{
		Watch: WatchConfig{Debounce: constants.DefaultWatchDebounce.String()},
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return defaults()
}

// Load reads the configuration file at path. Unset fields keep their
// defaults.
func Load(path string) (*Config, error) {
	configLog.Printf("Loading config from %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads .flowlint.yaml from the current directory, falling back
// to defaults when it does not exist.
func LoadDefault() (*Config, error) {
	cfg, err := Load(constants.DefaultConfigFileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			configLog.Print("No config file, using defaults")
			return defaults(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = constants.DefaultWatchDebounce.String()
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}

	for i, conn := range c.Connections {
		if conn.Provider == "" {
			return fmt.Errorf("connections[%d]: provider is required", i)
		}
		if !conn.Provider.Known() {
			configLog.Printf("Connection %s uses unknown provider %s", conn.ID, conn.Provider)
		}
	}

	for _, code := range c.Ignore {
		if !validation.KnownCode(code) {
			configLog.Printf("Ignoring unknown issue code %s", code)
		}
	}

	if c.MaxParallel < 0 {
		return fmt.Errorf("maxParallel must not be negative, got %d", c.MaxParallel)
	}
	if _, err := c.Filter(); err != nil {
		return err
	}
	return nil
}

// WatchDebounce returns the parsed watch debounce.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d < 0 {
		return constants.DefaultWatchDebounce
	}
	return d
}

// Library returns the built-in variable library extended with Variables.
func (c *Config) Library() (*varlib.Library, error) {
	if len(c.Variables) == 0 {
		return varlib.Default(), nil
	}
	lib, err := varlib.Default().With(c.Variables...)
	if err != nil {
		return nil, fmt.Errorf("config variables: %w", err)
	}
	return lib, nil
}

// Filter builds the issue filter from Ignore and Suppress.
func (c *Config) Filter() (*validation.Filter, error) {
	return validation.NewFilter(c.Ignore, c.Suppress)
}

// WithIgnore returns a copy of c that also ignores codes.
func (c *Config) WithIgnore(codes ...string) *Config {
	clone := *c
	clone.Ignore = append(append([]string(nil), c.Ignore...), codes...)
	return &clone
}
