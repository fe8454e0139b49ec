package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/marcelocantos/flow/internal/pipeline"
)

// Config holds the global flow configuration.
type Config struct {
	Limits LimitsConfig `yaml:"limits"`
	Audit  AuditConfig  `yaml:"audit"`
}

// LimitsConfig bounds what the parser accepts.
type LimitsConfig struct {
	// MaxComponents caps the number of components in one flow file; 0 = unbounded.
	MaxComponents int `yaml:"max_components" validate:"gte=0"`
	MaxParts      int `yaml:"max_parts" validate:"gte=1,lte=1000"`
}

// AuditConfig controls the run log. An empty path disables it.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxComponents: 0,
			MaxParts:      pipeline.DefaultMaxParts,
		},
	}
}

// Load reads the config from the standard location (~/.config/flow/config.yaml).
// If the file doesn't exist, returns the default config.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	// Expand ~ in audit path.
	if strings.HasPrefix(cfg.Audit.Path, "~") {
		home, _ := os.UserHomeDir()
		cfg.Audit.Path = filepath.Join(home, cfg.Audit.Path[1:])
	}

	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ParserOptions converts the limits into parser options.
func (c *Config) ParserOptions() pipeline.Options {
	return pipeline.Options{
		MaxComponents: c.Limits.MaxComponents,
		MaxParts:      c.Limits.MaxParts,
	}
}

// ConfigPath returns the standard config file path, or "" when there is no
// home directory.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "flow", "config.yaml")
}
