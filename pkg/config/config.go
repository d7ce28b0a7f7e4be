// Package config loads plume.yaml, the optional per-project settings
// file. A missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/plumedev/plume/pkg/assembler"
)

// FileName is the settings file looked up in the project root.
const FileName = "plume.yaml"

// Config represents plume.yaml configuration
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AnalysisConfig selects document sections and analysis bounds
type AnalysisConfig struct {
	IncludeCode         bool  `yaml:"include_code"`
	IncludeDependencies bool  `yaml:"include_dependencies"`
	IncludeArchitecture bool  `yaml:"include_architecture"`
	IncludeSuggestions  bool  `yaml:"include_suggestions"`
	MaxFileSize         int64 `yaml:"max_file_size"`
	MaxFiles            int   `yaml:"max_files"`
}

// LoggingConfig holds diagnostic output settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file. Values not present in the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// LoadFromDir loads plume.yaml from the given project root.
func LoadFromDir(root string) (*Config, error) {
	return Load(filepath.Join(root, FileName))
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	opts := assembler.DefaultOptions()
	return &Config{
		Analysis: AnalysisConfig{
			IncludeCode:         opts.IncludeCode,
			IncludeDependencies: opts.IncludeDependencies,
			IncludeArchitecture: opts.IncludeArchitecture,
			IncludeSuggestions:  opts.IncludeSuggestions,
			MaxFileSize:         opts.MaxFileSize,
			MaxFiles:            opts.MaxFiles,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Options converts the analysis settings into assembler options.
func (c *Config) Options() assembler.Options {
	return assembler.Options{
		IncludeCode:         c.Analysis.IncludeCode,
		IncludeDependencies: c.Analysis.IncludeDependencies,
		IncludeArchitecture: c.Analysis.IncludeArchitecture,
		IncludeSuggestions:  c.Analysis.IncludeSuggestions,
		MaxFileSize:         c.Analysis.MaxFileSize,
		MaxFiles:            c.Analysis.MaxFiles,
	}
}
