// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional in the file; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	Source   string `json:"source,omitempty" validate:"required"` // Documentation source tree root
	Output   string `json:"output,omitempty" validate:"required"` // Output tree root
	Manifest string `json:"manifest,omitempty"`                   // Path to the navigation manifest (docs.json)
	Schema   string `json:"schema,omitempty"`                     // Path to the manifest JSON Schema

	// Track layout
	PythonRoot string `json:"python_root,omitempty" validate:"required"`                // Output root segment for the python track
	JSRoot     string `json:"js_root,omitempty" validate:"required,nefield=PythonRoot"` // Output root segment for the javascript track

	// Behavior
	Extensions  []string `json:"extensions,omitempty" validate:"min=1,dive,startswith=."` // Source file extensions to process
	Concurrency int      `json:"concurrency,omitempty" validate:"gte=0"`                  // Parallel document workers; 0 means GOMAXPROCS
	Verbose     bool     `json:"verbose,omitempty"`                                       // Print detailed progress information
}

// Defaults returns the configuration applied underneath any file or flag
// values.
func Defaults() Config {
	return Config{
		Source:     ".",
		Output:     "build",
		PythonRoot: "python",
		JSRoot:     "javascript",
		Extensions: []string{".md", ".mdx"},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values, using struct tags
// plus the filesystem checks the tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	info, err := os.Stat(c.Source)
	if err != nil {
		return fmt.Errorf("config error: source tree not found: %s", c.Source)
	}
	if !info.IsDir() {
		return fmt.Errorf("config error: source is not a directory: %s", c.Source)
	}

	if c.Manifest != "" {
		if _, err := os.Stat(c.Manifest); os.IsNotExist(err) {
			return fmt.Errorf("config error: manifest file not found: %s", c.Manifest)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Source == "" {
		result.Source = defaults.Source
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Manifest == "" {
		result.Manifest = defaults.Manifest
	}
	if result.Schema == "" {
		result.Schema = defaults.Schema
	}
	if result.PythonRoot == "" {
		result.PythonRoot = defaults.PythonRoot
	}
	if result.JSRoot == "" {
		result.JSRoot = defaults.JSRoot
	}
	if len(result.Extensions) == 0 {
		result.Extensions = defaults.Extensions
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
