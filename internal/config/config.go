// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Paths
	SnapshotPath string `json:"snapshot_path,omitempty"` // Where the resume snapshot is persisted
	TemplateDir  string `json:"template_dir,omitempty"`  // Directory of layout overrides, hot reloaded

	// Behavior
	APIKey   string `json:"api_key,omitempty"` // Gemini API key
	Template string `json:"template,omitempty"`
	Verbose  bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.TemplateDir != "" {
		info, err := os.Stat(c.TemplateDir)
		if err != nil {
			return fmt.Errorf("config error: 'template_dir' %s: %w", c.TemplateDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("config error: 'template_dir' %s is not a directory", c.TemplateDir)
		}
	}

	return nil
}

// MergeWithFlags merges config file values with CLI flag values.
// CLI flags take precedence over config file values.
func (c *Config) MergeWithFlags(port int, snapshotPath, templateDir, apiKey string, verbose bool) *Config {
	merged := &Config{
		Port:         c.Port,
		SnapshotPath: c.SnapshotPath,
		TemplateDir:  c.TemplateDir,
		APIKey:       c.APIKey,
		Template:     c.Template,
		Verbose:      c.Verbose,
	}

	if port != 0 {
		merged.Port = port
	}
	if snapshotPath != "" {
		merged.SnapshotPath = snapshotPath
	}
	if templateDir != "" {
		merged.TemplateDir = templateDir
	}
	if apiKey != "" {
		merged.APIKey = apiKey
	}
	if verbose {
		merged.Verbose = true
	}

	return merged
}
