// Package config loads the optional `.golox.yaml` file that tweaks
// REPL behavior and which built-in classes are registered, following
// the project's yaml.v3-based configuration style (grounded on
// funvibe-funxy's own use of gopkg.in/yaml.v3 for structured config).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the shape of `.golox.yaml`. Every field has a zero value
// that reproduces the interpreter's default behavior, so a missing or
// empty file changes nothing.
type Config struct {
	// Prompt overrides the REPL's "> " prompt.
	Prompt string `yaml:"prompt"`

	// Color forces ANSI-colored diagnostics on or off, overriding the
	// isatty auto-detection the CLI otherwise uses.
	Color *bool `yaml:"color"`

	// DisabledBuiltins lists built-in class names (Console, String,
	// Math) to omit from the global scope - useful for sandboxed
	// scripts that shouldn't touch the console. Array is always
	// registered, since array literals depend on it.
	DisabledBuiltins []string `yaml:"disabledBuiltins"`
}

// Default returns the default configuration: the "> " prompt,
// auto-detected color, every built-in registered.
func Default() *Config {
	return &Config{Prompt: "> "}
}

// Load reads and parses path. A missing file is not an error: Load
// returns Default() so callers don't need to special-case "no config
// file" themselves.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	return cfg, nil
}

// Disabled reports whether name was listed in disabledBuiltins.
func (c *Config) Disabled(name string) bool {
	for _, n := range c.DisabledBuiltins {
		if n == name {
			return true
		}
	}
	return false
}
