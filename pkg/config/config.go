// Package config holds the optional TOML configuration file format for the
// tableau and tableaurepl commands (SPEC_FULL.md section 2.3). A config file
// sets defaults that command-line flags may override; it is never required.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is a configuration for either command. Zero values mean "use the
// built-in default" -- see FillDefaults.
type Config struct {
	// Verbose enables per-query structure-size logging (section 4.1).
	Verbose bool `toml:"verbose"`

	// TSPath is the path to a transition system file (section 6.1), used
	// when no path is given on the command line.
	TSPath string `toml:"ts"`

	// QueryPath is the path to a query batch file (section 6.2).
	QueryPath string `toml:"queries"`

	// Color controls whether diagnostics are emitted with ANSI color: false
	// disables color; true (the default once FillDefaults has run) leaves it
	// to terminal detection, which colorizes iff stdout is a terminal.
	Color *bool `toml:"color"`
}

// FillDefaults returns a new Config identical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCfg := cfg
	if newCfg.Color == nil {
		enabled := true
		newCfg.Color = &enabled
	}
	return newCfg
}

// Load reads and parses a TOML config file at path. A missing file is not an
// error -- it returns a zero Config, since the file is entirely optional.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}
