// Package config loads the optional .loxvmrc TOML file that supplies
// defaults for GC tuning, REPL color, and diagnostic limits. CLI flags
// always take precedence over a loaded file, and a loaded file always
// takes precedence over the defaults returned by Default.
package config

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the sections of a .loxvmrc file.
type Config struct {
	GC struct {
		HeapStartBytes int64 `toml:"heap-start-bytes"`
		Stress         bool  `toml:"stress"`
	} `toml:"gc"`

	REPL struct {
		Color string `toml:"color"`
	} `toml:"repl"`

	Diagnostics struct {
		Max int `toml:"max"`
	} `toml:"diagnostics"`
}

// Default returns the built-in configuration used when no .loxvmrc is
// present or a field is left unset in one.
func Default() Config {
	var c Config
	c.GC.HeapStartBytes = 0 // 0 means "use the collector's own default"
	c.GC.Stress = false
	c.REPL.Color = "auto"
	c.Diagnostics.Max = 64
	return c
}

// Load parses path as a .loxvmrc file, starting from Default so that any
// section or key the file omits keeps its built-in value.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns Default with no error when
// path does not exist, matching the CLI's "config file is optional" contract.
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	return Load(path)
}
