// Package config loads tycho.toml, the per-project checker configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"tycho/internal/core"
)

// Config is the parsed project configuration. Has* flags distinguish an
// absent key from its zero value.
type Config struct {
	// ForceLevel overrides every file's strict level.
	ForceLevel    core.StrictLevel
	HasForceLevel bool

	// MinErrorLevel is the floor below which diagnostics are suppressed.
	MinErrorLevel    core.StrictLevel
	HasMinErrorLevel bool

	// Jobs caps scan parallelism; 0 means use all CPUs.
	Jobs int

	// Cache enables the on-disk fingerprint cache.
	Cache bool
}

type rawConfig struct {
	Check struct {
		Typed         string `toml:"typed"`
		MinErrorLevel string `toml:"min-error-level"`
		Jobs          int    `toml:"jobs"`
		Cache         bool   `toml:"cache"`
	} `toml:"check"`
}

// Load parses a tycho.toml. A missing file is not an error: the checker runs
// fine on defaults.
func Load(path string) (Config, error) {
	var raw rawConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	var cfg Config
	if meta.IsDefined("check", "typed") {
		level, err := core.ParseStrictLevel(raw.Check.Typed)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [check].typed: %w", path, err)
		}
		cfg.ForceLevel = level
		cfg.HasForceLevel = true
	}
	if meta.IsDefined("check", "min-error-level") {
		level, err := core.ParseStrictLevel(raw.Check.MinErrorLevel)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [check].min-error-level: %w", path, err)
		}
		cfg.MinErrorLevel = level
		cfg.HasMinErrorLevel = true
	}
	if raw.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	cfg.Jobs = raw.Check.Jobs
	cfg.Cache = raw.Check.Cache
	return cfg, nil
}
