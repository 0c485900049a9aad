package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tycho/internal/config"
	"tycho/internal/core"
	"tycho/internal/driver"
)

// scanOptions assembles driver options from the project config and the
// command line. Flags win over config values.
func scanOptions(cmd *cobra.Command, withCache bool) (driver.Options, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return driver.Options{}, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return driver.Options{}, err
	}

	opts := driver.Options{
		Jobs:             cfg.Jobs,
		ForceLevel:       cfg.ForceLevel,
		HasForceLevel:    cfg.HasForceLevel,
		MinErrorLevel:    cfg.MinErrorLevel,
		HasMinErrorLevel: cfg.HasMinErrorLevel,
	}

	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return driver.Options{}, err
	}
	if jobs > 0 {
		opts.Jobs = jobs
	}

	if withCache && cfg.Cache {
		cache, err := driver.OpenHashCache("tycho")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to open hash cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

// setupColor applies the --color flag to the global color state.
func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}
	return nil
}

var (
	levelIgnoreColor = color.New(color.FgHiBlack)
	levelLooseColor  = color.New(color.FgYellow)
	levelStrictColor = color.New(color.FgGreen)
	levelStdlibColor = color.New(color.FgCyan)
)

func renderLevel(level core.StrictLevel) string {
	switch {
	case level == core.StrictStdlib:
		return levelStdlibColor.Sprint(level)
	case level >= core.StrictTrue:
		return levelStrictColor.Sprint(level)
	case level >= core.StrictFalse:
		return levelLooseColor.Sprint(level)
	}
	return levelIgnoreColor.Sprint(level)
}
