// Package main implements the tycho CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tycho/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tycho",
	Short: "Tycho gradual type checker toolchain",
	Long:  `Tycho analyzes .ty sources whose strictness is controlled by "# typed:" sigil comments`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(sigilCmd)
	rootCmd.AddCommand(linesCmd)
	rootCmd.AddCommand(fingerprintCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0 = all CPUs)")
	rootCmd.PersistentFlags().String("config", "tycho.toml", "project configuration file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal checks whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
