package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tycho/internal/core"
	"tycho/internal/driver"
)

var linesCmd = &cobra.Command{
	Use:   "lines [flags] file.ty",
	Short: "Show line metrics for a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLines,
}

func init() {
	linesCmd.Flags().Int("line", 0, "print the given line (1-based) instead of the line count")
}

func runLines(cmd *cobra.Command, args []string) error {
	line, err := cmd.Flags().GetInt("line")
	if err != nil {
		return err
	}

	table := core.NewFileTable()
	ref, err := driver.Load(table, args[0])
	if err != nil {
		return err
	}
	f := ref.Resolve(table)

	out := cmd.OutOrStdout()
	if line == 0 {
		fmt.Fprintf(out, "%s: %d lines\n", core.CensorPath(f.Path()), f.LineCount())
		return nil
	}
	// Bad user input is an ordinary error; only in-process callers with an
	// impossible index hit the panic path.
	if line < 1 || line > f.LineCount() {
		return fmt.Errorf("line %d out of range, %s has %d lines", line, f.Path(), f.LineCount())
	}
	fmt.Fprintln(out, f.GetLine(line))
	return nil
}
