package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tycho/internal/core"
	"tycho/internal/driver"
)

var sigilCmd = &cobra.Command{
	Use:   "sigil [flags] path",
	Short: "Report strictness sigils for source files",
	Long:  `Sigil scans a file or directory and reports the "# typed:" level of every source file`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSigil,
}

func runSigil(cmd *cobra.Command, args []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	opts, err := scanOptions(cmd, true)
	if err != nil {
		return err
	}

	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	table := core.NewFileTable()
	var reports []driver.FileReport
	if info.IsDir() {
		reports, err = driver.ScanDir(cmd.Context(), table, target, opts)
	} else {
		reports, err = driver.ScanFiles(cmd.Context(), table, []string{target}, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	hits := 0
	for _, r := range reports {
		fmt.Fprintf(out, "%-48s %s", r.Path, renderLevel(r.Level))
		if r.Level != r.Sigil {
			fmt.Fprintf(out, " (sigil: %s)", r.Sigil)
		}
		fmt.Fprintln(out)
		if r.CacheHit {
			hits++
		}
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(out, "%d files", len(reports))
		if opts.Cache != nil {
			fmt.Fprintf(out, ", %d fingerprints from cache", hits)
		}
		fmt.Fprintln(out)
	}
	return nil
}
