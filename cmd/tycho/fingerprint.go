package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tycho/internal/core"
	"tycho/internal/driver"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint [flags] file.ty...",
	Short: "Compute and cache incremental-build fingerprints",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFingerprint,
}

func init() {
	fingerprintCmd.Flags().Bool("no-cache", false, "compute without touching the disk cache")
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	opts, err := scanOptions(cmd, !noCache)
	if err != nil {
		return err
	}
	if !noCache && opts.Cache == nil {
		// The subcommand exists to populate the cache; open it even when
		// the project config leaves caching off.
		cache, err := driver.OpenHashCache("tycho")
		if err != nil {
			return fmt.Errorf("failed to open hash cache: %w", err)
		}
		opts.Cache = cache
	}

	table := core.NewFileTable()
	reports, err := driver.ScanFiles(cmd.Context(), table, args, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range reports {
		h := r.Ref.Resolve(table).Fingerprint()
		marker := ""
		if r.CacheHit {
			marker = " (cached)"
		}
		fmt.Fprintf(out, "%s  %s%s\n", h.Content.Hex(), r.Path, marker)
	}
	return nil
}
