// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-graph/internal/lookup"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the offline citation snapshot (import, stats)",
	Long: `Snapshot manages a local SQLite database of papers and their reference
lists. With lookup.source set to snapshot, graphs are built from it without
network access.`,
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import papers and references from a YAML file",
	Long: `Import reads a YAML file of the form

  papers:
    - id: "1706.03762"
      title: Attention Is All You Need
      references:
        - id: "1409.0473"
          title: Neural Machine Translation by Jointly Learning to Align and Translate
          year: 2014

and upserts every paper. Importing a paper again replaces its references.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshotImport,
}

var snapshotStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show snapshot database counts",
	RunE:  runSnapshotStats,
}

func init() {
	snapshotCmd.PersistentFlags().String("db", "", "snapshot database path (default: lookup.snapshot_path)")

	snapshotCmd.AddCommand(snapshotImportCmd)
	snapshotCmd.AddCommand(snapshotStatsCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func openSnapshot(cmd *cobra.Command) (*lookup.Snapshot, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = appConfig.Lookup.SnapshotPath
	}
	return lookup.OpenSnapshot(path)
}

func runSnapshotImport(cmd *cobra.Command, args []string) error {
	snap, err := openSnapshot(cmd)
	if err != nil {
		return err
	}
	defer snap.Close()

	ctx, stop := commandContext(cmd)
	defer stop()

	summary, err := snap.ImportFile(ctx, args[0], cmd.OutOrStdout())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d paper(s), %d reference(s), skipped %d\n",
		summary.Papers, summary.References, summary.Skipped)
	return nil
}

func runSnapshotStats(cmd *cobra.Command, args []string) error {
	snap, err := openSnapshot(cmd)
	if err != nil {
		return err
	}
	defer snap.Close()

	ctx, stop := commandContext(cmd)
	defer stop()

	papers, refs, err := snap.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Papers:     %d\n", papers)
	fmt.Fprintf(cmd.OutOrStdout(), "References: %d\n", refs)
	return nil
}
