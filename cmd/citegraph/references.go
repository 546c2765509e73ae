// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-graph/internal/bibliography"
	"github.com/pdiddy/citation-graph/internal/config"
	"github.com/pdiddy/citation-graph/pkg/types"
)

var referencesCmd = &cobra.Command{
	Use:   "references <paper-id>",
	Short: "List the references of a single paper",
	Long: `References looks up one paper and prints its reference list with title,
year, and a link (arXiv abstract page, else DOI). Unlike graph it lists
references the source could not identify. --csl writes CSL-YAML that Pandoc
and reference managers read.`,
	Args: cobra.ExactArgs(1),
	RunE: runReferences,
}

func init() {
	referencesCmd.Flags().String("source", "", "lookup source: semantic_scholar, openalex, or snapshot")
	referencesCmd.Flags().Bool("json", false, "output the listing as JSON")
	referencesCmd.Flags().Bool("csl", false, "output the references as CSL-YAML for Pandoc")

	rootCmd.AddCommand(referencesCmd)
}

func runReferences(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if cmd.Flags().Changed("source") {
		cfg.Lookup.Source, _ = cmd.Flags().GetString("source")
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	src, release, err := openSource(cfg.Lookup, appLog)
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := commandContext(cmd)
	defer stop()

	id := strings.TrimSpace(args[0])
	refs, err := src.References(ctx, id)
	if err != nil {
		return fmt.Errorf("looking up references of %s: %w", id, err)
	}

	if cslOutput, _ := cmd.Flags().GetBool("csl"); cslOutput {
		return bibliography.FormatCSL(refs, cmd.OutOrStdout())
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatReferences(cmd.OutOrStdout(), types.NewReferenceList(id, refs), jsonOutput)
}

func formatReferences(w io.Writer, list types.ReferenceList, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if len(list.References) == 0 {
		fmt.Fprintln(w, "No references found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-60s  %s\n", "Year", "Title", "Link")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range list.References {
		year := ""
		if r.Year != 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%-4s  %-60s  %s\n", year, title, r.URL)
	}

	fmt.Fprintf(w, "\n%d reference(s) of %s\n", len(list.References), list.ID)
	return nil
}
