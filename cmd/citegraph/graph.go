// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-graph/internal/config"
	"github.com/pdiddy/citation-graph/internal/graph"
	"github.com/pdiddy/citation-graph/pkg/types"
)

var graphCmd = &cobra.Command{
	Use:   "graph <paper-id>",
	Short: "Build the citation graph of a paper",
	Long: `Graph expands the paper's references up to --depth levels (default 1: the
paper and the papers it cites) and prints the nodes and edges. Papers that
cannot be looked up stay in the graph as leaves. Identifiers may be arXiv
ids, DOIs, Semantic Scholar ids, or OpenAlex work ids depending on --source.`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	addGraphFlags(graphCmd)
	rootCmd.AddCommand(graphCmd)
}

func addGraphFlags(cmd *cobra.Command) {
	cmd.Flags().Int("depth", graph.DefaultMaxDepth, fmt.Sprintf("deepest level to expand (0-%d)", types.MaxDepthLimit))
	cmd.Flags().String("dangling", "", "edges to unexpanded papers: keep, drop, or placeholder")
	cmd.Flags().Int("concurrency", 0, "lookups in flight; 1 keeps depth-first order")
	cmd.Flags().String("source", "", "lookup source: semantic_scholar, openalex, or snapshot")
	cmd.Flags().String("format", "json", "output format: json, yaml, or dot")
	cmd.Flags().StringP("output", "o", "", "write the graph to a file instead of stdout")
	cmd.Flags().String("label", "", "root label; skips the root title lookup")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := graphConfig(cmd, appConfig)
	if err != nil {
		return err
	}
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := graph.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	src, release, err := openSource(cfg.Lookup, appLog)
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := commandContext(cmd)
	defer stop()

	b := graph.NewBuilder(src, graph.OptionsFromConfig(cfg.Graph), appLog)
	var g types.Graph
	if label, _ := cmd.Flags().GetString("label"); label != "" {
		g, err = b.BuildGraph(ctx, args[0], label)
	} else {
		g, err = b.Build(ctx, args[0])
	}
	if errors.Is(err, graph.ErrEmptyRoot) {
		return err
	}
	if err != nil {
		appLog.WithError(err).Warn("graph build interrupted, writing partial graph")
	}

	output, _ := cmd.Flags().GetString("output")
	if werr := writeGraph(g, format, output, cmd.OutOrStdout()); werr != nil {
		return werr
	}
	return err
}

// graphConfig applies command-line overrides to cfg and validates the result.
func graphConfig(cmd *cobra.Command, cfg types.Config) (types.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("depth") {
		cfg.Graph.MaxDepth, _ = flags.GetInt("depth")
	}
	if flags.Changed("dangling") {
		s, _ := flags.GetString("dangling")
		p, err := types.ParseDanglingPolicy(s)
		if err != nil {
			return cfg, err
		}
		cfg.Graph.Dangling = p
	}
	if flags.Changed("concurrency") {
		cfg.Graph.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("source") {
		cfg.Lookup.Source, _ = flags.GetString("source")
	}
	return cfg, config.Validate(cfg)
}

func writeGraph(g types.Graph, format graph.Format, path string, stdout io.Writer) error {
	if path == "" {
		return graph.Write(g, format, stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := graph.Write(g, format, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	appLog.WithField("path", path).Info("graph written")
	return nil
}
