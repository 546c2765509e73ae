// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-graph/internal/config"
	"github.com/pdiddy/citation-graph/pkg/types"
)

func defaultConfig(t *testing.T) types.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg
}

func parsedGraphCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "graph"}
	addGraphFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestGraphConfigOverrides(t *testing.T) {
	cmd := parsedGraphCmd(t, "--depth", "2", "--dangling", "placeholder", "--concurrency", "4", "--source", "openalex")

	cfg, err := graphConfig(cmd, defaultConfig(t))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Graph.MaxDepth)
	assert.Equal(t, types.DanglingPlaceholder, cfg.Graph.Dangling)
	assert.Equal(t, 4, cfg.Graph.Concurrency)
	assert.Equal(t, types.SourceOpenAlex, cfg.Lookup.Source)
}

func TestGraphConfigKeepsConfiguredValues(t *testing.T) {
	base := defaultConfig(t)
	base.Graph.MaxDepth = 3

	cfg, err := graphConfig(parsedGraphCmd(t), base)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Graph.MaxDepth, "unset --depth must not override the config file")
}

func TestGraphConfigRejectsInvalid(t *testing.T) {
	_, err := graphConfig(parsedGraphCmd(t, "--depth", "7"), defaultConfig(t))
	assert.Error(t, err)

	_, err = graphConfig(parsedGraphCmd(t, "--dangling", "prune"), defaultConfig(t))
	assert.Error(t, err)
}

func TestFormatReferencesTable(t *testing.T) {
	list := types.NewReferenceList("1706.03762", []types.Reference{
		{ID: "a", Title: "Neural Machine Translation by Jointly Learning to Align and Translate", Year: 2014, ArxivID: "1409.0473"},
		{Title: "Unidentified"},
	})

	var buf bytes.Buffer
	require.NoError(t, formatReferences(&buf, list, false))
	out := buf.String()

	assert.Contains(t, out, "2014")
	assert.Contains(t, out, "https://arxiv.org/abs/1409.0473")
	assert.Contains(t, out, "Neural Machine Translation by Jointly Learning")
	assert.NotContains(t, out, "Translate ", "long titles are truncated")
	assert.Contains(t, out, "Unidentified")
	assert.Contains(t, out, "2 reference(s) of 1706.03762")
}

func TestFormatReferencesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatReferences(&buf, types.NewReferenceList("x", nil), false))
	assert.Equal(t, "No references found.\n", buf.String())
}

func TestFormatReferencesJSON(t *testing.T) {
	var buf bytes.Buffer
	list := types.NewReferenceList("x", []types.Reference{{ID: "a", Title: "A"}})
	require.NoError(t, formatReferences(&buf, list, true))

	var got types.ReferenceList
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, list, got)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.True(t, strings.HasPrefix(buf.String(), "citegraph "))
}

func TestRunReferencesStopsWhenCommandCancelled(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Lookup.Source = types.SourceSnapshot
	cfg.Lookup.SnapshotPath = filepath.Join(t.TempDir(), "citegraph.db")

	log := logrus.New()
	log.SetOutput(io.Discard)
	origCfg, origLog := appConfig, appLog
	appConfig, appLog = cfg, log
	t.Cleanup(func() { appConfig, appLog = origCfg, origLog })

	cmd := &cobra.Command{Use: "references"}
	cmd.Flags().String("source", "", "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("csl", false, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd.SetContext(ctx)

	err := runReferences(cmd, []string{"1706.03762"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
