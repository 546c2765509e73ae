// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-graph/pkg/types"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, types.SourceSemanticScholar, cfg.Lookup.Source)
	assert.Equal(t, 30*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, "citegraph/0.1", cfg.Lookup.UserAgent)
	assert.Equal(t, 1, cfg.Graph.MaxDepth)
	assert.Equal(t, types.DanglingKeep, cfg.Graph.Dangling)
	assert.Equal(t, 1, cfg.Graph.Concurrency)
	assert.Equal(t, "127.0.0.1:5000", cfg.Server.Listen)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citegraph.yaml")
	content := `lookup:
  source: openalex
  openalex_email: me@example.com
  timeout: 5s
graph:
  max_depth: 2
  dangling: placeholder
  concurrency: 4
server:
  listen: 0.0.0.0:8080
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, types.SourceOpenAlex, cfg.Lookup.Source)
	assert.Equal(t, "me@example.com", cfg.Lookup.OpenAlexEmail)
	assert.Equal(t, 5*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, 2, cfg.Graph.MaxDepth)
	assert.Equal(t, types.DanglingPlaceholder, cfg.Graph.Dangling)
	assert.Equal(t, 4, cfg.Graph.Concurrency)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Listen)
	// Unset keys keep their defaults.
	assert.Equal(t, "citegraph/0.1", cfg.Lookup.UserAgent)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("CITEGRAPH_GRAPH_MAX_DEPTH", "3")
	t.Setenv("CITEGRAPH_LOOKUP_SEMANTIC_SCHOLAR_API_KEY", "sk_env")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Graph.MaxDepth)
	assert.Equal(t, "sk_env", cfg.Lookup.SemanticScholarAPIKey)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantMsg string
	}{
		{"depth above limit", KeyMaxDepth, 9, "MaxDepth"},
		{"negative depth", KeyMaxDepth, -1, "MaxDepth"},
		{"unknown source", KeyLookupSource, "crossref", "Source"},
		{"unknown dangling policy", KeyDangling, "prune", "Dangling"},
		{"bad listen address", KeyListen, "not an address", "Listen"},
		{"unknown log format", KeyLogFormat, "xml", "Format"},
		{"zero timeout", KeyLookupTimeout, "0s", "Timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadSnapshotRequiresPath(t *testing.T) {
	v := newViper(t)
	v.Set(KeyLookupSource, types.SourceSnapshot)
	v.Set(KeySnapshotPath, "")

	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SnapshotPath")
}
