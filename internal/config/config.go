// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads citegraph settings through viper: defaults, then the
// YAML config file, then CITEGRAPH_* environment variables, then flags bound
// by the CLI. The result is validated before use.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-graph/pkg/types"
)

// EnvPrefix is the environment variable prefix, e.g. CITEGRAPH_GRAPH_MAX_DEPTH.
const EnvPrefix = "CITEGRAPH"

// Viper keys.
const (
	KeyLookupSource    = "lookup.source"
	KeyLookupTimeout   = "lookup.timeout"
	KeyLookupUserAgent = "lookup.user_agent"
	KeySemanticAPIKey  = "lookup.semantic_scholar_api_key"
	KeyOpenAlexEmail   = "lookup.openalex_email"
	KeySnapshotPath    = "lookup.snapshot_path"
	KeyMaxDepth        = "graph.max_depth"
	KeyDangling        = "graph.dangling"
	KeyConcurrency     = "graph.concurrency"
	KeyListen          = "server.listen"
	KeyRequestTimeout  = "server.request_timeout"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
)

var validate = validator.New()

// SetDefaults registers default values and the environment mapping on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLookupSource, types.SourceSemanticScholar)
	v.SetDefault(KeyLookupTimeout, 30*time.Second)
	v.SetDefault(KeyLookupUserAgent, "citegraph/0.1")
	v.SetDefault(KeySemanticAPIKey, "")
	v.SetDefault(KeyOpenAlexEmail, "")
	v.SetDefault(KeySnapshotPath, "citegraph.db")
	v.SetDefault(KeyMaxDepth, 1)
	v.SetDefault(KeyDangling, string(types.DanglingKeep))
	v.SetDefault(KeyConcurrency, 1)
	v.SetDefault(KeyListen, "127.0.0.1:5000")
	v.SetDefault(KeyRequestTimeout, 60*time.Second)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cfg field constraints. Errors name the offending field.
func Validate(cfg types.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
