// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the remote lookup sources.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citegraph/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent" validate:"required"`
}

// Lookup source names accepted by LookupConfig.Source.
const (
	SourceSemanticScholar = "semantic_scholar"
	SourceOpenAlex        = "openalex"
	SourceSnapshot        = "snapshot"
)

// LookupConfig selects and configures the reference lookup source.
type LookupConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Source is one of semantic_scholar, openalex, snapshot.
	Source string `json:"source" yaml:"source" mapstructure:"source" validate:"oneof=semantic_scholar openalex snapshot"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty" mapstructure:"openalex_email"`

	// SnapshotPath is the SQLite database used by the snapshot source.
	SnapshotPath string `json:"snapshot_path" yaml:"snapshot_path" mapstructure:"snapshot_path" validate:"required_if=Source snapshot"`
}

// MaxDepthLimit caps the configurable traversal depth.
const MaxDepthLimit = 4

// GraphConfig holds traversal settings.
type GraphConfig struct {
	// MaxDepth is the deepest level that is expanded. The root is depth 0.
	MaxDepth int `json:"max_depth" yaml:"max_depth" mapstructure:"max_depth" validate:"gte=0,lte=4"`

	// Dangling selects the presentation of dangling edge endpoints.
	Dangling DanglingPolicy `json:"dangling" yaml:"dangling" mapstructure:"dangling" validate:"omitempty,oneof=keep drop placeholder"`

	// Concurrency is the number of lookups allowed in flight. Values of 1
	// or less keep the sequential depth-first order.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency" validate:"gte=0,lte=32"`
}

// ServerConfig holds settings for the HTTP service.
type ServerConfig struct {
	// Listen is the address the service binds, e.g. "127.0.0.1:5000".
	Listen string `json:"listen" yaml:"listen" mapstructure:"listen" validate:"required,hostname_port"`

	// RequestTimeout bounds one graph build, including all lookups.
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout" mapstructure:"request_timeout" validate:"gt=0"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a logrus level name (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=text json"`
}

// Config groups all settings for the citegraph CLI and service.
type Config struct {
	Lookup LookupConfig `json:"lookup" yaml:"lookup" mapstructure:"lookup"`
	Graph  GraphConfig  `json:"graph" yaml:"graph" mapstructure:"graph"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
