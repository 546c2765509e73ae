// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph builds citation graphs by depth-bounded expansion of a
// paper's reference list.
//
// Every build owns its visited set and accumulators; nothing is shared
// between builds. A paper is expanded (its references looked up) at most
// once per build. An edge is recorded for every reference of an expanded
// paper, whether or not the referenced paper is itself expanded, so leaf
// references still appear as citation relationships.
package graph

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/citation-graph/internal/lookup"
	"github.com/pdiddy/citation-graph/internal/metrics"
	"github.com/pdiddy/citation-graph/pkg/types"
)

// DefaultMaxDepth expands the root and its direct references.
const DefaultMaxDepth = 1

// ErrEmptyRoot is returned when the root identifier is blank.
var ErrEmptyRoot = errors.New("root paper identifier is empty")

// Options controls one Builder.
type Options struct {
	// MaxDepth is the deepest level that is expanded; the root is depth 0.
	MaxDepth int

	// Dangling selects how edges to never-expanded papers are presented.
	Dangling types.DanglingPolicy

	// Concurrency is the number of lookups allowed in flight. Values of 1
	// or less select the sequential depth-first traversal. Larger values
	// expand level by level, so a paper reachable at several depths is
	// expanded at the shallowest one.
	Concurrency int
}

// DefaultOptions returns the options matching the single-level traversal.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth, Dangling: types.DanglingKeep, Concurrency: 1}
}

// OptionsFromConfig converts the configured traversal settings.
func OptionsFromConfig(cfg types.GraphConfig) Options {
	return Options{MaxDepth: cfg.MaxDepth, Dangling: cfg.Dangling, Concurrency: cfg.Concurrency}
}

// Builder builds citation graphs from a lookup Source. A Builder holds no
// per-build state and may be used concurrently.
type Builder struct {
	src  lookup.Source
	opts Options
	log  *logrus.Logger
}

// NewBuilder creates a Builder. A negative MaxDepth is treated as zero.
func NewBuilder(src lookup.Source, opts Options, log *logrus.Logger) *Builder {
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}
	if opts.Dangling == "" {
		opts.Dangling = types.DanglingKeep
	}
	return &Builder{src: src, opts: opts, log: log}
}

// WithOptions returns a Builder sharing the source and logger with
// different options.
func (b *Builder) WithOptions(opts Options) *Builder {
	return NewBuilder(b.src, opts, b.log)
}

// Options returns the builder's options.
func (b *Builder) Options() Options { return b.opts }

// Build resolves the root's display title and then builds its graph. A
// failed title lookup falls back to the identifier.
func (b *Builder) Build(ctx context.Context, rootID string) (types.Graph, error) {
	rootID = strings.TrimSpace(rootID)
	if rootID == "" {
		return types.Graph{}, ErrEmptyRoot
	}
	label := lookup.ResolveTitle(ctx, b.src, rootID, b.log)
	return b.BuildGraph(ctx, rootID, label)
}

// BuildGraph expands rootID with the given label and returns the
// deduplicated graph. Lookup failures end their branch and are never
// returned. The only errors are ErrEmptyRoot and the context's error when
// ctx is done before the build finishes; the graph built so far is
// returned alongside the context error.
func (b *Builder) BuildGraph(ctx context.Context, rootID, rootLabel string) (types.Graph, error) {
	rootID = strings.TrimSpace(rootID)
	if rootID == "" {
		return types.Graph{}, ErrEmptyRoot
	}
	if rootLabel == "" {
		rootLabel = rootID
	}

	start := time.Now()
	t := newTraversal(b.src, b.opts.MaxDepth, b.log)
	if b.opts.Concurrency > 1 {
		t.runConcurrent(ctx, rootID, rootLabel, b.opts.Concurrency)
	} else {
		t.run(ctx, rootID, rootLabel)
	}

	g := types.Graph{Nodes: dedupNodes(t.nodes), Edges: t.edges}
	g = ApplyDanglingPolicy(g, b.opts.Dangling)

	metrics.GraphNodes.Observe(float64(len(g.Nodes)))
	b.log.WithFields(logrus.Fields{
		"root":      rootID,
		"nodes":     len(g.Nodes),
		"edges":     len(g.Edges),
		"expanded":  len(t.visited),
		"failed":    t.failed,
		"max_depth": b.opts.MaxDepth,
		"duration":  time.Since(start).String(),
	}).Info("graph built")

	return g, ctx.Err()
}

// dedupNodes keeps the first node for each id, preserving insertion order.
func dedupNodes(nodes []types.Node) []types.Node {
	seen := make(map[string]struct{}, len(nodes))
	out := make([]types.Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}
