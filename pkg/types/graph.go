// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for citation-graph.
// Graph values are produced by internal/graph and consumed by the CLI
// formatters and the HTTP service; the json/yaml field names are the
// contract with visualization clients (vis.js DataSet compatible).
package types

import "fmt"

// Node is one paper in a citation graph.
type Node struct {
	// ID is the paper identifier in the lookup source's namespace.
	ID string `json:"id" yaml:"id"`

	// Label is the display title, or the identifier when no title is known.
	Label string `json:"label" yaml:"label"`
}

// Edge records that paper From cites paper To.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Graph is the result of a citation traversal. Nodes are unique by ID and
// ordered by first insertion. Edges are in the order they were recorded and
// may reference identifiers that have no node (dangling endpoints).
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// HasNode reports whether id has a node entry.
func (g Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// DanglingEndpoints returns edge endpoints that have no node entry, in the
// order they first appear in Edges.
func (g Graph) DanglingEndpoints() []string {
	known := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		known[n.ID] = struct{}{}
	}
	var out []string
	for _, e := range g.Edges {
		for _, id := range []string{e.From, e.To} {
			if _, ok := known[id]; ok {
				continue
			}
			known[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// DanglingPolicy selects how edges whose endpoints never became nodes are
// presented.
type DanglingPolicy string

const (
	// DanglingKeep leaves dangling edges in place with no node entry.
	DanglingKeep DanglingPolicy = "keep"

	// DanglingDrop removes every edge with an endpoint that has no node.
	DanglingDrop DanglingPolicy = "drop"

	// DanglingPlaceholder adds a node labelled with its identifier for
	// every dangling endpoint.
	DanglingPlaceholder DanglingPolicy = "placeholder"
)

// ParseDanglingPolicy validates s. The empty string selects DanglingKeep.
func ParseDanglingPolicy(s string) (DanglingPolicy, error) {
	switch p := DanglingPolicy(s); p {
	case "":
		return DanglingKeep, nil
	case DanglingKeep, DanglingDrop, DanglingPlaceholder:
		return p, nil
	default:
		return "", fmt.Errorf("unknown dangling policy %q: use keep, drop, or placeholder", s)
	}
}
