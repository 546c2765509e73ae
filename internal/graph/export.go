// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	dgraph "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-graph/pkg/types"
)

// Format selects a graph serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatDOT  Format = "dot"
)

// ParseFormat validates s. The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatDOT:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use json, yaml, or dot", s)
	}
}

// Write serializes g to w in the given format.
func Write(g types.Graph, format Format, w io.Writer) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(g, w)
	case FormatYAML:
		return WriteYAML(g, w)
	case FormatDOT:
		return WriteDOT(g, w)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteJSON writes g as indented JSON with nodes and edges arrays, the shape
// a vis.js DataSet consumes directly.
func WriteJSON(g types.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Normalize(g))
}

// WriteYAML writes g as YAML.
func WriteYAML(g types.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(Normalize(g))
}

// WriteDOT writes g as a Graphviz digraph. DOT cannot express an edge to a
// missing vertex, so dangling endpoints are drawn as vertices labelled with
// their identifier. Repeated edges are drawn once.
func WriteDOT(g types.Graph, w io.Writer) error {
	dg := dgraph.New(dgraph.StringHash, dgraph.Directed())

	for _, n := range g.Nodes {
		if err := addVertex(dg, n.ID, n.Label); err != nil {
			return err
		}
	}
	for _, id := range g.DanglingEndpoints() {
		if err := addVertex(dg, id, id); err != nil {
			return err
		}
	}
	for _, e := range g.Edges {
		err := dg.AddEdge(e.From, e.To)
		if err != nil && !errors.Is(err, dgraph.ErrEdgeAlreadyExists) {
			return fmt.Errorf("adding edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	return draw.DOT(dg, w)
}

func addVertex(dg dgraph.Graph[string, string], id, label string) error {
	err := dg.AddVertex(id, dgraph.VertexAttribute("label", label))
	if err != nil && !errors.Is(err, dgraph.ErrVertexAlreadyExists) {
		return fmt.Errorf("adding vertex %s: %w", id, err)
	}
	return nil
}

// Normalize replaces nil slices so empty graphs serialize as [] rather than
// null.
func Normalize(g types.Graph) types.Graph {
	if g.Nodes == nil {
		g.Nodes = []types.Node{}
	}
	if g.Edges == nil {
		g.Edges = []types.Edge{}
	}
	return g
}
