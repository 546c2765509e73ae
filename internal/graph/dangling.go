// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import "github.com/pdiddy/citation-graph/pkg/types"

// ApplyDanglingPolicy returns g with edges to never-expanded papers handled
// according to policy. DanglingKeep returns g unchanged.
func ApplyDanglingPolicy(g types.Graph, policy types.DanglingPolicy) types.Graph {
	switch policy {
	case types.DanglingDrop:
		known := make(map[string]struct{}, len(g.Nodes))
		for _, n := range g.Nodes {
			known[n.ID] = struct{}{}
		}
		edges := make([]types.Edge, 0, len(g.Edges))
		for _, e := range g.Edges {
			_, fromOK := known[e.From]
			_, toOK := known[e.To]
			if fromOK && toOK {
				edges = append(edges, e)
			}
		}
		return types.Graph{Nodes: g.Nodes, Edges: edges}

	case types.DanglingPlaceholder:
		dangling := g.DanglingEndpoints()
		if len(dangling) == 0 {
			return g
		}
		nodes := make([]types.Node, 0, len(g.Nodes)+len(dangling))
		nodes = append(nodes, g.Nodes...)
		for _, id := range dangling {
			nodes = append(nodes, types.Node{ID: id, Label: id})
		}
		return types.Graph{Nodes: nodes, Edges: g.Edges}

	default:
		return g
	}
}
