// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/citation-graph/internal/lookup"
	"github.com/pdiddy/citation-graph/internal/metrics"
	"github.com/pdiddy/citation-graph/pkg/types"
)

// task is one pending expansion. from is the citing paper, empty for the
// root; its edge is recorded when the task is taken, before the depth and
// visited checks.
type task struct {
	from  string
	id    string
	label string
	depth int
}

// traversal is the state of a single build.
type traversal struct {
	src      lookup.Source
	maxDepth int
	log      *logrus.Logger

	mu      sync.Mutex
	visited map[string]struct{}
	nodes   []types.Node
	edges   []types.Edge
	failed  int
}

func newTraversal(src lookup.Source, maxDepth int, log *logrus.Logger) *traversal {
	return &traversal{
		src:      src,
		maxDepth: maxDepth,
		log:      log,
		visited:  make(map[string]struct{}),
	}
}

// run performs the sequential depth-first traversal. Children are pushed in
// reverse so the first reference is taken next; a paper's later references
// wait until the subtree of its earlier ones is finished, which is the
// order a recursive expansion produces.
func (t *traversal) run(ctx context.Context, rootID, rootLabel string) {
	stack := []task{{id: rootID, label: rootLabel}}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			return
		}
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.from != "" {
			t.edges = append(t.edges, types.Edge{From: cur.from, To: cur.id})
		}
		if !t.visit(cur) {
			continue
		}

		refs := t.references(ctx, cur)
		for i := len(refs) - 1; i >= 0; i-- {
			stack = append(stack, task{
				from:  cur.id,
				id:    refs[i].ID,
				label: refs[i].Label(),
				depth: cur.depth + 1,
			})
		}
	}
}

// runConcurrent expands the graph one depth level at a time, looking up the
// papers of a level in parallel. Papers are claimed in level order, so each
// is expanded at the shallowest depth it can be reached from the root and
// the result does not depend on lookup timing. sem bounds the lookups that
// are in flight at once.
func (t *traversal) runConcurrent(ctx context.Context, rootID, rootLabel string, limit int) {
	sem := semaphore.NewWeighted(int64(limit))
	level := []task{{id: rootID, label: rootLabel}}

	for len(level) > 0 {
		if ctx.Err() != nil {
			return
		}

		var claimed []task
		for _, cur := range level {
			if cur.from != "" {
				t.edges = append(t.edges, types.Edge{From: cur.from, To: cur.id})
			}
			if t.visit(cur) {
				claimed = append(claimed, cur)
			}
		}

		refs := make([][]types.Reference, len(claimed))
		g, gctx := errgroup.WithContext(ctx)
		for i, cur := range claimed {
			g.Go(func() error {
				if err := sem.Acquire(gctx, 1); err != nil {
					return nil
				}
				defer sem.Release(1)
				refs[i] = t.references(gctx, cur)
				return nil
			})
		}
		g.Wait()

		var next []task
		for i, cur := range claimed {
			for _, r := range refs[i] {
				next = append(next, task{from: cur.id, id: r.ID, label: r.Label(), depth: cur.depth + 1})
			}
		}
		level = next
	}
}

// visit records cur as a node when it is within the depth bound and not
// yet expanded. It reports whether cur should be expanded.
func (t *traversal) visit(cur task) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur.depth > t.maxDepth {
		return false
	}
	if _, ok := t.visited[cur.id]; ok {
		return false
	}
	t.visited[cur.id] = struct{}{}
	t.nodes = append(t.nodes, types.Node{ID: cur.id, Label: cur.label})
	metrics.ExpansionsTotal.Inc()
	return true
}

// references looks up the outgoing references of cur, dropping entries
// without an identifier. A failed lookup yields no references.
func (t *traversal) references(ctx context.Context, cur task) []types.Reference {
	refs, err := t.src.References(ctx, cur.id)
	if err != nil {
		t.mu.Lock()
		t.failed++
		t.mu.Unlock()
		t.log.WithError(err).WithFields(logrus.Fields{
			"paper_id": cur.id,
			"depth":    cur.depth,
		}).Debug("expansion stopped: lookup failed")
		return nil
	}

	kept := make([]types.Reference, 0, len(refs))
	for _, r := range refs {
		if r.ID == "" {
			t.log.WithFields(logrus.Fields{
				"paper_id": cur.id,
				"title":    r.Title,
			}).Debug("skipping reference without identifier")
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
