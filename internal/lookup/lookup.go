// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup fetches a paper's title and outgoing reference list from a
// bibliographic source. Semantic Scholar, OpenAlex, and an offline SQLite
// snapshot implement the same Source interface so the graph builder never
// knows which one it is talking to.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/citation-graph/pkg/types"
)

// ErrNotFound is returned (wrapped) when a source does not know the paper.
var ErrNotFound = errors.New("paper not found")

// Source looks up one paper at a time. Implementations must be safe for
// concurrent use.
type Source interface {
	// Name returns the source identifier (e.g. "semantic_scholar").
	Name() string

	// Title returns the paper's display title. An empty title with a nil
	// error means the source knows the paper but has no title for it.
	Title(ctx context.Context, id string) (string, error)

	// References returns the paper's outgoing references in source order.
	// A nil or empty slice with a nil error is a valid empty list.
	References(ctx context.Context, id string) ([]types.Reference, error)
}

// ResolveTitle returns the display title for id, falling back to id itself
// when the lookup fails or the source has no title.
func ResolveTitle(ctx context.Context, src Source, id string, log *logrus.Logger) string {
	title, err := src.Title(ctx, id)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"paper_id": id,
			"source":   src.Name(),
		}).Warn("root title lookup failed, using identifier as label")
		return id
	}
	if title == "" {
		return id
	}
	return title
}

// New builds the Source named by cfg.Source. The snapshot source opens its
// database; callers close it through Close when the returned source
// implements io.Closer.
func New(cfg types.LookupConfig, client *http.Client) (Source, error) {
	switch cfg.Source {
	case types.SourceSemanticScholar, "":
		return &SemanticScholar{Client: client, APIKey: cfg.SemanticScholarAPIKey, UserAgent: cfg.UserAgent}, nil
	case types.SourceOpenAlex:
		return &OpenAlex{Client: client, Email: cfg.OpenAlexEmail, UserAgent: cfg.UserAgent}, nil
	case types.SourceSnapshot:
		snap, err := OpenSnapshot(cfg.SnapshotPath)
		if err != nil {
			return nil, err
		}
		return snap, nil
	default:
		return nil, fmt.Errorf("unknown lookup source %q", cfg.Source)
	}
}
