// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/citation-graph/internal/httputil"
	"github.com/pdiddy/citation-graph/pkg/types"
)

// semanticAPIBase is the Semantic Scholar Graph API paper endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/"

const (
	semanticTitleFields     = "title"
	semanticReferenceFields = "title,references.paperId,references.title,references.year,references.externalIds"
)

// SemanticScholar looks papers up in the Semantic Scholar Graph API.
type SemanticScholar struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the source identifier.
func (s *SemanticScholar) Name() string { return types.SourceSemanticScholar }

// Title returns the paper title.
func (s *SemanticScholar) Title(ctx context.Context, id string) (string, error) {
	var p semanticPaper
	if err := s.get(ctx, id, semanticTitleFields, &p); err != nil {
		return "", err
	}
	return p.Title, nil
}

// References returns the paper's references in API order. Entries the API
// returns without a paperId keep an empty ID.
func (s *SemanticScholar) References(ctx context.Context, id string) ([]types.Reference, error) {
	var p semanticPaper
	if err := s.get(ctx, id, semanticReferenceFields, &p); err != nil {
		return nil, err
	}

	refs := make([]types.Reference, 0, len(p.References))
	for _, r := range p.References {
		ref := types.Reference{
			ID:    r.PaperID,
			Title: r.Title,
			Year:  r.Year,
		}
		if r.ExternalIDs != nil {
			ref.ArxivID = r.ExternalIDs.ArXiv
			ref.DOI = r.ExternalIDs.DOI
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *SemanticScholar) get(ctx context.Context, id, fields string, v any) error {
	key := semanticPaperKey(id)
	reqURL := semanticAPIBase + escapeKey(key) + "?" + url.Values{"fields": {fields}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	if err := httputil.GetJSON(ctx, s.Client, req, v); err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) && se.NotFound() {
			return fmt.Errorf("Semantic Scholar %s: %w", key, ErrNotFound)
		}
		return fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	return nil
}

// semanticPaperKey maps an identifier to the path key the Graph API expects:
// arXiv and DOI ids get their external-id prefix, everything else passes
// through unchanged.
func semanticPaperKey(id string) string {
	idType, norm := Classify(id)
	switch idType {
	case TypeArxiv:
		return "arXiv:" + norm
	case TypeDOI:
		return "DOI:" + norm
	case TypeCorpusID:
		return "CorpusId:" + norm
	default:
		return norm
	}
}

// escapeKey path-escapes a paper key but keeps DOI slashes literal, the
// form the Graph API documents ("DOI:10.18653/v1/N18-3011").
func escapeKey(key string) string {
	return strings.ReplaceAll(url.PathEscape(key), "%2F", "/")
}

// Semantic Scholar API JSON structures. Pointers distinguish an absent
// externalIds object from an empty one.
type semanticPaper struct {
	PaperID    string              `json:"paperId"`
	Title      string              `json:"title"`
	References []semanticReference `json:"references"`
}

type semanticReference struct {
	PaperID     string               `json:"paperId"`
	Title       string               `json:"title"`
	Year        int                  `json:"year"`
	ExternalIDs *semanticExternalIDs `json:"externalIds"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
