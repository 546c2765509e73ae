// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/citation-graph/internal/httputil"
	"github.com/pdiddy/citation-graph/pkg/types"
)

// openAlexAPIBase is the OpenAlex works endpoint. Declared as a var so tests
// can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

const (
	openAlexIDPrefix = "https://openalex.org/"
	openAlexDOIBase  = "https://doi.org/"

	// openAlexBatchSize is the number of ids OpenAlex accepts in one
	// openalex_id filter.
	openAlexBatchSize = 50
)

// OpenAlex looks papers up in the OpenAlex works API. OpenAlex returns
// referenced works as bare ids, so References resolves their titles with
// batched follow-up queries.
type OpenAlex struct {
	Client *http.Client
	// Email is sent as mailto parameter for polite pool access.
	Email     string
	UserAgent string
}

// Name returns the source identifier.
func (o *OpenAlex) Name() string { return types.SourceOpenAlex }

// Title returns the work's display name.
func (o *OpenAlex) Title(ctx context.Context, id string) (string, error) {
	var w openAlexWork
	if err := o.getWork(ctx, id, "id,display_name", &w); err != nil {
		return "", err
	}
	return w.DisplayName, nil
}

// References returns the work's referenced works in API order. Titles are
// resolved best-effort: when the batch query fails the references keep
// empty titles.
func (o *OpenAlex) References(ctx context.Context, id string) ([]types.Reference, error) {
	var w openAlexWork
	if err := o.getWork(ctx, id, "id,display_name,referenced_works", &w); err != nil {
		return nil, err
	}

	refs := make([]types.Reference, 0, len(w.ReferencedWorks))
	for _, ref := range w.ReferencedWorks {
		refs = append(refs, types.Reference{ID: strings.TrimPrefix(ref, openAlexIDPrefix)})
	}

	meta, err := o.resolveWorks(ctx, refs)
	if err != nil {
		return refs, nil
	}
	for i := range refs {
		if m, ok := meta[refs[i].ID]; ok {
			refs[i].Title = m.DisplayName
			refs[i].Year = m.PublicationYear
			refs[i].DOI = strings.TrimPrefix(m.DOI, openAlexDOIBase)
		}
	}
	return refs, nil
}

// resolveWorks fetches display metadata for refs in batches and returns it
// keyed by short work id.
func (o *OpenAlex) resolveWorks(ctx context.Context, refs []types.Reference) (map[string]openAlexWork, error) {
	out := make(map[string]openAlexWork, len(refs))
	for start := 0; start < len(refs); start += openAlexBatchSize {
		end := min(start+openAlexBatchSize, len(refs))
		ids := make([]string, 0, end-start)
		for _, r := range refs[start:end] {
			if r.ID != "" {
				ids = append(ids, r.ID)
			}
		}
		if len(ids) == 0 {
			continue
		}

		params := url.Values{
			"filter":   {"openalex_id:" + strings.Join(ids, "|")},
			"select":   {"id,display_name,publication_year,doi"},
			"per_page": {fmt.Sprintf("%d", openAlexBatchSize)},
		}
		var page openAlexList
		if err := o.do(ctx, openAlexAPIBase+"?"+o.withMailto(params).Encode(), &page); err != nil {
			return nil, err
		}
		for _, work := range page.Results {
			out[strings.TrimPrefix(work.ID, openAlexIDPrefix)] = work
		}
	}
	return out, nil
}

func (o *OpenAlex) getWork(ctx context.Context, id, fields string, v any) error {
	key := openAlexWorkKey(id)
	params := url.Values{"select": {fields}}
	reqURL := openAlexAPIBase + "/" + key + "?" + o.withMailto(params).Encode()

	if err := o.do(ctx, reqURL, v); err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) && se.NotFound() {
			return fmt.Errorf("OpenAlex %s: %w", key, ErrNotFound)
		}
		return err
	}
	return nil
}

func (o *OpenAlex) do(ctx context.Context, reqURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating OpenAlex request: %w", err)
	}
	if o.UserAgent != "" {
		req.Header.Set("User-Agent", o.UserAgent)
	}
	if err := httputil.GetJSON(ctx, o.Client, req, v); err != nil {
		return fmt.Errorf("OpenAlex API request: %w", err)
	}
	return nil
}

func (o *OpenAlex) withMailto(params url.Values) url.Values {
	if o.Email != "" {
		params.Set("mailto", o.Email)
	}
	return params
}

// arxivVersion matches the version suffix arXiv DOIs do not carry.
var arxivVersion = regexp.MustCompile(`v\d+$`)

// openAlexWorkKey maps an identifier to an OpenAlex single-work key. arXiv
// papers are addressed through their DataCite DOI.
func openAlexWorkKey(id string) string {
	idType, norm := Classify(id)
	switch idType {
	case TypeArxiv:
		return "doi:10.48550/arXiv." + arxivVersion.ReplaceAllString(norm, "")
	case TypeDOI:
		return "doi:" + norm
	default:
		return norm
	}
}

// OpenAlex API JSON structures.
type openAlexWork struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"display_name"`
	DOI             string   `json:"doi"`
	PublicationYear int      `json:"publication_year"`
	ReferencedWorks []string `json:"referenced_works"`
}

type openAlexList struct {
	Results []openAlexWork `json:"results"`
}
