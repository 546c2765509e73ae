// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-graph/internal/api"
	"github.com/pdiddy/citation-graph/internal/lookup/lookuptest"
	"github.com/pdiddy/citation-graph/pkg/types"
)

func TestReferences_List(t *testing.T) {
	t.Parallel()

	src := lookuptest.New().Add("1706.03762", "Attention Is All You Need",
		types.Reference{ID: "s2a", Title: "Paper A", Year: 2014, ArxivID: "1409.0473"},
		types.Reference{Title: "Unidentified", DOI: "10.1/x"},
	)
	w := doRequest(newTestRouter(src, 0), "/api/references/1706.03762")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var list types.ReferenceList
	decode(t, w, &list)
	assert.Equal(t, types.ReferenceList{
		ID: "1706.03762",
		References: []types.ReferenceEntry{
			{ID: "s2a", Title: "Paper A", Year: 2014, URL: "https://arxiv.org/abs/1409.0473"},
			{Title: "Unidentified", URL: "https://doi.org/10.1/x"},
		},
	}, list)
}

func TestReferences_Empty(t *testing.T) {
	t.Parallel()

	w := doRequest(newTestRouter(lookuptest.New().Add("X", "Paper X"), 0), "/api/references/X")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"X","references":[]}`, w.Body.String())
}

func TestReferences_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantErr  string
	}{
		{"unknown paper", "/api/references/missing", http.StatusNotFound, api.ErrCodeNotFound},
		{"lookup failure", "/api/references/Z", http.StatusBadGateway, api.ErrCodeUpstream},
	}
	r := newTestRouter(sampleSource(), 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.path)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())

			var body errorBody
			decode(t, w, &body)
			assert.Equal(t, tt.wantErr, body.Code)
		})
	}
}

func TestReferences_Timeout(t *testing.T) {
	t.Parallel()

	r := newTestRouter(blockingSource(), 20*time.Millisecond)
	w := doRequest(r, "/api/references/X")
	require.Equal(t, http.StatusGatewayTimeout, w.Code, w.Body.String())

	var body errorBody
	decode(t, w, &body)
	assert.Equal(t, api.ErrCodeTimeout, body.Code)
	assert.NotEmpty(t, body.RequestID)
}

func TestReferences_ClientGone(t *testing.T) {
	t.Parallel()

	r := newTestRouter(blockingSource(), time.Minute)
	w := doCancelledRequest(r, "/api/references/X")
	assert.Equal(t, 499, w.Code)
	assert.Empty(t, w.Body.String())
}
