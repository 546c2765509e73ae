// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-graph/internal/lookup/lookuptest"
)

func TestLiveness_ReturnsOK(t *testing.T) {
	t.Parallel()

	src := lookuptest.New()
	w := doRequest(newTestRouter(src, 0), "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decode(t, w, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test-v1", body["version"])
	assert.Equal(t, "fake", body["source"])
	assert.Empty(t, src.ReferenceCalls(), "health must not hit the lookup source")
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	r := newTestRouter(sampleSource(), 0)
	doRequest(r, "/api/graph/X")

	w := doRequest(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "citegraph_http_requests_total"))
	assert.Contains(t, w.Body.String(), "citegraph_expansions_total")
}
