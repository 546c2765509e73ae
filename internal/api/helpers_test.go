// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/citation-graph/internal/api"
	"github.com/pdiddy/citation-graph/internal/graph"
	"github.com/pdiddy/citation-graph/internal/lookup/lookuptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// sampleSource is X -> {Y, Z}, Y -> {W}, with Z failing.
func sampleSource() *lookuptest.Source {
	return lookuptest.New().
		Add("X", "Paper X", lookuptest.Ref("Y", "Paper Y"), lookuptest.Ref("Z", "")).
		Add("Y", "Paper Y", lookuptest.Ref("W", "Paper W")).
		Fail("Z")
}

// newTestRouter builds the full router over src.
func newTestRouter(src *lookuptest.Source, timeout time.Duration) http.Handler {
	log := testLogger()
	return api.NewRouter(&api.RouterDeps{
		Log:            log,
		Builder:        graph.NewBuilder(src, graph.DefaultOptions(), log),
		Source:         src,
		Version:        "test-v1",
		RequestTimeout: timeout,
	})
}

// doRequest performs a GET against the handler and returns the recorder.
func doRequest(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

// blockingSource knows X -> {Y}, but answers reference lookups only after
// a minute or when the request context ends.
func blockingSource() *lookuptest.Source {
	return lookuptest.New().
		Add("X", "Paper X", lookuptest.Ref("Y", "Paper Y")).
		Delay("X", time.Minute)
}

// doCancelledRequest performs a GET whose request context is already
// cancelled, as when the client has gone away.
func doCancelledRequest(h http.Handler, path string) *httptest.ResponseRecorder {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequestWithContext(ctx, http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}
