// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the remote lookup sources.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of a non-200 body is kept for diagnostics.
const maxErrorBody = 512

// StatusError reports a non-200 response from a remote API.
type StatusError struct {
	Code int
	URL  string
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("GET %s returned HTTP %d: %s", e.URL, e.Code, e.Body)
	}
	return fmt.Sprintf("GET %s returned HTTP %d", e.URL, e.Code)
}

// NotFound reports whether the remote API does not know the resource.
func (e *StatusError) NotFound() bool {
	return e.Code == http.StatusNotFound
}

// GetJSON executes req exactly once and decodes a 200 response body into v.
// Any other status yields a *StatusError carrying the start of the body.
// There is no retry: callers treat a failed request as final.
func GetJSON(ctx context.Context, client *http.Client, req *http.Request, v any) error {
	resp, err := client.Do(req.Clone(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, URL: req.URL.Redacted(), Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.Redacted(), err)
	}
	return nil
}
