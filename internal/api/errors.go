// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/citation-graph/internal/metrics"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeUpstream       = "upstream_error"
	ErrCodeTimeout        = "timeout"
	ErrCodeInternalError  = "internal_error"
)

// maxIDLength caps the length of a paper identifier in the path.
const maxIDLength = 255

// respondError writes a {code, message, request_id} JSON error and aborts.
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()

	resp := gin.H{
		"code":    code,
		"message": message,
	}
	if rid := c.GetString(RequestIDKey); rid != "" {
		resp["request_id"] = rid
	}
	c.AbortWithStatusJSON(status, resp)
}

// respondContextError maps a context error to a response. It reports
// whether err was a context error.
func respondContextError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, ErrCodeTimeout, "lookup timed out")
		return true
	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads the body.
		c.AbortWithStatus(499)
		return true
	default:
		return false
	}
}

// pathID returns the catch-all id parameter without its leading slash.
// It writes a 400 response and returns "" when the id is unusable.
func pathID(c *gin.Context) string {
	id := strings.TrimSpace(strings.TrimPrefix(c.Param("id"), "/"))
	switch {
	case id == "":
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "paper id must not be empty")
		return ""
	case len(id) > maxIDLength:
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "paper id exceeds maximum length of 255")
		return ""
	}
	return id
}
