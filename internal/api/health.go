// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/citation-graph/internal/lookup"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	src       lookup.Source
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler reporting src's name.
func NewHealthHandler(src lookup.Source, version string) *HealthHandler {
	return &HealthHandler{src: src, version: version, startTime: time.Now()}
}

type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Source        string  `json:"source"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /health. It never calls the lookup source.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if h.src != nil {
		resp.Source = h.src.Name()
	}
	c.JSON(http.StatusOK, resp)
}
