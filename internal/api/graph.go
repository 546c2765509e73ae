// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/citation-graph/internal/graph"
	"github.com/pdiddy/citation-graph/pkg/types"
)

// GraphHandler serves citation graphs.
type GraphHandler struct {
	builder *graph.Builder
	timeout time.Duration
	log     *logrus.Logger
}

// NewGraphHandler creates a GraphHandler. Every request gets its own
// traversal; the builder only carries the default options.
func NewGraphHandler(builder *graph.Builder, timeout time.Duration, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{builder: builder, timeout: timeout, log: log}
}

// Get handles GET /api/graph/*id. Optional query parameters: depth
// (0..MaxDepthLimit), dangling (keep, drop, placeholder), and label, which
// skips the root title lookup.
func (h *GraphHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == "" {
		return
	}

	opts, err := h.options(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	b := h.builder.WithOptions(opts)
	var g types.Graph
	if label := c.Query("label"); label != "" {
		g, err = b.BuildGraph(ctx, id, label)
	} else {
		g, err = b.Build(ctx, id)
	}
	if err != nil {
		if respondContextError(c, err) {
			return
		}
		if errors.Is(err, graph.ErrEmptyRoot) {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
			return
		}
		h.log.WithError(err).WithField("paper_id", id).Error("building graph")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, graph.Normalize(g))
}

func (h *GraphHandler) options(c *gin.Context) (graph.Options, error) {
	opts := h.builder.Options()

	if s := c.Query("depth"); s != "" {
		d, err := strconv.Atoi(s)
		if err != nil || d < 0 || d > types.MaxDepthLimit {
			return opts, fmt.Errorf("depth must be an integer between 0 and %d", types.MaxDepthLimit)
		}
		opts.MaxDepth = d
	}
	if s := c.Query("dangling"); s != "" {
		p, err := types.ParseDanglingPolicy(s)
		if err != nil {
			return opts, err
		}
		opts.Dangling = p
	}
	return opts, nil
}
