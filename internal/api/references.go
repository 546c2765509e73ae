// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/citation-graph/internal/lookup"
	"github.com/pdiddy/citation-graph/pkg/types"
)

// ReferencesHandler serves single-paper reference listings.
type ReferencesHandler struct {
	src     lookup.Source
	timeout time.Duration
	log     *logrus.Logger
}

// NewReferencesHandler creates a ReferencesHandler.
func NewReferencesHandler(src lookup.Source, timeout time.Duration, log *logrus.Logger) *ReferencesHandler {
	return &ReferencesHandler{src: src, timeout: timeout, log: log}
}

// Get handles GET /api/references/*id.
func (h *ReferencesHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == "" {
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	refs, err := h.src.References(ctx, id)
	if err != nil {
		if respondContextError(c, err) {
			return
		}
		if errors.Is(err, lookup.ErrNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "paper not found")
			return
		}
		h.log.WithError(err).WithField("paper_id", id).Warn("reference lookup failed")
		respondError(c, http.StatusBadGateway, ErrCodeUpstream, "reference lookup failed")
		return
	}

	c.JSON(http.StatusOK, types.NewReferenceList(id, refs))
}
