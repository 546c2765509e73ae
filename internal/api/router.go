// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api serves citation graphs over HTTP with gin.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/citation-graph/internal/graph"
	"github.com/pdiddy/citation-graph/internal/lookup"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log     *logrus.Logger
	Builder *graph.Builder
	Source  lookup.Source
	Version string

	// RequestTimeout bounds each graph build or reference lookup. Zero
	// leaves requests bounded only by the client connection.
	RequestTimeout time.Duration
}

func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerRoutes(r *gin.Engine, deps *RouterDeps) {
	health := NewHealthHandler(deps.Source, deps.Version)
	graphs := NewGraphHandler(deps.Builder, deps.RequestTimeout, deps.Log)
	refs := NewReferencesHandler(deps.Source, deps.RequestTimeout, deps.Log)

	r.GET("/health", health.Liveness)

	// Identifiers may contain slashes (DOIs, old-style arXiv ids), so the
	// id is a catch-all parameter.
	api := r.Group("/api")
	api.GET("/graph/*id", graphs.Get)
	api.GET("/references/*id", refs.Get)
}

// NewRouter creates the gin engine with all middleware and routes.
func NewRouter(deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(r, deps)
	return r
}
