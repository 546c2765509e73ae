// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics defines Prometheus metrics for citation-graph.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citegraph_lookups_total",
			Help: "Reference lookups by source, operation, and outcome",
		},
		[]string{"source", "op", "outcome"},
	)

	LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "citegraph_lookup_duration_seconds",
			Help:    "Reference lookup latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "op"},
	)

	ExpansionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "citegraph_expansions_total",
			Help: "Papers expanded during graph builds",
		},
	)

	GraphNodes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "citegraph_graph_nodes",
			Help:    "Node count of built graphs",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "citegraph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citegraph_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citegraph_errors_total",
			Help: "Total API errors by code",
		},
		[]string{"code"},
	)
)

func init() {
	prometheus.MustRegister(
		LookupsTotal, LookupDuration,
		ExpansionsTotal, GraphNodes,
		RequestDuration, RequestsTotal, ErrorsTotal,
	)
}
