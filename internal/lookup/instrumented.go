// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/citation-graph/internal/metrics"
	"github.com/pdiddy/citation-graph/pkg/types"
)

// Instrumented wraps a Source, counting lookups per outcome and logging
// failures. It adds no retry and no caching.
type Instrumented struct {
	Source
	log *logrus.Logger
}

// Instrument returns src wrapped with metrics and logging.
func Instrument(src Source, log *logrus.Logger) *Instrumented {
	return &Instrumented{Source: src, log: log}
}

// Title looks up the title and records the outcome.
func (i *Instrumented) Title(ctx context.Context, id string) (string, error) {
	start := time.Now()
	title, err := i.Source.Title(ctx, id)
	i.observe("title", id, start, err)
	return title, err
}

// References looks up the references and records the outcome.
func (i *Instrumented) References(ctx context.Context, id string) ([]types.Reference, error) {
	start := time.Now()
	refs, err := i.Source.References(ctx, id)
	i.observe("references", id, start, err)
	if err == nil {
		i.log.WithFields(logrus.Fields{
			"source":     i.Name(),
			"paper_id":   id,
			"references": len(refs),
		}).Debug("lookup.references")
	}
	return refs, err
}

func (i *Instrumented) observe(op, id string, start time.Time, err error) {
	name := i.Name()
	metrics.LookupDuration.WithLabelValues(name, op).Observe(time.Since(start).Seconds())
	metrics.LookupsTotal.WithLabelValues(name, op, outcome(err)).Inc()
	if err != nil {
		i.log.WithError(err).WithFields(logrus.Fields{
			"source":   name,
			"op":       op,
			"paper_id": id,
		}).Warn("lookup failed")
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
