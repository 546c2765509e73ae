// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup_test

import (
	"context"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-graph/internal/lookup"
	"github.com/pdiddy/citation-graph/internal/lookup/lookuptest"
	"github.com/pdiddy/citation-graph/internal/metrics"
)

func TestInstrumentedCountsOutcomes(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	fake := lookuptest.New().
		Add("A", "Paper A", lookuptest.Ref("B", "Paper B")).
		Fail("F")
	src := lookup.Instrument(fake, log)

	ok := metrics.LookupsTotal.WithLabelValues("fake", "references", "ok")
	notFound := metrics.LookupsTotal.WithLabelValues("fake", "references", "not_found")
	failed := metrics.LookupsTotal.WithLabelValues("fake", "references", "error")
	okBefore := testutil.ToFloat64(ok)
	notFoundBefore := testutil.ToFloat64(notFound)
	failedBefore := testutil.ToFloat64(failed)

	refs, err := src.References(context.Background(), "A")
	require.NoError(t, err)
	assert.Len(t, refs, 1)

	_, err = src.References(context.Background(), "missing")
	assert.ErrorIs(t, err, lookup.ErrNotFound)

	_, err = src.References(context.Background(), "F")
	assert.ErrorIs(t, err, lookuptest.ErrInjected)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, notFoundBefore+1, testutil.ToFloat64(notFound))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))

	var warnings int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
			assert.Equal(t, "references", e.Data["op"])
		}
	}
	assert.Equal(t, 2, warnings)
	assert.Equal(t, "fake", src.Name())
}

func TestInstrumentedCancelled(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	src := lookup.Instrument(lookuptest.New().Add("A", "Paper A"), log)
	cancelled := metrics.LookupsTotal.WithLabelValues("fake", "title", "cancelled")
	before := testutil.ToFloat64(cancelled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := src.Title(ctx, "A")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before+1, testutil.ToFloat64(cancelled))
}

func TestResolveTitle(t *testing.T) {
	log, hook := test.NewNullLogger()
	src := lookuptest.New().Add("A", "Paper A").Add("U", "").Fail("F")

	assert.Equal(t, "Paper A", lookup.ResolveTitle(context.Background(), src, "A", log))
	assert.Equal(t, "U", lookup.ResolveTitle(context.Background(), src, "U", log))
	assert.Equal(t, "F", lookup.ResolveTitle(context.Background(), src, "F", log))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Len(t, hook.AllEntries(), 1)
}
