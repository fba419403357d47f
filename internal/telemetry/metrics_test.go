package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.ObserveRun(OutcomeSucceeded)
	m.ObserveRun(OutcomeSucceeded)
	m.ObserveRun(OutcomeFailed)
	m.ObserveUpstream("weather", 200)
	m.ObserveUpstream("weather", 404)
	m.ObserveUpstream("weather", 404)
	m.IncHTTPRequests()
	m.ObserveStage("WEATHER", 20*time.Millisecond)
	m.ObserveStageFailure("WEATHER")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSucceeded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstream.WithLabelValues("weather", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests))
	assert.Equal(t, 1, testutil.CollectAndCount(m.stageSeconds))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stageErrors.WithLabelValues("WEATHER")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRun(OutcomeFailed)
		m.ObserveStage("IMAGE", time.Second)
		m.ObserveStageFailure("IMAGE")
		m.ObserveUpstream("image", 500)
		m.IncHTTPRequests()
	})
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	logger := Discard()
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}
