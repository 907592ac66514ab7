package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New("lexengine", reg)

	c.ObserveEvaluation("right-to-vote?", true, 50*time.Microsecond)
	c.ObserveEvaluation("right-to-vote?", false, 30*time.Microsecond)
	c.ObserveEvaluation("right-to-vote?", false, 30*time.Microsecond)
	c.ObserveFailure("lawful-processing?")
	c.SetPredicateCount(12)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		c.evaluations.WithLabelValues("right-to-vote?", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(
		c.evaluations.WithLabelValues("right-to-vote?", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		c.failures.WithLabelValues("lawful-processing?")))
	assert.Equal(t, 12.0, testutil.ToFloat64(c.predicates))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["lexengine_evaluations_total"])
	assert.True(t, names["lexengine_evaluation_failures_total"])
	assert.True(t, names["lexengine_evaluation_duration_seconds"])
	assert.True(t, names["lexengine_registry_predicates"])
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	c.ObserveEvaluation("x?", true, time.Microsecond)
	c.ObserveFailure("x?")
	c.SetPredicateCount(3)
}
