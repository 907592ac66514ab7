// Package metrics provides Prometheus instrumentation for predicate
// evaluation.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the evaluation metrics. A nil *Collector is valid and
// records nothing, so callers never need to guard their observation calls.
type Collector struct {
	// Evaluation outcomes by top-level predicate and boolean result.
	evaluations *prometheus.CounterVec

	// Evaluation failures by top-level predicate.
	failures *prometheus.CounterVec

	// Full evaluation latency, including trace construction.
	latency prometheus.Histogram

	// Number of predicates in the active registry.
	predicates prometheus.Gauge
}

// New creates a Collector registered with reg. Passing nil registers with
// the default Prometheus registerer. The namespace prefixes every metric
// name ("lexengine" gives lexengine_evaluations_total and friends).
func New(namespace string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total predicate evaluations by top-level predicate and result",
		}, []string{"predicate", "result"}),

		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluation_failures_total",
			Help:      "Total predicate evaluations that failed with an error",
		}, []string{"predicate"}),

		latency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of full predicate evaluations including trace construction",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),

		predicates: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_predicates",
			Help:      "Number of predicates in the active registry",
		}),
	}
}

// ObserveEvaluation records one completed evaluation.
func (c *Collector) ObserveEvaluation(predicate string, result bool, d time.Duration) {
	if c != nil {
		c.evaluations.WithLabelValues(predicate, strconv.FormatBool(result)).Inc()
		c.latency.Observe(d.Seconds())
	}
}

// ObserveFailure records one evaluation that ended in an error.
func (c *Collector) ObserveFailure(predicate string) {
	if c != nil {
		c.failures.WithLabelValues(predicate).Inc()
	}
}

// SetPredicateCount records the size of the active registry.
func (c *Collector) SetPredicateCount(n int) {
	if c != nil {
		c.predicates.Set(float64(n))
	}
}
