package spans

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// spanWithoutTracerCounter counts span attempts made with no tracer in the
// context. A nonzero rate points at call sites that skipped WithTracer.
//
// Metric name: spigot_spans_without_tracer_total
var spanWithoutTracerCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "spigot",
		Subsystem: "spans",
		Name:      "without_tracer_total",
		Help:      "Total number of span executions without a tracer in context",
	},
	[]string{"span_name"},
)
