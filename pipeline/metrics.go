package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOk    = "ok"
	outcomeError = "error"
)

var (
	// transformsTotal counts pipe executions by pipe, argument source, and
	// outcome.
	//
	// Metric name: spigot_pipeline_transforms_total
	//
	// Example PromQL:
	//   sum by (pipe) (rate(spigot_pipeline_transforms_total{outcome="error"}[5m]))
	transformsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Namespace: "spigot",
		Subsystem: "pipeline",
		Name:      "transforms_total",
		Help:      "The total number of pipe transforms executed",
	}, []string{"pipe", "source", "outcome"})

	// transformTime tracks transform latency in milliseconds. The buckets
	// span in-memory parses (well under a millisecond) through lookup pipes
	// that reach a backing store.
	//
	// Metric name: spigot_pipeline_transform_time_millis
	transformTime = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Namespace: "spigot",
		Subsystem: "pipeline",
		Name:      "transform_time_millis",
		Help:      "The time it takes to run one pipe transform, in milliseconds",
		Buckets: []float64{
			0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000,
		},
	}, []string{"pipe", "outcome"})
)
