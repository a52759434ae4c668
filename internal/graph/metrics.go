package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// operationDuration measures every facade operation.
	// Labels: operation
	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "causalcore",
		Subsystem: "graph",
		Name:      "operation_duration_seconds",
		Help:      "Duration of graph operations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"operation"})

	upsertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "causalcore",
		Subsystem: "graph",
		Name:      "upserts_total",
		Help:      "Total facts created or replaced",
	})

	invalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "causalcore",
		Subsystem: "graph",
		Name:      "invalidations_total",
		Help:      "Total invalidation propagations",
	})

	invalidatedSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "causalcore",
		Subsystem: "graph",
		Name:      "invalidated_facts",
		Help:      "Number of facts invalidated per propagation",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	propagationLevels = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "causalcore",
		Subsystem: "graph",
		Name:      "propagation_levels",
		Help:      "Number of BFS levels expanded per propagation",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
	})

	factsKnown = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "causalcore",
		Subsystem: "graph",
		Name:      "facts",
		Help:      "Number of facts held in the store",
	})
)
