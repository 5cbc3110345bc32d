/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// bulkWrites counts dispatched writes per operation
	bulkWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docstore_bulk_writes_total",
			Help: "Total number of writes dispatched by bulk operations",
		},
		[]string{"op"},
	)

	// bulkFailures counts failed writes per operation and failure kind
	bulkFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docstore_bulk_failures_total",
			Help: "Total number of failed bulk writes",
		},
		[]string{"op", "kind"},
	)

	// bulkDuration tracks how long a whole batch takes
	bulkDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docstore_bulk_duration_seconds",
			Help:    "Duration of bulk batches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)
