package pager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docstore_pages_fetched_total",
			Help: "Total number of pages fetched by paged sequences",
		},
	)

	pageFetchErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docstore_page_fetch_errors_total",
			Help: "Total number of page fetches that failed and ended their sequence",
		},
	)

	sequenceCancellations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docstore_sequence_cancellations_total",
			Help: "Total number of paged sequences stopped by context cancellation",
		},
	)
)
