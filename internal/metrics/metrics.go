package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slashkit_command_invocations_total",
		Help: "Total number of dispatched command invocations",
	}, []string{"command", "outcome"})

	CommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slashkit_command_duration_seconds",
		Help:    "Duration of command pipeline runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"command"})

	AutocompleteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slashkit_autocomplete_requests_total",
		Help: "Total number of answered autocomplete interactions",
	}, []string{"command", "option", "status"})

	StorageQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slashkit_storage_queries_total",
		Help: "Total number of storage queries",
	}, []string{"query", "status"})
)
