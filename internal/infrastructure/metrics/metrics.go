package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion metrics
var (
	// FindingsIngestedTotal tracks ingested findings by store outcome
	FindingsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvefinder_findings_ingested_total",
			Help: "Total number of ingested findings by outcome",
		},
		[]string{"status"},
	)
)

// Remediation metrics
var (
	// ModelInvocationsTotal tracks model calls by backend and result
	ModelInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvefinder_model_invocations_total",
			Help: "Total number of model invocations by backend and result",
		},
		[]string{"model", "result"},
	)

	// ExtractionFailuresTotal tracks completions without an updated manifest
	ExtractionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvefinder_extraction_failures_total",
			Help: "Total number of completions without an applicable manifest patch",
		},
		[]string{"repository"},
	)

	// PullRequestsTotal tracks pull request creation by host and status
	PullRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cvefinder_pull_requests_total",
			Help: "Total number of pull requests by host and status",
		},
		[]string{"host", "status"},
	)

	// RemediationDuration tracks a full remediation run
	RemediationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cvefinder_remediation_duration_seconds",
			Help:    "Remediation run duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"repository"},
	)
)
