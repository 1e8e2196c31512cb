// Package metrics defines and registers all custom Prometheus metrics for
// the task management API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskhub"

// UsersRegisteredTotal counts successful account registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// TasksCreatedTotal counts created tasks.
// Label:
//   - source: "api" for direct creation, "bulk" for CSV ingestion
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by source.",
	},
	[]string{"source"},
)

// BulkRowsTotal counts per-row outcomes of CSV ingestion.
// Label:
//   - result: "accepted" (persisted) or "rejected" (failed validation)
var BulkRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bulk_rows_total",
		Help:      "Total number of bulk upload rows processed, by result.",
	},
	[]string{"result"},
)

// BulkUploadDuration measures how long one bulk upload takes end-to-end,
// from admission to report.
var BulkUploadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "bulk_upload_duration_seconds",
		Help:      "Duration of bulk upload processing.",
		Buckets:   prometheus.DefBuckets,
	},
)
