// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

// Package metrics provides Prometheus instrumentation for Showgrid:
// pipeline runs, per-day schedule fetches, warehouse loads, sink writes,
// and API endpoint latency. All collectors are registered via promauto at
// package init and exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showgrid_pipeline_runs_total",
			Help: "Total number of pipeline runs by final status",
		},
		[]string{"status"}, // "success", "partial", "error"
	)

	PipelineRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showgrid_pipeline_run_duration_seconds",
			Help:    "End-to-end pipeline run duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	TableRowsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "showgrid_table_rows_loaded",
			Help: "Rows loaded into each warehouse table on the last run",
		},
		[]string{"table"},
	)

	SinkErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showgrid_sink_errors_total",
			Help: "Total number of isolated sink failures by sink name",
		},
		[]string{"sink"}, // "raw_json", "warehouse", "parquet", "report"
	)

	// Fetch metrics
	ScheduleFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showgrid_schedule_fetches_total",
			Help: "Total number of per-day schedule fetches by outcome",
		},
		[]string{"outcome"}, // "success", "error"
	)

	ScheduleFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "showgrid_schedule_fetch_duration_seconds",
			Help:    "Duration of per-day TVMaze schedule fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ScheduleEntriesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "showgrid_schedule_entries_fetched_total",
			Help: "Total number of raw schedule entries fetched",
		},
	)

	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showgrid_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showgrid_duckdb_query_errors_total",
			Help: "Total number of DuckDB operation errors",
		},
		[]string{"operation", "table"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showgrid_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showgrid_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "showgrid_api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)
)

// RecordPipelineRun records a completed pipeline run.
func RecordPipelineRun(status string, duration time.Duration) {
	PipelineRunsTotal.WithLabelValues(status).Inc()
	PipelineRunDuration.Observe(duration.Seconds())
}

// RecordTableRows records the row count loaded into a warehouse table.
func RecordTableRows(table string, rows int) {
	TableRowsLoaded.WithLabelValues(table).Set(float64(rows))
}

// RecordSinkError records an isolated sink failure.
func RecordSinkError(sink string) {
	SinkErrorsTotal.WithLabelValues(sink).Inc()
}

// RecordScheduleFetch records one per-day schedule fetch.
func RecordScheduleFetch(duration time.Duration, entries int, err error) {
	if err != nil {
		ScheduleFetchesTotal.WithLabelValues("error").Inc()
	} else {
		ScheduleFetchesTotal.WithLabelValues("success").Inc()
		ScheduleEntriesFetched.Add(float64(entries))
	}
	ScheduleFetchDuration.Observe(duration.Seconds())
}

// RecordDBQuery records a DuckDB operation with duration and outcome.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
