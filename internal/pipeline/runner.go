// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

// Package pipeline drives one full ETL run: fetch the schedule for a date
// range, dump the raw feed, transform it into the star schema and push the
// result through every configured sink.
//
// Stage failures (fetch validation, warehouse load) abort the run. Sink
// failures (raw dump, parquet export, profile reports) do not: each sink is
// attempted regardless of its siblings, failures are logged and collected
// into the run result, and the run finishes with status "partial".
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/showgrid/internal/config"
	"github.com/tomtom215/showgrid/internal/database"
	"github.com/tomtom215/showgrid/internal/extract"
	"github.com/tomtom215/showgrid/internal/metrics"
	"github.com/tomtom215/showgrid/internal/models"
	"github.com/tomtom215/showgrid/internal/report"
	"github.com/tomtom215/showgrid/internal/transform"
)

// Run statuses reported in RunResult.Status.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
)

// Sink names used as RunResult.SinkErrors keys and metric labels.
const (
	sinkRawJSON   = "raw_json"
	sinkWarehouse = "warehouse"
	sinkParquet   = "parquet"
	sinkReport    = "report"
)

// Runner executes pipeline runs against a fixed set of collaborators.
type Runner struct {
	fetcher *extract.Fetcher
	db      *database.DB
	reports *report.Generator
	output  config.OutputConfig
	logger  zerolog.Logger
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(fetcher *extract.Fetcher, db *database.DB, reports *report.Generator, output config.OutputConfig, logger zerolog.Logger) *Runner {
	return &Runner{
		fetcher: fetcher,
		db:      db,
		reports: reports,
		output:  output,
		logger:  logger.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes one ETL run over the inclusive date range. It returns a nil
// result and an error when the run aborts (invalid input, fetch context
// cancellation, warehouse load failure); otherwise the result carries the
// run outcome including any sink degradation.
func (r *Runner) Run(ctx context.Context, startDate, endDate string) (*models.RunResult, error) {
	runID := uuid.NewString()
	logger := r.logger.With().Str("run_id", runID).Logger()
	started := time.Now()

	logger.Info().Str("start_date", startDate).Str("end_date", endDate).Msg("Pipeline run started")

	result := &models.RunResult{
		RunID:      runID,
		Status:     StatusSuccess,
		StartDate:  startDate,
		EndDate:    endDate,
		SinkErrors: make(map[string]string),
	}

	finish := func(err error) (*models.RunResult, error) {
		duration := time.Since(started)
		result.DurationMS = duration.Milliseconds()
		if err != nil {
			metrics.RecordPipelineRun("error", duration)
			logger.Error().Err(err).Dur("duration", duration).Msg("Pipeline run aborted")
			return nil, err
		}
		if len(result.SinkErrors) > 0 {
			result.Status = StatusPartial
		} else {
			result.SinkErrors = nil
		}
		metrics.RecordPipelineRun(result.Status, duration)
		logger.Info().
			Str("status", result.Status).
			Int("raw_entries", result.RawEntries).
			Int("days_failed", result.DaysFailed).
			Dur("duration", duration).
			Msg("Pipeline run finished")
		return result, nil
	}

	raw, stats, err := r.fetcher.FetchRange(ctx, startDate, endDate)
	if err != nil {
		return finish(err)
	}
	result.DaysAttempted = stats.DaysAttempted
	result.DaysFailed = stats.DaysFailed
	result.RawEntries = len(raw)

	r.dumpRawJSON(raw, result, logger)

	tables := transform.CleanAll(transform.Split(transform.FlattenAll(raw)))

	counts, err := r.db.ReplaceTables(ctx, tables)
	if err != nil {
		metrics.RecordSinkError(sinkWarehouse)
		return finish(fmt.Errorf("warehouse load failed: %w", err))
	}
	result.TableRows = counts

	if err := r.db.ExportParquet(ctx, r.output.ParquetDir, r.output.ParquetCompression, logger); err != nil {
		metrics.RecordSinkError(sinkParquet)
		result.SinkErrors[sinkParquet] = err.Error()
	}

	r.writeReports(ctx, result, logger)

	return finish(nil)
}

// dumpRawJSON writes the unmodified fetched entries as pretty-printed JSON
// under the configured dump directory, one file per run.
func (r *Runner) dumpRawJSON(raw []models.RawScheduleEntry, result *models.RunResult, logger zerolog.Logger) {
	fail := func(err error) {
		metrics.RecordSinkError(sinkRawJSON)
		result.SinkErrors[sinkRawJSON] = err.Error()
		logger.Error().Err(err).Msg("Raw JSON dump failed")
	}

	if err := os.MkdirAll(r.output.JSONDir, 0o750); err != nil {
		fail(fmt.Errorf("failed to create dump directory %s: %w", r.output.JSONDir, err))
		return
	}

	if raw == nil {
		// An empty run dumps an empty array, not JSON null.
		raw = []models.RawScheduleEntry{}
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		fail(fmt.Errorf("failed to marshal raw entries: %w", err))
		return
	}

	name := fmt.Sprintf("schedule_%s_%s.json", result.StartDate, result.EndDate)
	path := filepath.Join(r.output.JSONDir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		fail(fmt.Errorf("failed to write %s: %w", path, err))
		return
	}

	logger.Info().Str("path", path).Int("entries", len(raw)).Msg("Raw JSON dump written")
}

// writeReports renders one profile per warehouse table. Failures are
// collected under one sink key; remaining tables are still attempted.
func (r *Runner) writeReports(ctx context.Context, result *models.RunResult, logger zerolog.Logger) {
	for _, table := range database.TableNames {
		if err := r.reports.WriteTableProfile(ctx, table); err != nil {
			metrics.RecordSinkError(sinkReport)
			if prev, ok := result.SinkErrors[sinkReport]; ok {
				result.SinkErrors[sinkReport] = prev + "; " + err.Error()
			} else {
				result.SinkErrors[sinkReport] = err.Error()
			}
			logger.Error().Err(err).Str("table", table).Msg("Table profile failed")
		}
	}
}
