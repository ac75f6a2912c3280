// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

// Package extract implements the date-range schedule fetcher.
//
// FetchRange walks every calendar day in an inclusive range and issues one
// upstream fetch per day. A failed day is logged and skipped; the range
// continues. Invalid input (unparsable date, inverted range) is a distinct
// error return, never silently folded into an empty result, so callers can
// tell "bad input" from "no data".
package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/showgrid/internal/metrics"
	"github.com/tomtom215/showgrid/internal/models"
	"github.com/tomtom215/showgrid/internal/tvmaze"
)

// dateLayout is the YYYY-MM-DD wire format shared with the TVMaze API.
const dateLayout = "2006-01-02"

// Sentinel errors for input validation failures.
var (
	// ErrInvalidDate indicates a date string that does not parse as
	// YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidRange indicates start_date > end_date.
	ErrInvalidRange = errors.New("start_date must not be after end_date")
)

// Stats reports what a range fetch attempted and how much of it failed.
type Stats struct {
	DaysAttempted int
	DaysFailed    int
}

// Fetcher retrieves raw schedule entries for a date range from the
// upstream schedule API.
type Fetcher struct {
	api    tvmaze.ScheduleAPI
	logger zerolog.Logger
}

// NewFetcher creates a Fetcher. The logger is injected so runs and tests
// can scope and capture output without touching global state.
func NewFetcher(api tvmaze.ScheduleAPI, logger zerolog.Logger) *Fetcher {
	return &Fetcher{api: api, logger: logger}
}

// FetchRange fetches the schedule for every calendar day from startDate to
// endDate inclusive and concatenates the results in day-then-within-day
// order.
//
// Validation failures return a nil slice and a wrapped ErrInvalidDate or
// ErrInvalidRange. A per-day fetch failure is logged, counted in Stats and
// skipped; it never aborts the remaining days, and there are no retries.
// An empty slice with a nil error means the range genuinely had no data.
func (f *Fetcher) FetchRange(ctx context.Context, startDate, endDate string) ([]models.RawScheduleEntry, Stats, error) {
	var stats Stats

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: start_date %q", ErrInvalidDate, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: end_date %q", ErrInvalidDate, endDate)
	}
	if start.After(end) {
		return nil, stats, fmt.Errorf("%w: %s > %s", ErrInvalidRange, startDate, endDate)
	}

	var all []models.RawScheduleEntry

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		date := day.Format(dateLayout)
		stats.DaysAttempted++
		f.logger.Info().Str("date", date).Msg("Fetching schedule for day")

		fetchStart := time.Now()
		entries, err := f.api.FetchDay(ctx, date)
		metrics.RecordScheduleFetch(time.Since(fetchStart), len(entries), err)
		if err != nil {
			// Context cancellation is a caller decision, not a bad day.
			if ctx.Err() != nil {
				return nil, stats, ctx.Err()
			}
			stats.DaysFailed++
			f.logger.Error().Err(err).Str("date", date).Msg("Failed to fetch schedule for day, skipping")
			continue
		}

		all = append(all, entries...)
	}

	return all, stats, nil
}
