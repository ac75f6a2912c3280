// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package models

import "time"

// EpisodeFact is one row of the fact_episodes table. The splitter fills
// AirDateRaw with the upstream ISO string; the fact cleaner owns date
// parsing and fills AirDate, coercing unparsable values to nil. After
// cleaning, EpisodeID and ShowID are guaranteed non-nil.
type EpisodeFact struct {
	EpisodeID  *int64     `json:"episode_id"`
	Runtime    *float64   `json:"episode_runtime"`
	Number     *int64     `json:"episode_number"`
	Season     *int64     `json:"episode_season"`
	AirDateRaw *string    `json:"-"`
	AirDate    *time.Time `json:"episode_air_date"`
	ShowID     *int64     `json:"show_id"`
}

// Show is one row of the dim_shows dimension table. After cleaning, ShowID
// is non-nil and unique and AvgRuntime defaults to 0 when upstream omitted it.
type Show struct {
	ShowID       *int64   `json:"show_id"`
	Name         *string  `json:"show_name"`
	AvgRuntime   *float64 `json:"show_avg_runtime"`
	OfficialSite *string  `json:"show_official_site"`
}

// Genre is one row of the dim_genres dimension table. GenreID is a
// synthetic surrogate key assigned 1-based in first-seen order.
type Genre struct {
	GenreID int64  `json:"genre_id"`
	Name    string `json:"genre_name"`
}

// ShowGenre is one row of the show_genres bridge table expressing the
// many-to-many relationship between shows and genres.
type ShowGenre struct {
	ShowID  *int64 `json:"show_id"`
	GenreID *int64 `json:"genre_id"`
}

// ShowRuntime is one row of the average-runtime-per-show analytic query.
type ShowRuntime struct {
	ShowID         int64   `json:"show_id"`
	ShowName       *string `json:"show_name"`
	AverageRuntime float64 `json:"average_runtime"`
}

// GenreShowCount is one row of the show-count-by-genre analytic query.
type GenreShowCount struct {
	GenreName  string `json:"genre_name"`
	TotalShows int64  `json:"total_shows"`
}

// RunResult summarizes one pipeline run for the trigger response and logs.
//
// Status is "success" when every stage and sink completed, or "partial"
// when one or more sinks failed but the warehouse tables were produced.
// Sink failures never abort sibling sinks; they are collected here so the
// caller can see exactly what degraded instead of a blanket success.
type RunResult struct {
	RunID         string            `json:"run_id"`
	Status        string            `json:"status"`
	StartDate     string            `json:"start_date"`
	EndDate       string            `json:"end_date"`
	DaysAttempted int               `json:"days_attempted"`
	DaysFailed    int               `json:"days_failed"`
	RawEntries    int               `json:"raw_entries"`
	TableRows     map[string]int    `json:"table_rows"`
	SinkErrors    map[string]string `json:"sink_errors,omitempty"`
	DurationMS    int64             `json:"duration_ms"`
}
