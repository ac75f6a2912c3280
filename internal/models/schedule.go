// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package models

// RawScheduleEntry is one episode record as returned by the TVMaze web
// schedule endpoint for a single day. The payload is nested: episode fields
// at the top level with the owning show under _embedded.show.
//
// The struct is transit-only: it exists between the fetcher and the
// flattener and is never persisted beyond the raw JSON dump. Nullable
// upstream fields are pointers so that absent values survive the trip
// into the flat record as nil rather than zero values.
type RawScheduleEntry struct {
	ID      *int64         `json:"id"`
	Runtime *float64       `json:"runtime"`
	Number  *int64         `json:"number"`
	Season  *int64         `json:"season"`
	AirDate *string        `json:"airdate"`
	Embedds *EmbeddedShows `json:"_embedded"`
}

// EmbeddedShows is the _embedded wrapper around the show object.
type EmbeddedShows struct {
	Show *EmbeddedShow `json:"show"`
}

// EmbeddedShow is the show object nested inside a schedule entry.
type EmbeddedShow struct {
	ID             *int64   `json:"id"`
	Name           *string  `json:"name"`
	AverageRuntime *float64 `json:"averageRuntime"`
	OfficialSite   *string  `json:"officialSite"`
	Genres         []string `json:"genres"`
}

// FlatEpisodeRecord is the projection of one RawScheduleEntry into a flat
// record with a fixed field set. Every field except Genres is nullable;
// flattening never fails on a missing nested path, it yields nil instead.
type FlatEpisodeRecord struct {
	ShowID           *int64   `json:"show_id"`
	ShowName         *string  `json:"show_name"`
	ShowAvgRuntime   *float64 `json:"show_avg_runtime"`
	ShowOfficialSite *string  `json:"show_official_site"`
	ShowGenres       []string `json:"show_genres"`
	EpisodeID        *int64   `json:"episode_id"`
	EpisodeRuntime   *float64 `json:"episode_runtime"`
	EpisodeNumber    *int64   `json:"episode_number"`
	EpisodeSeason    *int64   `json:"episode_season"`
	EpisodeAirDate   *string  `json:"episode_air_date"`
}
