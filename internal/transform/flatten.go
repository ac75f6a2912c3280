// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

// Package transform turns raw TVMaze schedule entries into the cleaned
// star-schema tables: one fact table of episodes, show and genre
// dimensions, and a show-genre bridge.
//
// The three stages are pure functions over in-memory slices:
//
//	Flatten: nested entry -> flat record (total, nil-safe)
//	Split:   flat records -> four tables with surrogate genre keys
//	Clean*:  per-table key, dedup and type normalization rules
//
// Stage boundaries match what gets persisted: the flat record set is an
// intermediate only, the cleaned tables are what the warehouse loads.
package transform

import (
	"github.com/tomtom215/showgrid/internal/models"
)

// Flatten projects one raw schedule entry into a flat episode record.
//
// It is total: a missing nested path (no _embedded, no show, absent field)
// yields a nil field, never a panic. Exactly one record is produced per
// entry. Genres are copied preserving upstream order.
func Flatten(entry models.RawScheduleEntry) models.FlatEpisodeRecord {
	rec := models.FlatEpisodeRecord{
		EpisodeID:      entry.ID,
		EpisodeRuntime: entry.Runtime,
		EpisodeNumber:  entry.Number,
		EpisodeSeason:  entry.Season,
		EpisodeAirDate: entry.AirDate,
	}

	if entry.Embedds == nil || entry.Embedds.Show == nil {
		return rec
	}

	show := entry.Embedds.Show
	rec.ShowID = show.ID
	rec.ShowName = show.Name
	rec.ShowAvgRuntime = show.AverageRuntime
	rec.ShowOfficialSite = show.OfficialSite
	if len(show.Genres) > 0 {
		rec.ShowGenres = append([]string(nil), show.Genres...)
	}

	return rec
}

// FlattenAll flattens a batch of entries, one record per entry.
func FlattenAll(entries []models.RawScheduleEntry) []models.FlatEpisodeRecord {
	records := make([]models.FlatEpisodeRecord, len(entries))
	for i, entry := range entries {
		records[i] = Flatten(entry)
	}
	return records
}
