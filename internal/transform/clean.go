// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package transform

import (
	"strings"
	"time"

	"github.com/tomtom215/showgrid/internal/models"
)

// airDateLayout is the upstream air date format.
const airDateLayout = "2006-01-02"

// The four table cleaners are independent and order-agnostic. Each is
// total (never fails; malformed values coerce to nil) and idempotent:
// cleaning a cleaned table is a no-op.

// CleanFacts enforces the fact table invariants: rows missing the episode
// or show key are dropped, the raw air date is parsed to a date (nil when
// absent or unparsable), and identical rows are deduplicated.
func CleanFacts(facts []models.EpisodeFact) []models.EpisodeFact {
	seen := make(map[string]struct{}, len(facts))
	out := make([]models.EpisodeFact, 0, len(facts))

	for _, fact := range facts {
		if fact.EpisodeID == nil || fact.ShowID == nil {
			continue
		}

		if fact.AirDateRaw != nil {
			if parsed, err := time.Parse(airDateLayout, *fact.AirDateRaw); err == nil {
				fact.AirDate = &parsed
			} else {
				fact.AirDate = nil
			}
		}

		key := factRowKey(fact)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, fact)
	}

	return out
}

// CleanShows enforces the show dimension invariants: rows missing the show
// key are dropped, a nil average runtime defaults to 0, and rows are
// deduplicated by show_id with last-seen-wins conflict resolution so a
// stale attribute snapshot earlier in the range cannot produce duplicate
// keys. First-seen order of the surviving keys is preserved.
func CleanShows(shows []models.Show) []models.Show {
	order := make([]int64, 0, len(shows))
	byID := make(map[int64]models.Show, len(shows))

	for _, show := range shows {
		if show.ShowID == nil {
			continue
		}
		if show.AvgRuntime == nil {
			zero := 0.0
			show.AvgRuntime = &zero
		}
		id := *show.ShowID
		if _, ok := byID[id]; !ok {
			order = append(order, id)
		}
		byID[id] = show
	}

	out := make([]models.Show, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

// CleanGenres trims surrounding whitespace from genre names and removes
// identical rows.
func CleanGenres(genres []models.Genre) []models.Genre {
	type genreRow struct {
		id   int64
		name string
	}
	seen := make(map[genreRow]struct{}, len(genres))
	out := make([]models.Genre, 0, len(genres))

	for _, genre := range genres {
		genre.Name = strings.TrimSpace(genre.Name)
		row := genreRow{id: genre.GenreID, name: genre.Name}
		if _, dup := seen[row]; dup {
			continue
		}
		seen[row] = struct{}{}
		out = append(out, genre)
	}

	return out
}

// CleanShowGenres drops bridge rows missing either key and deduplicates
// identical pairs.
func CleanShowGenres(bridge []models.ShowGenre) []models.ShowGenre {
	type pair struct {
		showID  int64
		genreID int64
	}
	seen := make(map[pair]struct{}, len(bridge))
	out := make([]models.ShowGenre, 0, len(bridge))

	for _, row := range bridge {
		if row.ShowID == nil || row.GenreID == nil {
			continue
		}
		key := pair{showID: *row.ShowID, genreID: *row.GenreID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}

	return out
}

// CleanAll applies all four cleaners to a split table set.
func CleanAll(t Tables) Tables {
	return Tables{
		Facts:      CleanFacts(t.Facts),
		Shows:      CleanShows(t.Shows),
		Genres:     CleanGenres(t.Genres),
		ShowGenres: CleanShowGenres(t.ShowGenres),
	}
}
