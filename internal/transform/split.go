// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package transform

import (
	"fmt"
	"strings"

	"github.com/tomtom215/showgrid/internal/models"
)

// Tables bundles the four star-schema tables produced by Split.
type Tables struct {
	Facts      []models.EpisodeFact
	Shows      []models.Show
	Genres     []models.Genre
	ShowGenres []models.ShowGenre
}

// Split decomposes the flattened record set into the fact and dimension
// tables.
//
// Fact and show rows are deduplicated by full-row equality; key-wise
// conflict resolution for the show dimension is the cleaner's job. Genre
// surrogate keys are assigned 1-based in order of first appearance across
// the expanded (show, genre) rows, so the assignment is deterministic for
// a given input order. Reordering input that changes which row first
// mentions a genre changes its key.
func Split(records []models.FlatEpisodeRecord) Tables {
	t := Tables{
		Facts: splitFacts(records),
		Shows: splitShows(records),
	}

	expanded := expandGenres(records)
	t.Genres = collectGenres(expanded)
	t.ShowGenres = bridgeShowGenres(expanded, t.Genres)

	return t
}

// splitFacts projects the six fact columns and removes identical rows.
func splitFacts(records []models.FlatEpisodeRecord) []models.EpisodeFact {
	seen := make(map[string]struct{}, len(records))
	facts := make([]models.EpisodeFact, 0, len(records))

	for _, rec := range records {
		fact := models.EpisodeFact{
			EpisodeID:  rec.EpisodeID,
			Runtime:    rec.EpisodeRuntime,
			Number:     rec.EpisodeNumber,
			Season:     rec.EpisodeSeason,
			AirDateRaw: rec.EpisodeAirDate,
			ShowID:     rec.ShowID,
		}
		key := factRowKey(fact)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		facts = append(facts, fact)
	}

	return facts
}

// splitShows projects the four show columns and removes identical rows.
func splitShows(records []models.FlatEpisodeRecord) []models.Show {
	seen := make(map[string]struct{}, len(records))
	shows := make([]models.Show, 0, len(records))

	for _, rec := range records {
		show := models.Show{
			ShowID:       rec.ShowID,
			Name:         rec.ShowName,
			AvgRuntime:   rec.ShowAvgRuntime,
			OfficialSite: rec.ShowOfficialSite,
		}
		key := showRowKey(show)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		shows = append(shows, show)
	}

	return shows
}

// showGenrePair is one expanded (show, genre name) row.
type showGenrePair struct {
	showID int64
	genre  string
}

// expandGenres produces one row per (show, single genre) pair, in input
// order. Rows with no show key, an empty genre list or a blank genre name
// yield nothing: a JSON null inside a genres array decodes to "" and is
// treated as absent.
func expandGenres(records []models.FlatEpisodeRecord) []showGenrePair {
	var pairs []showGenrePair
	for _, rec := range records {
		if rec.ShowID == nil {
			continue
		}
		for _, genre := range rec.ShowGenres {
			if genre == "" {
				continue
			}
			pairs = append(pairs, showGenrePair{showID: *rec.ShowID, genre: genre})
		}
	}
	return pairs
}

// collectGenres assigns surrogate keys to the distinct genre names in
// first-seen order, starting at 1.
func collectGenres(pairs []showGenrePair) []models.Genre {
	index := make(map[string]struct{}, len(pairs))
	var genres []models.Genre

	for _, pair := range pairs {
		if _, ok := index[pair.genre]; ok {
			continue
		}
		index[pair.genre] = struct{}{}
		genres = append(genres, models.Genre{
			GenreID: int64(len(genres) + 1),
			Name:    pair.genre,
		})
	}

	return genres
}

// bridgeShowGenres joins the expanded pairs against the genre dimension on
// genre name and deduplicates identical (show_id, genre_id) pairs.
func bridgeShowGenres(pairs []showGenrePair, genres []models.Genre) []models.ShowGenre {
	idsByName := make(map[string]int64, len(genres))
	for _, genre := range genres {
		idsByName[genre.Name] = genre.GenreID
	}

	type bridgeKey struct {
		showID  int64
		genreID int64
	}
	seen := make(map[bridgeKey]struct{}, len(pairs))
	var bridge []models.ShowGenre

	for _, pair := range pairs {
		genreID, ok := idsByName[pair.genre]
		if !ok {
			continue
		}
		key := bridgeKey{showID: pair.showID, genreID: genreID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		showID := pair.showID
		gID := genreID
		bridge = append(bridge, models.ShowGenre{ShowID: &showID, GenreID: &gID})
	}

	return bridge
}

// factRowKey builds a full-row equality key for an episode fact.
func factRowKey(f models.EpisodeFact) string {
	return strings.Join([]string{
		ptrKey(f.EpisodeID),
		ptrKey(f.Runtime),
		ptrKey(f.Number),
		ptrKey(f.Season),
		ptrKey(f.AirDateRaw),
		ptrKey(f.ShowID),
	}, "|")
}

// showRowKey builds a full-row equality key for a show dimension row.
func showRowKey(s models.Show) string {
	return strings.Join([]string{
		ptrKey(s.ShowID),
		ptrKey(s.Name),
		ptrKey(s.AvgRuntime),
		ptrKey(s.OfficialSite),
	}, "|")
}

// ptrKey formats a pointer field for row-equality keys, distinguishing nil
// from zero values.
func ptrKey[T any](p *T) string {
	if p == nil {
		return "\x00nil"
	}
	return fmt.Sprintf("%v", *p)
}
