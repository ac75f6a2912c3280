// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package transform

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/showgrid/internal/models"
)

func TestCleanFacts(t *testing.T) {
	want15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   []models.EpisodeFact
		want []models.EpisodeFact
	}{
		{
			name: "drops rows missing keys",
			in: []models.EpisodeFact{
				{EpisodeID: nil, ShowID: i64(1)},
				{EpisodeID: i64(1), ShowID: nil},
				{EpisodeID: i64(2), ShowID: i64(1)},
			},
			want: []models.EpisodeFact{
				{EpisodeID: i64(2), ShowID: i64(1)},
			},
		},
		{
			name: "parses air date",
			in: []models.EpisodeFact{
				{EpisodeID: i64(1), ShowID: i64(1), AirDateRaw: strp("2024-01-15")},
			},
			want: []models.EpisodeFact{
				{EpisodeID: i64(1), ShowID: i64(1), AirDateRaw: strp("2024-01-15"), AirDate: &want15},
			},
		},
		{
			name: "unparsable air date becomes nil",
			in: []models.EpisodeFact{
				{EpisodeID: i64(1), ShowID: i64(1), AirDateRaw: strp("not-a-date")},
			},
			want: []models.EpisodeFact{
				{EpisodeID: i64(1), ShowID: i64(1), AirDateRaw: strp("not-a-date")},
			},
		},
		{
			name: "deduplicates identical rows",
			in: []models.EpisodeFact{
				{EpisodeID: i64(1), ShowID: i64(1)},
				{EpisodeID: i64(1), ShowID: i64(1)},
			},
			want: []models.EpisodeFact{
				{EpisodeID: i64(1), ShowID: i64(1)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanFacts(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CleanFacts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCleanShowsLastSeenWins(t *testing.T) {
	in := []models.Show{
		{ShowID: i64(1), Name: strp("Old Name"), AvgRuntime: f64(40)},
		{ShowID: i64(2), Name: strp("Other"), AvgRuntime: f64(25)},
		{ShowID: i64(1), Name: strp("New Name"), AvgRuntime: f64(45)},
	}

	got := CleanShows(in)
	if len(got) != 2 {
		t.Fatalf("CleanShows() kept %d rows, want 2", len(got))
	}
	// Show 1 keeps its first-seen position but carries the last snapshot.
	if *got[0].ShowID != 1 || *got[0].Name != "New Name" {
		t.Errorf("got[0] = (%d, %q), want (1, New Name)", *got[0].ShowID, *got[0].Name)
	}
	if *got[1].ShowID != 2 {
		t.Errorf("got[1].ShowID = %d, want 2", *got[1].ShowID)
	}
}

func TestCleanShowsDefaultsRuntime(t *testing.T) {
	got := CleanShows([]models.Show{{ShowID: i64(1), AvgRuntime: nil}})
	if len(got) != 1 {
		t.Fatalf("CleanShows() kept %d rows, want 1", len(got))
	}
	if got[0].AvgRuntime == nil || *got[0].AvgRuntime != 0 {
		t.Errorf("AvgRuntime = %v, want 0", got[0].AvgRuntime)
	}
}

func TestCleanShowsDropsNilKey(t *testing.T) {
	got := CleanShows([]models.Show{{ShowID: nil, Name: strp("orphan")}})
	if len(got) != 0 {
		t.Errorf("CleanShows() kept %d rows, want 0", len(got))
	}
}

func TestCleanGenres(t *testing.T) {
	in := []models.Genre{
		{GenreID: 1, Name: " Drama "},
		{GenreID: 1, Name: "Drama"},
		{GenreID: 2, Name: "Comedy"},
	}
	want := []models.Genre{
		{GenreID: 1, Name: "Drama"},
		{GenreID: 2, Name: "Comedy"},
	}

	got := CleanGenres(in)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanGenres() = %+v, want %+v", got, want)
	}
}

func TestCleanShowGenres(t *testing.T) {
	in := []models.ShowGenre{
		{ShowID: i64(1), GenreID: i64(1)},
		{ShowID: i64(1), GenreID: i64(1)},
		{ShowID: nil, GenreID: i64(1)},
		{ShowID: i64(1), GenreID: nil},
		{ShowID: i64(2), GenreID: i64(1)},
	}

	got := CleanShowGenres(in)
	if len(got) != 2 {
		t.Fatalf("CleanShowGenres() kept %d rows, want 2", len(got))
	}
}

func TestCleanAllIsIdempotent(t *testing.T) {
	records := []models.FlatEpisodeRecord{
		record(101, 1, "Show A", "Drama", "Comedy"),
		record(101, 1, "Show A", "Drama", "Comedy"),
		record(201, 2, "Show B", "Drama"),
		{EpisodeID: i64(301), ShowGenres: []string{"Horror"}},
	}
	records[0].EpisodeAirDate = strp("2024-01-15")
	records[2].EpisodeAirDate = strp("bogus")

	once := CleanAll(Split(records))
	twice := CleanAll(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("CleanAll is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestCleanAllKeyIntegrity(t *testing.T) {
	// Every show_id referenced from the fact table or the bridge must
	// exist in the show dimension, and every genre_id in the bridge must
	// exist in the genre dimension.
	records := []models.FlatEpisodeRecord{
		record(101, 1, "Show A", "Drama", "Comedy"),
		record(102, 1, "Show A", "Drama", "Comedy"),
		record(201, 2, "Show B", "Drama"),
		{EpisodeID: i64(301)},
	}

	tables := CleanAll(Split(records))

	showIDs := make(map[int64]struct{})
	for _, s := range tables.Shows {
		showIDs[*s.ShowID] = struct{}{}
	}
	genreIDs := make(map[int64]struct{})
	for _, g := range tables.Genres {
		genreIDs[g.GenreID] = struct{}{}
	}

	for i, f := range tables.Facts {
		if _, ok := showIDs[*f.ShowID]; !ok {
			t.Errorf("Facts[%d] references show %d absent from dimension", i, *f.ShowID)
		}
	}
	for i, sg := range tables.ShowGenres {
		if _, ok := showIDs[*sg.ShowID]; !ok {
			t.Errorf("ShowGenres[%d] references show %d absent from dimension", i, *sg.ShowID)
		}
		if _, ok := genreIDs[*sg.GenreID]; !ok {
			t.Errorf("ShowGenres[%d] references genre %d absent from dimension", i, *sg.GenreID)
		}
	}
}

func TestCleanAllLeavesNoNilKeys(t *testing.T) {
	records := []models.FlatEpisodeRecord{
		{EpisodeID: i64(1)},
		{ShowID: i64(2), ShowGenres: []string{"Drama"}},
		record(10, 3, "Kept Show", "Comedy"),
	}

	tables := CleanAll(Split(records))

	for i, f := range tables.Facts {
		if f.EpisodeID == nil || f.ShowID == nil {
			t.Errorf("Facts[%d] has nil key: %+v", i, f)
		}
	}
	for i, s := range tables.Shows {
		if s.ShowID == nil {
			t.Errorf("Shows[%d] has nil key: %+v", i, s)
		}
	}
	for i, sg := range tables.ShowGenres {
		if sg.ShowID == nil || sg.GenreID == nil {
			t.Errorf("ShowGenres[%d] has nil key: %+v", i, sg)
		}
	}
}
