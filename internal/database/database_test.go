// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package database

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/showgrid/internal/config"
	"github.com/tomtom215/showgrid/internal/models"
	"github.com/tomtom215/showgrid/internal/transform"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }
func strp(v string) *string  { return &v }

// newTestDB opens an in-memory DuckDB instance with the schema applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(&config.DatabaseConfig{
		Path:                   ":memory:",
		MaxMemory:              "512MB",
		Threads:                2,
		PreserveInsertionOrder: true,
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

// sampleTables builds a small consistent warehouse: two shows, two genres,
// three episodes.
func sampleTables() transform.Tables {
	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return transform.Tables{
		Facts: []models.EpisodeFact{
			{EpisodeID: i64(101), Runtime: f64(30), Number: i64(1), Season: i64(1), AirDate: &jan15, ShowID: i64(1)},
			{EpisodeID: i64(102), Runtime: f64(30), Number: i64(2), Season: i64(1), ShowID: i64(1)},
			{EpisodeID: i64(201), Runtime: f64(55), Number: i64(1), Season: i64(2), ShowID: i64(2)},
		},
		Shows: []models.Show{
			{ShowID: i64(1), Name: strp("Night Shift"), AvgRuntime: f64(30), OfficialSite: strp("http://example.com/show")},
			{ShowID: i64(2), Name: strp("Deep Water"), AvgRuntime: f64(55), OfficialSite: strp("https://deepwater.tv")},
		},
		Genres: []models.Genre{
			{GenreID: 1, Name: "Drama"},
			{GenreID: 2, Name: "Comedy"},
		},
		ShowGenres: []models.ShowGenre{
			{ShowID: i64(1), GenreID: i64(1)},
			{ShowID: i64(1), GenreID: i64(2)},
			{ShowID: i64(2), GenreID: i64(1)},
		},
	}
}

func countRows(t *testing.T, db *DB, table string) int {
	t.Helper()
	var n int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

func TestReplaceTables(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	counts, err := db.ReplaceTables(ctx, sampleTables())
	if err != nil {
		t.Fatalf("ReplaceTables() error = %v", err)
	}

	want := map[string]int{
		"fact_episodes": 3,
		"dim_shows":     2,
		"dim_genres":    2,
		"show_genres":   3,
	}
	for table, rows := range want {
		if counts[table] != rows {
			t.Errorf("reported %s rows = %d, want %d", table, counts[table], rows)
		}
		if got := countRows(t, db, table); got != rows {
			t.Errorf("stored %s rows = %d, want %d", table, got, rows)
		}
	}
}

func TestReplaceTablesReplacesPriorRun(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.ReplaceTables(ctx, sampleTables()); err != nil {
		t.Fatalf("first ReplaceTables() error = %v", err)
	}

	smaller := transform.Tables{
		Facts:  []models.EpisodeFact{{EpisodeID: i64(999), ShowID: i64(9)}},
		Shows:  []models.Show{{ShowID: i64(9), Name: strp("Only Show"), AvgRuntime: f64(0)}},
		Genres: []models.Genre{{GenreID: 1, Name: "Horror"}},
	}
	if _, err := db.ReplaceTables(ctx, smaller); err != nil {
		t.Fatalf("second ReplaceTables() error = %v", err)
	}

	if got := countRows(t, db, "fact_episodes"); got != 1 {
		t.Errorf("fact_episodes rows = %d, want 1 after replacement", got)
	}
	if got := countRows(t, db, "show_genres"); got != 0 {
		t.Errorf("show_genres rows = %d, want 0 after replacement", got)
	}
}

func TestReplaceTablesPreservesNulls(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.ReplaceTables(ctx, sampleTables()); err != nil {
		t.Fatalf("ReplaceTables() error = %v", err)
	}

	var nullDates int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM fact_episodes WHERE episode_air_date IS NULL").Scan(&nullDates); err != nil {
		t.Fatalf("failed to count null air dates: %v", err)
	}
	if nullDates != 2 {
		t.Errorf("null air dates = %d, want 2", nullDates)
	}
}

func TestAverageRuntimePerShow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.ReplaceTables(ctx, sampleTables()); err != nil {
		t.Fatalf("ReplaceTables() error = %v", err)
	}

	rows, err := db.AverageRuntimePerShow(ctx)
	if err != nil {
		t.Fatalf("AverageRuntimePerShow() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ShowID != 1 || rows[0].AverageRuntime != 30 {
		t.Errorf("rows[0] = %+v, want show 1 with runtime 30", rows[0])
	}
	if rows[1].ShowID != 2 || *rows[1].ShowName != "Deep Water" {
		t.Errorf("rows[1] = %+v, want show 2 Deep Water", rows[1])
	}
}

func TestShowCountByGenre(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.ReplaceTables(ctx, sampleTables()); err != nil {
		t.Fatalf("ReplaceTables() error = %v", err)
	}

	rows, err := db.ShowCountByGenre(ctx)
	if err != nil {
		t.Fatalf("ShowCountByGenre() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Drama covers both shows, Comedy only one; descending by count.
	if rows[0].GenreName != "Drama" || rows[0].TotalShows != 2 {
		t.Errorf("rows[0] = %+v, want Drama with 2 shows", rows[0])
	}
	if rows[1].GenreName != "Comedy" || rows[1].TotalShows != 1 {
		t.Errorf("rows[1] = %+v, want Comedy with 1 show", rows[1])
	}
}

func TestDistinctShowDomains(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tables := transform.Tables{
		Shows: []models.Show{
			{ShowID: i64(1), Name: strp("A"), AvgRuntime: f64(0), OfficialSite: strp("http://example.com/show")},
			{ShowID: i64(2), Name: strp("B"), AvgRuntime: f64(0), OfficialSite: strp("https://example.com/other/path")},
			{ShowID: i64(3), Name: strp("C"), AvgRuntime: f64(0), OfficialSite: strp("https://deepwater.tv")},
			{ShowID: i64(4), Name: strp("D"), AvgRuntime: f64(0), OfficialSite: nil},
		},
	}
	if _, err := db.ReplaceTables(ctx, tables); err != nil {
		t.Fatalf("ReplaceTables() error = %v", err)
	}

	domains, err := db.DistinctShowDomains(ctx)
	if err != nil {
		t.Fatalf("DistinctShowDomains() error = %v", err)
	}

	// example.com appears twice but is reported once; the site without a
	// path keeps its full host; the nil site contributes nothing.
	want := []string{"deepwater.tv", "example.com"}
	if len(domains) != len(want) {
		t.Fatalf("domains = %v, want %v", domains, want)
	}
	for i := range want {
		if domains[i] != want[i] {
			t.Errorf("domains[%d] = %q, want %q", i, domains[i], want[i])
		}
	}
}

func TestAnalyticsOnEmptyWarehouse(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rows, err := db.AverageRuntimePerShow(ctx)
	if err != nil {
		t.Fatalf("AverageRuntimePerShow() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows from empty warehouse, want 0", len(rows))
	}

	domains, err := db.DistinctShowDomains(ctx)
	if err != nil {
		t.Fatalf("DistinctShowDomains() error = %v", err)
	}
	if len(domains) != 0 {
		t.Errorf("got %d domains from empty warehouse, want 0", len(domains))
	}
}
