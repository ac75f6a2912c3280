// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package report

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/showgrid/internal/logging"
	"github.com/tomtom215/showgrid/internal/models"
)

// fakeProfiler serves canned profiles per table.
type fakeProfiler struct {
	profiles map[string]*models.TableProfile
	err      error
}

func (f *fakeProfiler) ProfileTable(_ context.Context, table string) (*models.TableProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[table]
	if !ok {
		return nil, errors.New("unknown table")
	}
	return p, nil
}

func TestWriteTableProfile(t *testing.T) {
	dir := t.TempDir()
	profiler := &fakeProfiler{
		profiles: map[string]*models.TableProfile{
			"dim_shows": {
				Table:       "dim_shows",
				RowCount:    42,
				GeneratedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
				Columns: []models.ColumnProfile{
					{Name: "show_id", NullCount: 0, NullPercent: 0, DistinctCount: 42},
					{Name: "show_official_site", NullCount: 7, NullPercent: 16.7, DistinctCount: 30},
				},
			},
		},
	}

	g := NewGenerator(profiler, dir, logging.NewTestLogger(io.Discard))
	if err := g.WriteTableProfile(context.Background(), "dim_shows"); err != nil {
		t.Fatalf("WriteTableProfile() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dim_shows.html"))
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	html := string(data)

	for _, want := range []string{"dim_shows", "42 rows", "show_official_site", "16.7%"} {
		if !strings.Contains(html, want) {
			t.Errorf("report does not contain %q", want)
		}
	}
}

func TestWriteTableProfileCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	profiler := &fakeProfiler{
		profiles: map[string]*models.TableProfile{
			"dim_genres": {Table: "dim_genres", GeneratedAt: time.Now()},
		},
	}

	g := NewGenerator(profiler, dir, logging.NewTestLogger(io.Discard))
	if err := g.WriteTableProfile(context.Background(), "dim_genres"); err != nil {
		t.Fatalf("WriteTableProfile() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dim_genres.html")); err != nil {
		t.Errorf("report not created in nested directory: %v", err)
	}
}

func TestWriteTableProfilePropagatesProfileError(t *testing.T) {
	profiler := &fakeProfiler{err: errors.New("database closed")}
	g := NewGenerator(profiler, t.TempDir(), logging.NewTestLogger(io.Discard))

	if err := g.WriteTableProfile(context.Background(), "dim_shows"); err == nil {
		t.Fatal("WriteTableProfile() error = nil, want profiling failure")
	}
}

func TestWriteTableProfileEscapesContent(t *testing.T) {
	dir := t.TempDir()
	profiler := &fakeProfiler{
		profiles: map[string]*models.TableProfile{
			"dim_shows": {
				Table:       "dim_shows",
				GeneratedAt: time.Now(),
				Columns: []models.ColumnProfile{
					{Name: "<script>alert(1)</script>"},
				},
			},
		},
	}

	g := NewGenerator(profiler, dir, logging.NewTestLogger(io.Discard))
	if err := g.WriteTableProfile(context.Background(), "dim_shows"); err != nil {
		t.Fatalf("WriteTableProfile() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dim_shows.html"))
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	if strings.Contains(string(data), "<script>") {
		t.Error("column name was not HTML-escaped")
	}
}
