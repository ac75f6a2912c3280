// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/showgrid/internal/metrics"
	"github.com/tomtom215/showgrid/internal/models"
)

// AverageRuntimePerShow returns each show with its average episode
// runtime, a direct projection of the show dimension.
func (db *DB) AverageRuntimePerShow(ctx context.Context) ([]models.ShowRuntime, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT
			show_id,
			show_name,
			show_avg_runtime AS average_runtime
		FROM dim_shows
		ORDER BY show_id`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.RecordDBQuery("query", "dim_shows", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query show runtimes: %w", err)
	}
	defer rows.Close()

	var results []models.ShowRuntime
	for rows.Next() {
		var r models.ShowRuntime
		if err := rows.Scan(&r.ShowID, &r.ShowName, &r.AverageRuntime); err != nil {
			return nil, fmt.Errorf("failed to scan show runtime row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ShowCountByGenre returns the number of distinct shows per genre,
// descending by count, from the bridge joined against the genre dimension.
func (db *DB) ShowCountByGenre(ctx context.Context) ([]models.GenreShowCount, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT
			g.genre_name,
			COUNT(DISTINCT s.show_id) AS total_shows
		FROM show_genres s
		JOIN dim_genres g ON s.genre_id = g.genre_id
		GROUP BY g.genre_name
		ORDER BY total_shows DESC, g.genre_name`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.RecordDBQuery("query", "show_genres", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query shows by genre: %w", err)
	}
	defer rows.Close()

	var results []models.GenreShowCount
	for rows.Next() {
		var r models.GenreShowCount
		if err := rows.Scan(&r.GenreName, &r.TotalShows); err != nil {
			return nil, fmt.Errorf("failed to scan genre count row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// DistinctShowDomains returns the distinct host portion of each show's
// official site URL: the substring between "//" and the next "/". URLs
// without a path keep their full host; rows without a site are skipped.
func (db *DB) DistinctShowDomains(ctx context.Context) ([]string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		WITH show_domains AS (
			SELECT split_part(split_part(show_official_site, '//', 2), '/', 1) AS domain
			FROM dim_shows
			WHERE show_official_site IS NOT NULL
		)
		SELECT DISTINCT domain
		FROM show_domains
		WHERE domain IS NOT NULL AND domain <> ''
		ORDER BY domain`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.RecordDBQuery("query", "dim_shows", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query show domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan domain row: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, rows.Err()
}
