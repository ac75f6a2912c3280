// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/showgrid/internal/metrics"
	"github.com/tomtom215/showgrid/internal/transform"
)

// ReplaceTables replaces the contents of all four warehouse tables with
// the given cleaned table set. Each table is truncated and reloaded inside
// its own transaction, so a single table is never observed half-loaded;
// there is deliberately no cross-table transaction (full-refresh ETL, the
// run is retried wholesale on failure).
//
// Returns the per-table row counts on success. A failure on any table
// aborts the load: a partially refreshed warehouse is reported to the
// caller rather than papered over.
func (db *DB) ReplaceTables(ctx context.Context, t transform.Tables) (map[string]int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	counts := make(map[string]int, len(TableNames))

	loaders := []struct {
		table string
		load  func(*sql.Tx) (int, error)
	}{
		{"fact_episodes", func(tx *sql.Tx) (int, error) { return loadFacts(ctx, tx, t) }},
		{"dim_shows", func(tx *sql.Tx) (int, error) { return loadShows(ctx, tx, t) }},
		{"dim_genres", func(tx *sql.Tx) (int, error) { return loadGenres(ctx, tx, t) }},
		{"show_genres", func(tx *sql.Tx) (int, error) { return loadShowGenres(ctx, tx, t) }},
	}

	for _, loader := range loaders {
		start := time.Now()
		rows, err := db.replaceOne(ctx, loader.table, loader.load)
		metrics.RecordDBQuery("replace", loader.table, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("failed to replace table %s: %w", loader.table, err)
		}
		counts[loader.table] = rows
		metrics.RecordTableRows(loader.table, rows)
	}

	return counts, nil
}

// replaceOne truncates and reloads one table in a transaction.
func (db *DB) replaceOne(ctx context.Context, table string, load func(*sql.Tx) (int, error)) (rows int, err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("failed to truncate: %w", err)
	}

	if rows, err = load(tx); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return rows, nil
}

func loadFacts(ctx context.Context, tx *sql.Tx, t transform.Tables) (int, error) {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fact_episodes (episode_id, episode_runtime, episode_number, episode_season, episode_air_date, show_id)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range t.Facts {
		if _, err := stmt.ExecContext(ctx, f.EpisodeID, f.Runtime, f.Number, f.Season, f.AirDate, f.ShowID); err != nil {
			return 0, fmt.Errorf("failed to insert fact row: %w", err)
		}
	}
	return len(t.Facts), nil
}

func loadShows(ctx context.Context, tx *sql.Tx, t transform.Tables) (int, error) {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dim_shows (show_id, show_name, show_avg_runtime, show_official_site)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range t.Shows {
		if _, err := stmt.ExecContext(ctx, s.ShowID, s.Name, s.AvgRuntime, s.OfficialSite); err != nil {
			return 0, fmt.Errorf("failed to insert show row: %w", err)
		}
	}
	return len(t.Shows), nil
}

func loadGenres(ctx context.Context, tx *sql.Tx, t transform.Tables) (int, error) {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dim_genres (genre_id, genre_name) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range t.Genres {
		if _, err := stmt.ExecContext(ctx, g.GenreID, g.Name); err != nil {
			return 0, fmt.Errorf("failed to insert genre row: %w", err)
		}
	}
	return len(t.Genres), nil
}

func loadShowGenres(ctx context.Context, tx *sql.Tx, t transform.Tables) (int, error) {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO show_genres (show_id, genre_id) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, sg := range t.ShowGenres {
		if _, err := stmt.ExecContext(ctx, sg.ShowID, sg.GenreID); err != nil {
			return 0, fmt.Errorf("failed to insert show_genre row: %w", err)
		}
	}
	return len(t.ShowGenres), nil
}
