// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package database

import (
	"context"
	"fmt"
	"time"
)

// TableNames lists the warehouse tables in load order. Export, profiling
// and the replace step all iterate this list so a new table only needs to
// be added here and in tableDDL.
var TableNames = []string{"fact_episodes", "dim_shows", "dim_genres", "show_genres"}

// tableDDL maps each table to its creation statement. Key columns are
// NOT NULL: the cleaners guarantee those invariants before load, and the
// schema enforces them as a second line of defense.
var tableDDL = map[string]string{
	"fact_episodes": `CREATE TABLE IF NOT EXISTS fact_episodes (
		episode_id BIGINT NOT NULL,
		episode_runtime DOUBLE,
		episode_number BIGINT,
		episode_season BIGINT,
		episode_air_date DATE,
		show_id BIGINT NOT NULL
	)`,
	"dim_shows": `CREATE TABLE IF NOT EXISTS dim_shows (
		show_id BIGINT NOT NULL,
		show_name TEXT,
		show_avg_runtime DOUBLE,
		show_official_site TEXT
	)`,
	"dim_genres": `CREATE TABLE IF NOT EXISTS dim_genres (
		genre_id BIGINT NOT NULL,
		genre_name TEXT NOT NULL
	)`,
	"show_genres": `CREATE TABLE IF NOT EXISTS show_genres (
		show_id BIGINT NOT NULL,
		genre_id BIGINT NOT NULL
	)`,
}

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the warehouse tables when missing. Data from a
// previous run stays queryable across restarts; each pipeline run replaces
// table contents wholesale via ReplaceTables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, table := range TableNames {
		if _, err := db.conn.ExecContext(ctx, tableDDL[table]); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}

	return nil
}
