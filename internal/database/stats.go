// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/showgrid/internal/models"
)

// ProfileTable computes the diagnostic statistics for one warehouse table:
// row count plus per-column null and distinct counts. Only the known
// warehouse tables are accepted; identifiers are never taken from user
// input.
func (db *DB) ProfileTable(ctx context.Context, table string) (*models.TableProfile, error) {
	if !knownTable(table) {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	profile := &models.TableProfile{
		Table:       table,
		GeneratedAt: time.Now().UTC(),
	}

	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&profile.RowCount); err != nil {
		return nil, fmt.Errorf("failed to count rows of %s: %w", table, err)
	}

	columns, err := db.tableColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	for _, column := range columns {
		// Identifiers come from information_schema on our own DDL, not
		// from callers.
		query := fmt.Sprintf(
			`SELECT COUNT(*) - COUNT(%[1]s), COUNT(DISTINCT %[1]s) FROM %[2]s`,
			column, table)

		var cp models.ColumnProfile
		cp.Name = column
		if err := db.conn.QueryRowContext(ctx, query).Scan(&cp.NullCount, &cp.DistinctCount); err != nil {
			return nil, fmt.Errorf("failed to profile column %s.%s: %w", table, column, err)
		}
		if profile.RowCount > 0 {
			cp.NullPercent = float64(cp.NullCount) / float64(profile.RowCount) * 100
		}
		profile.Columns = append(profile.Columns, cp)
	}

	return profile, nil
}

// tableColumns returns the ordered column names of a warehouse table.
func (db *DB) tableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position`,
		table)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// knownTable reports whether table is one of the warehouse tables.
func knownTable(table string) bool {
	for _, name := range TableNames {
		if name == table {
			return true
		}
	}
	return false
}
