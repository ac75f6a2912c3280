// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package models

import "time"

// ColumnProfile holds completeness and cardinality statistics for one
// column, feeding the per-table diagnostic reports.
type ColumnProfile struct {
	Name          string  `json:"name"`
	NullCount     int64   `json:"null_count"`
	NullPercent   float64 `json:"null_percent"`
	DistinctCount int64   `json:"distinct_count"`
}

// TableProfile is the diagnostic summary of one warehouse table.
type TableProfile struct {
	Table       string          `json:"table"`
	RowCount    int64           `json:"row_count"`
	Columns     []ColumnProfile `json:"columns"`
	GeneratedAt time.Time       `json:"generated_at"`
}
