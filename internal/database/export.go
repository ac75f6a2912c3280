// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/showgrid/internal/metrics"
)

// ExportParquet writes one compressed parquet file per warehouse table
// into dir, named <table>.parquet. Existing files are overwritten.
//
// A failure on one table does not stop the remaining exports; all
// failures are joined into the returned error so the caller can log the
// degradation without losing the tables that did export.
func (db *DB) ExportParquet(ctx context.Context, dir, compression string, logger zerolog.Logger) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create parquet directory %s: %w", dir, err)
	}

	var errs []error
	for _, table := range TableNames {
		path := filepath.Join(dir, table+".parquet")

		exportQuery := fmt.Sprintf(`COPY %s TO ? (FORMAT PARQUET, COMPRESSION '%s')`, table, compression)

		start := time.Now()
		_, err := db.conn.ExecContext(ctx, exportQuery, path)
		metrics.RecordDBQuery("export_parquet", table, time.Since(start), err)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to export %s: %w", table, err))
			logger.Error().Err(err).Str("table", table).Msg("Parquet export failed")
			continue
		}
		logger.Info().Str("table", table).Str("path", path).Msg("Parquet file written")
	}

	return errors.Join(errs...)
}
