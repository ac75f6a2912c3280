// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

// Package models defines the shared data structures for Showgrid: the raw
// TVMaze schedule payloads, the flattened episode record, the star-schema
// table rows, analytic query results, and the HTTP response envelope.
//
// The package has no behavior beyond struct definitions so that every other
// package can depend on it without import cycles.
package models
