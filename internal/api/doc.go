// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

// Package api provides the HTTP surface of the service: the pipeline
// trigger endpoint, the read-only analytic endpoints, health and metrics.
// Routing uses Chi with CORS and IP rate limiting applied globally.
package api
