// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package api

// Error codes returned in the APIError envelope.
const (
	codeValidationError = "VALIDATION_ERROR"
	codeInvalidRequest  = "INVALID_REQUEST"
	codePipelineError   = "PIPELINE_ERROR"
	codeQueryError      = "QUERY_ERROR"
)
