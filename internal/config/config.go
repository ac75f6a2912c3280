// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

// Package config provides centralized configuration for all Showgrid
// components: the TVMaze client, the extraction date range, the DuckDB
// warehouse, the output sinks, the HTTP server, and logging.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all settings
//  2. Config File: optional YAML config file (config.yaml)
//  3. Environment Variables: override any setting
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	TVMaze   TVMazeConfig   `koanf:"tvmaze"`
	Extract  ExtractConfig  `koanf:"extract"`
	Database DatabaseConfig `koanf:"database"`
	Output   OutputConfig   `koanf:"output"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// TVMazeConfig configures the upstream schedule API client.
type TVMazeConfig struct {
	// BaseURL is the TVMaze API root, overridable for tests and mirrors.
	BaseURL string `koanf:"base_url"`

	// Timeout bounds each schedule request. A hung upstream request must
	// not block the pipeline indefinitely.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit and RateBurst throttle outgoing requests. TVMaze enforces
	// roughly 20 requests per 10 seconds per IP.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// ExtractConfig holds the default extraction date range used when the
// trigger request does not carry an explicit range.
type ExtractConfig struct {
	StartDate string `koanf:"start_date"`
	EndDate   string `koanf:"end_date"`
}

// DatabaseConfig configures the DuckDB warehouse.
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"` // 0 = runtime.NumCPU()
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
}

// OutputConfig configures the file sinks written on each run.
type OutputConfig struct {
	// JSONDir receives the pretty-printed raw schedule dump.
	JSONDir string `koanf:"json_dir"`

	// ParquetDir receives one columnar file per warehouse table.
	ParquetDir string `koanf:"parquet_dir"`

	// ReportDir receives one HTML profile per warehouse table.
	ReportDir string `koanf:"report_dir"`

	// ParquetCompression selects the parquet codec: ZSTD, SNAPPY or GZIP.
	ParquetCompression string `koanf:"parquet_compression"`
}

// ServerConfig configures the HTTP trigger server.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// APIConfig configures the HTTP surface.
type APIConfig struct {
	CORSMaxAge        int           `koanf:"cors_max_age"` // seconds
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// dateLayout is the wire format for all date configuration and parameters.
const dateLayout = "2006-01-02"

// Validate checks configuration invariants after loading.
func (c *Config) Validate() error {
	if c.TVMaze.BaseURL == "" {
		return fmt.Errorf("tvmaze.base_url must not be empty")
	}
	if c.TVMaze.Timeout <= 0 {
		return fmt.Errorf("tvmaze.timeout must be positive, got %s", c.TVMaze.Timeout)
	}
	if c.TVMaze.RateLimit <= 0 {
		return fmt.Errorf("tvmaze.rate_limit must be positive, got %f", c.TVMaze.RateLimit)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	start, err := time.Parse(dateLayout, c.Extract.StartDate)
	if err != nil {
		return fmt.Errorf("extract.start_date %q is not a valid YYYY-MM-DD date: %w", c.Extract.StartDate, err)
	}
	end, err := time.Parse(dateLayout, c.Extract.EndDate)
	if err != nil {
		return fmt.Errorf("extract.end_date %q is not a valid YYYY-MM-DD date: %w", c.Extract.EndDate, err)
	}
	if start.After(end) {
		return fmt.Errorf("extract.start_date %s is after extract.end_date %s", c.Extract.StartDate, c.Extract.EndDate)
	}

	switch c.Output.ParquetCompression {
	case "ZSTD", "SNAPPY", "GZIP":
	default:
		return fmt.Errorf("output.parquet_compression must be ZSTD, SNAPPY or GZIP, got %q", c.Output.ParquetCompression)
	}

	return nil
}
