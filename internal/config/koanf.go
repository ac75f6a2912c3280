// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/showgrid/config.yaml",
	"/etc/showgrid/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. These are
// loaded first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		TVMaze: TVMazeConfig{
			BaseURL:   "https://api.tvmaze.com",
			Timeout:   30 * time.Second,
			RateLimit: 2.0, // TVMaze allows ~20 requests per 10 seconds
			RateBurst: 4,
		},
		Extract: ExtractConfig{
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
		},
		Database: DatabaseConfig{
			Path:                   "/data/showgrid.duckdb",
			MaxMemory:              "2GB",
			Threads:                0, // 0 = runtime.NumCPU()
			PreserveInsertionOrder: true,
		},
		Output: OutputConfig{
			JSONDir:            "/data/json",
			ParquetDir:         "/data/parquet",
			ReportDir:          "/data/profiling",
			ParquetCompression: "ZSTD",
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8323,
			Timeout: 30 * time.Second,
		},
		API: APIConfig{
			CORSMaxAge:        60,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources, highest
// priority last: defaults, optional YAML config file, environment
// variables. The result is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps environment variable names (lowercased) to koanf
// config paths. Unknown variables are ignored so unrelated process
// environment never leaks into the configuration.
var envMappings = map[string]string{
	// TVMaze client
	"tvmaze_base_url":   "tvmaze.base_url",
	"tvmaze_timeout":    "tvmaze.timeout",
	"tvmaze_rate_limit": "tvmaze.rate_limit",
	"tvmaze_rate_burst": "tvmaze.rate_burst",

	// Extraction window
	"extract_start_date": "extract.start_date",
	"extract_end_date":   "extract.end_date",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Output sinks
	"output_json_dir":            "output.json_dir",
	"output_parquet_dir":         "output.parquet_dir",
	"output_report_dir":          "output.report_dir",
	"output_parquet_compression": "output.parquet_compression",

	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",

	// API
	"cors_max_age":        "api.cors_max_age",
	"rate_limit_requests": "api.rate_limit_reqs",
	"rate_limit_window":   "api.rate_limit_window",
	"disable_rate_limit":  "api.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf config paths.
// Returning "" drops the variable.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
