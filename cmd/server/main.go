// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

// Showgrid fetches TV schedules from the TVMaze API, reshapes them into a
// star-schema warehouse backed by DuckDB and exposes the pipeline trigger
// and analytic queries over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/showgrid/internal/api"
	"github.com/tomtom215/showgrid/internal/config"
	"github.com/tomtom215/showgrid/internal/database"
	"github.com/tomtom215/showgrid/internal/extract"
	"github.com/tomtom215/showgrid/internal/logging"
	"github.com/tomtom215/showgrid/internal/pipeline"
	"github.com/tomtom215/showgrid/internal/report"
	"github.com/tomtom215/showgrid/internal/tvmaze"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("tvmaze_url", cfg.TVMaze.BaseURL).
		Str("default_range", cfg.Extract.StartDate+".."+cfg.Extract.EndDate).
		Msg("Starting Showgrid")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open warehouse database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	logger := logging.Logger()

	client := tvmaze.NewClient(&cfg.TVMaze)
	fetcher := extract.NewFetcher(client, logger.With().Str("component", "extract").Logger())
	reports := report.NewGenerator(db, cfg.Output.ReportDir, logger)
	runner := pipeline.NewRunner(fetcher, db, reports, cfg.Output, logger)

	handler := api.NewHandler(runner, db, cfg.Extract, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler, cfg.API),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
