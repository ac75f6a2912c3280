// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/showgrid/internal/config"
	"github.com/tomtom215/showgrid/internal/extract"
	"github.com/tomtom215/showgrid/internal/models"
)

// maxRequestBody caps the trigger request body. The body carries at most
// two short date strings.
const maxRequestBody = 4 << 10

// PipelineRunner executes one ETL run over a date range.
type PipelineRunner interface {
	Run(ctx context.Context, startDate, endDate string) (*models.RunResult, error)
}

// AnalyticsStore answers the read-only warehouse queries.
type AnalyticsStore interface {
	AverageRuntimePerShow(ctx context.Context) ([]models.ShowRuntime, error)
	ShowCountByGenre(ctx context.Context) ([]models.GenreShowCount, error)
	DistinctShowDomains(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	runner    PipelineRunner
	analytics AnalyticsStore
	extract   config.ExtractConfig
	logger    zerolog.Logger
}

// NewHandler creates a Handler. The extract config supplies the default
// date range when the trigger request omits one.
func NewHandler(runner PipelineRunner, analytics AnalyticsStore, extract config.ExtractConfig, logger zerolog.Logger) *Handler {
	return &Handler{
		runner:    runner,
		analytics: analytics,
		extract:   extract,
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

// RunRequest is the optional JSON body of the pipeline trigger. Omitted
// fields fall back to the configured defaults.
type RunRequest struct {
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// RunPipeline handles POST /api/v1/pipeline/run. It executes the pipeline
// synchronously and responds with the run result. A run that finished with
// degraded sinks still returns 200; its status field says "partial" and
// sink_errors names what failed.
func (h *Handler) RunPipeline(w http.ResponseWriter, r *http.Request) {
	req, apiErr := h.decodeRunRequest(r)
	if apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	startDate := h.extract.StartDate
	if req.StartDate != "" {
		startDate = req.StartDate
	}
	endDate := h.extract.EndDate
	if req.EndDate != "" {
		endDate = req.EndDate
	}

	queryStart := time.Now()
	result, err := h.runner.Run(r.Context(), startDate, endDate)
	if err != nil {
		if errors.Is(err, extract.ErrInvalidDate) || errors.Is(err, extract.ErrInvalidRange) {
			respondError(w, http.StatusBadRequest, codeInvalidRequest, err.Error(), err)
			return
		}
		respondError(w, http.StatusInternalServerError, codePipelineError, "Pipeline run failed", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: result.Status,
		Data:   result,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(queryStart).Milliseconds(),
		},
	})
}

// decodeRunRequest parses and validates the optional trigger body. An
// empty body is valid and yields the zero request.
func (h *Handler) decodeRunRequest(r *http.Request) (RunRequest, *models.APIError) {
	var req RunRequest

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return req, &models.APIError{Code: codeInvalidRequest, Message: "Failed to read request body"}
	}
	if len(body) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return RunRequest{}, &models.APIError{Code: codeInvalidRequest, Message: "Request body is not valid JSON"}
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		return RunRequest{}, apiErr
	}
	return req, nil
}

// ShowRuntimes handles GET /api/v1/analytics/show-runtimes.
func (h *Handler) ShowRuntimes(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	rows, err := h.analytics.AverageRuntimePerShow(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeQueryError, "Failed to query show runtimes", err)
		return
	}
	respondData(w, http.StatusOK, rows, queryStart)
}

// ShowsByGenre handles GET /api/v1/analytics/shows-by-genre.
func (h *Handler) ShowsByGenre(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	rows, err := h.analytics.ShowCountByGenre(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeQueryError, "Failed to query shows by genre", err)
		return
	}
	respondData(w, http.StatusOK, rows, queryStart)
}

// ShowDomains handles GET /api/v1/analytics/show-domains.
func (h *Handler) ShowDomains(w http.ResponseWriter, r *http.Request) {
	queryStart := time.Now()
	domains, err := h.analytics.DistinctShowDomains(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeQueryError, "Failed to query show domains", err)
		return
	}
	respondData(w, http.StatusOK, domains, queryStart)
}

// Health handles GET /api/v1/health. Database reachability is reported but
// does not fail the endpoint; the process is alive either way.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := h.analytics.Ping(r.Context()); err != nil {
		dbStatus = "unreachable"
		h.logger.Warn().Err(err).Msg("Health check: database unreachable")
	}

	respondData(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": dbStatus,
	}, time.Now())
}
