// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

// Package tvmaze provides the HTTP client for the TVMaze public API.
//
// Only the web/streaming schedule endpoint is used:
//
//	GET {base}/schedule/web?date=YYYY-MM-DD
//
// The client carries a request timeout and a client-side rate limiter.
// TVMaze enforces roughly 20 requests per 10 seconds per IP; the limiter
// keeps a long date-range extraction under that threshold instead of
// triggering upstream HTTP 429 responses.
//
// Thread Safety: safe for concurrent use; each request creates its own
// http.Request and the limiter is internally synchronized.
package tvmaze

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/showgrid/internal/config"
	"github.com/tomtom215/showgrid/internal/models"
)

// maxErrorBodySize limits how much of an error response body is read for
// diagnostics, preventing unbounded allocation on large error pages.
const maxErrorBodySize = 64 * 1024 // 64KB

// ScheduleAPI is the upstream collaborator interface consumed by the
// extraction layer. Production code uses Client; tests substitute fakes.
type ScheduleAPI interface {
	// FetchDay returns all schedule entries for one calendar day given in
	// YYYY-MM-DD form. It fails on network errors and non-2xx statuses.
	FetchDay(ctx context.Context, date string) ([]models.RawScheduleEntry, error)
}

// Client communicates with the TVMaze HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a TVMaze API client from configuration.
func NewClient(cfg *config.TVMazeConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// FetchDay retrieves the web schedule for one calendar day. The returned
// slice preserves the upstream response order. The context bounds both the
// limiter wait and the request itself.
func (c *Client) FetchDay(ctx context.Context, date string) ([]models.RawScheduleEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait interrupted: %w", err)
	}

	params := url.Values{}
	params.Set("date", date)
	reqURL := fmt.Sprintf("%s/schedule/web?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule request for %s failed: %w", date, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("schedule request for %s returned status %d: %s", date, resp.StatusCode, string(body))
	}

	var entries []models.RawScheduleEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode schedule response for %s: %w", date, err)
	}

	return entries, nil
}

// Ping verifies connectivity to the TVMaze API by requesting today's
// schedule. Useful as a startup health probe.
func (c *Client) Ping(ctx context.Context) error {
	today := time.Now().UTC().Format("2006-01-02")
	if _, err := c.FetchDay(ctx, today); err != nil {
		return fmt.Errorf("tvmaze ping failed: %w", err)
	}
	return nil
}

// readBodyForError reads at most maxErrorBodySize bytes of a response body
// for inclusion in error messages.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}
