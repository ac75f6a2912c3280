// Showgrid - TV Schedule Warehouse ETL
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showgrid

// Package report renders per-table diagnostic profiles of the warehouse
// as small standalone HTML documents. Profiles cover row counts and
// per-column completeness and cardinality so data drift in the upstream
// feed is visible without attaching a SQL client.
package report

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/tomtom215/showgrid/internal/models"
)

// Profiler is the subset of the database layer the generator needs.
type Profiler interface {
	ProfileTable(ctx context.Context, table string) (*models.TableProfile, error)
}

// Generator writes table profile reports into a directory.
type Generator struct {
	db     Profiler
	dir    string
	logger zerolog.Logger
}

// NewGenerator creates a report generator writing into dir.
func NewGenerator(db Profiler, dir string, logger zerolog.Logger) *Generator {
	return &Generator{
		db:     db,
		dir:    dir,
		logger: logger.With().Str("component", "report").Logger(),
	}
}

// WriteTableProfile profiles one table and renders it to <dir>/<table>.html,
// overwriting any previous report for that table.
func (g *Generator) WriteTableProfile(ctx context.Context, table string) error {
	profile, err := g.db.ProfileTable(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to profile %s: %w", table, err)
	}

	if err := os.MkdirAll(g.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create report directory %s: %w", g.dir, err)
	}

	path := filepath.Join(g.dir, table+".html")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}

	if err := profileTemplate.Execute(f, profile); err != nil {
		f.Close()
		return fmt.Errorf("failed to render report for %s: %w", table, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", path, err)
	}

	g.logger.Info().Str("table", table).Str("path", path).Msg("Table profile written")
	return nil
}

var profileTemplate = template.Must(template.New("profile").Funcs(template.FuncMap{
	"formatPercent": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v)
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Profile: {{.Table}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f0f0f0; }
td.num { text-align: right; }
.meta { color: #666; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>{{.Table}}</h1>
<p class="meta">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}} &middot; {{.RowCount}} rows</p>
<table>
<thead>
<tr><th>Column</th><th>Nulls</th><th>Null %</th><th>Distinct</th></tr>
</thead>
<tbody>
{{- range .Columns}}
<tr>
<td>{{.Name}}</td>
<td class="num">{{.NullCount}}</td>
<td class="num">{{formatPercent .NullPercent}}</td>
<td class="num">{{.DistinctCount}}</td>
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))
