package routes

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/routegen/internal/config"
	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/overrides"
)

const tracerName = "github.com/vango-dev/routegen/internal/routes"

// CategoryReport lists the resolved routes of one category.
type CategoryReport struct {
	Name     string     `json:"name"`
	BasePath string     `json:"basePath"`
	Routes   []Resolved `json:"routes"`
}

// Report describes one rebuild.
type Report struct {
	// Overrides is the reconciliation result of the override table.
	Overrides overrides.Result `json:"overrides"`

	// Categories are the categories with a directory, in configured order.
	Categories []CategoryReport `json:"categories"`

	// Written lists the generated files whose content changed.
	Written []string `json:"written"`

	// Warnings are the override table diagnostics.
	Warnings []string `json:"warnings,omitempty"`

	Duration time.Duration `json:"duration"`
	At       time.Time     `json:"at"`
}

// RouteCount returns the number of resolved routes.
func (r *Report) RouteCount() int {
	n := 0
	for _, c := range r.Categories {
		n += len(c.Routes)
	}
	return n
}

// Rebuilder runs full rebuilds of a project.
type Rebuilder struct {
	cfg    *config.Config
	gen    *Generator
	store  *overrides.Store
	logger *slog.Logger
	tracer trace.Tracer
}

// NewRebuilder creates a rebuilder for the project described by cfg.
func NewRebuilder(cfg *config.Config, logger *slog.Logger) *Rebuilder {
	if logger == nil {
		logger = slog.Default()
	}

	groups := make([]overrides.Group, 0, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		groups = append(groups, overrides.Group{Name: cat.Name, Label: cat.Label})
	}

	return &Rebuilder{
		cfg: cfg,
		gen: NewGenerator(cfg, logger),
		store: &overrides.Store{
			Path:      cfg.OverridesPath(),
			Extension: cfg.Extension,
			Groups:    groups,
		},
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// Generator returns the generator used by the rebuilder.
func (rb *Rebuilder) Generator() *Generator {
	return rb.gen
}

// Store returns the override table store.
func (rb *Rebuilder) Store() *overrides.Store {
	return rb.store
}

// Rebuild reconciles the override table with the route files on disk, then
// regenerates every category index and the router file. A rebuild is not
// interrupted once started; ctx only carries the trace span.
func (rb *Rebuilder) Rebuild(ctx context.Context) (*Report, error) {
	start := time.Now()
	_, span := rb.tracer.Start(ctx, "routegen.rebuild",
		trace.WithAttributes(attribute.String("routegen.routes", rb.cfg.RoutesPath())),
	)
	defer span.End()

	report, err := rb.rebuild()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	report.At = start
	report.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("routegen.route_count", report.RouteCount()),
		attribute.Int("routegen.files_written", len(report.Written)),
		attribute.Bool("routegen.overrides_changed", report.Overrides.Changed()),
	)
	span.SetStatus(codes.Ok, "")
	return report, nil
}

func (rb *Rebuilder) rebuild() (*Report, error) {
	files, err := rb.gen.Discover()
	if err != nil {
		return nil, err
	}

	res, err := rb.store.Reconcile(Keys(files))
	if err != nil {
		return nil, err
	}
	switch {
	case res.Created:
		rb.logger.Info("created override table", "path", rb.store.Path, "entries", len(res.Added))
	case res.Changed():
		rb.logger.Info("updated override table", "path", rb.store.Path, "added", len(res.Added), "removed", len(res.Removed))
	}

	table, warnings := rb.store.Load()
	report := &Report{Overrides: res}
	for _, w := range warnings {
		rb.logWarning(w)
		report.Warnings = append(report.Warnings, w.FormatCompact())
	}

	for _, cat := range rb.cfg.Categories {
		if !isDir(rb.cfg.CategoryPath(cat.Name)) {
			continue
		}
		resolved, changed, err := rb.gen.GenerateIndex(cat, table)
		if err != nil {
			return nil, err
		}
		if changed {
			report.Written = append(report.Written, filepath.Join(rb.cfg.CategoryPath(cat.Name), rb.cfg.Index))
			rb.logger.Info("updated index", "category", cat.Name)
		}
		report.Categories = append(report.Categories, CategoryReport{
			Name:     cat.Name,
			BasePath: cat.BasePath,
			Routes:   resolved,
		})
	}

	changed, err := rb.gen.GenerateRouter(table)
	if err != nil {
		return nil, err
	}
	if changed {
		report.Written = append(report.Written, rb.cfg.RouterPath())
		rb.logger.Info("updated router", "path", rb.cfg.RouterPath())
	}
	return report, nil
}

func (rb *Rebuilder) logWarning(w *errors.Error) {
	attrs := []any{"code", w.Code, "detail", w.Detail}
	if w.Location != nil {
		attrs = append(attrs, "location", w.Location.String())
	}
	if w.Wrapped != nil {
		attrs = append(attrs, "error", w.Wrapped)
	}
	rb.logger.Warn(w.Message, attrs...)
}
