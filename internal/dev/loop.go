package dev

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/routegen/internal/routes"
)

// Rebuilder runs one full rebuild.
type Rebuilder interface {
	Rebuild(ctx context.Context) (*routes.Report, error)
}

// LoopOptions configures the rebuild loop.
type LoopOptions struct {
	// Rebuilder performs the rebuilds. Required.
	Rebuilder Rebuilder

	// Events delivers batches of file changes. A nil channel only runs the
	// initial rebuild and then waits for cancellation.
	Events <-chan []Change

	// Logger receives loop diagnostics.
	Logger *slog.Logger

	// Metrics records rebuild outcomes when set.
	Metrics *Metrics

	// Notifier is told about each rebuild when set.
	Notifier Notifier

	// OnRebuild is called after every rebuild attempt.
	OnRebuild func(report *routes.Report, err error)
}

// Loop is the single consumer of file change batches. It bootstraps new
// files and runs at most one rebuild at a time.
type Loop struct {
	opts   LoopOptions
	logger *slog.Logger

	mu      sync.RWMutex
	last    *routes.Report
	lastErr error
}

// NewLoop creates a rebuild loop.
func NewLoop(opts LoopOptions) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{opts: opts, logger: logger}
}

// Run performs the initial rebuild, then handles change batches until ctx
// is done or the event channel is closed. A rebuild in progress always
// finishes before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	l.rebuild(ctx, "startup")

	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-l.opts.Events:
			if !ok {
				return nil
			}
			// Batches that queued up during the last rebuild share one rebuild.
			draining := true
			for draining {
				select {
				case next, ok := <-l.opts.Events:
					if !ok {
						draining = false
						break
					}
					batch = append(batch, next...)
				default:
					draining = false
				}
			}
			l.handleBatch(ctx, batch)
		}
	}
}

// Last returns the report of the last successful rebuild and the error of
// the last attempt.
func (l *Loop) Last() (*routes.Report, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.last, l.lastErr
}

// handleBatch writes placeholders for added files, then rebuilds once.
func (l *Loop) handleBatch(ctx context.Context, batch []Change) {
	if len(batch) == 0 {
		return
	}
	if l.opts.Metrics != nil {
		l.opts.Metrics.observeEvents(batch)
	}

	for _, c := range batch {
		l.logger.Info("route file "+c.Type.String(), "path", c.Path)
		if c.Type != ChangeAdd {
			continue
		}
		wrote, err := EnsureComponent(c.Path)
		if err != nil {
			l.logger.Error("placeholder failed", "path", c.Path, "error", err)
			continue
		}
		if wrote {
			l.logger.Info("wrote placeholder component", "path", c.Path)
		}
	}

	l.rebuild(ctx, "change")
}

// rebuild runs one rebuild and publishes its outcome.
func (l *Loop) rebuild(ctx context.Context, reason string) {
	start := time.Now()
	report, err := l.opts.Rebuilder.Rebuild(ctx)
	elapsed := time.Since(start)

	l.mu.Lock()
	l.lastErr = err
	if err == nil {
		l.last = report
	}
	l.mu.Unlock()

	routeCount := 0
	if err != nil {
		l.logger.Error("rebuild failed", "reason", reason, "error", err)
	} else {
		routeCount = report.RouteCount()
		l.logger.Info("rebuilt routes",
			"reason", reason,
			"routes", routeCount,
			"written", len(report.Written),
			"duration", elapsed,
		)
	}

	if l.opts.Metrics != nil {
		l.opts.Metrics.observeRebuild(elapsed, routeCount, err)
	}
	if l.opts.Notifier != nil {
		if err != nil {
			l.opts.Notifier.NotifyError(err)
		} else {
			l.opts.Notifier.NotifyRebuilt(routeCount)
		}
	}
	if l.opts.OnRebuild != nil {
		l.opts.OnRebuild(report, err)
	}
}
