package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/routegen/internal/dev"
	"github.com/vango-dev/routegen/internal/routes"
)

// watchOptions are the flags of the watch command.
type watchOptions struct {
	listen string
}

func (o *watchOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.listen, "listen", "l", "", "Status server address (default from routegen.json, empty disables)")
}

func watchCmd(flags *globalFlags) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild routes, then watch for route file changes",
		Long: `Rebuild every generated file, then watch the routes directory.

Adding a route file regenerates the override table, the category index
and the router. Empty new files receive a placeholder component first.
Removing a route file drops it everywhere.

With --listen (or dev.listen), a status server exposes:
  GET /routes        last rebuild report (JSON)
  GET /healthz       liveness
  GET /metrics       Prometheus metrics
  GET /_routegen/ws  rebuild notifications

Examples:
  routegen
  routegen watch --listen=127.0.0.1:7331`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), flags, opts)
		},
	}
	opts.bind(cmd)

	return cmd
}

func runWatch(parent context.Context, flags *globalFlags, opts *watchOptions) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if opts.listen != "" {
		cfg.Dev.Listen = opts.listen
	}

	logger := newLogger(cfg, flags.verbose, os.Stderr)
	rb := routes.NewRebuilder(cfg, logger)

	if err := os.MkdirAll(cfg.RoutesPath(), 0755); err != nil {
		return err
	}
	watcher, err := dev.NewWatcher(dev.WatcherConfig{
		Root:     cfg.RoutesPath(),
		Matches:  rb.Generator().Scanner().Matches,
		Ignore:   cfg.Dev.WatchIgnore,
		Skip:     []string{cfg.OverridesPath()},
		Debounce: cfg.DebounceDuration(),
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := dev.NewMetrics()
	reload := dev.NewReloadServer()
	defer reload.Close()

	loop := dev.NewLoop(dev.LoopOptions{
		Rebuilder: rb,
		Events:    watcher.Events(),
		Logger:    logger,
		Metrics:   metrics,
		Notifier:  reload,
		OnRebuild: func(report *routes.Report, err error) {
			if err != nil {
				errorMsg("Rebuild failed: %v", err)
				return
			}
			if len(report.Written) > 0 {
				success("Generated %d routes in %s", report.RouteCount(), report.Duration.Round(time.Microsecond))
			}
		},
	})

	info("Watching %s", cfg.RoutesPath())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := watcher.Start(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return loop.Run(ctx)
	})
	if cfg.Dev.Listen != "" {
		server := dev.NewServer(dev.ServerConfig{
			Addr:    cfg.Dev.Listen,
			Loop:    loop,
			Metrics: metrics,
			Reload:  reload,
			Logger:  logger,
		})
		info("Status server on http://%s", cfg.Dev.Listen)
		g.Go(func() error {
			return server.Start(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	info("Stopped")
	return nil
}
