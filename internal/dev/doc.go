// Package dev provides watch mode: the file watcher, the rebuild loop and
// the optional status server.
//
// # Architecture
//
// Watch mode consists of several components:
//
//   - Watcher: fsnotify events below the routes root, debounced into batches
//   - Loop: the single consumer that bootstraps new files and rebuilds
//   - Server: HTTP status endpoint (chi) with Prometheus metrics
//   - ReloadServer: notifies WebSocket clients of each rebuild
//
// At most one rebuild runs at a time. Events arriving during a rebuild are
// batched and handled by the next one.
//
// # Usage
//
//	w, err := dev.NewWatcher(dev.WatcherConfig{
//	    Root:     cfg.RoutesPath(),
//	    Matches:  rb.Generator().Scanner().Matches,
//	    Debounce: cfg.DebounceDuration(),
//	})
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	loop := dev.NewLoop(dev.LoopOptions{Rebuilder: rb, Events: w.Events()})
//	go w.Start(ctx)
//	return loop.Run(ctx)
//
// # Rebuild Protocol
//
// WebSocket clients connect to /_routegen/ws.
// Messages are JSON-encoded:
//
//	{"type": "rebuilt", "routes": 12}    // A rebuild completed
//	{"type": "error", "error": "..."}    // A rebuild failed
package dev
