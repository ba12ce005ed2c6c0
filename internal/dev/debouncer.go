package dev

import (
	"sort"
	"sync"
	"time"
)

// Debouncer collects changes and emits them as one batch after a quiet
// period. Changes to the same path within the window collapse into the
// latest one.
type Debouncer struct {
	interval time.Duration
	changes  map[string]Change
	mu       sync.Mutex
	timer    *time.Timer
	output   chan []Change
	done     chan struct{}
	stopped  bool
}

// NewDebouncer creates a debouncer with the specified quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		changes:  make(map[string]Change),
		output:   make(chan []Change, 16),
		done:     make(chan struct{}),
	}
}

// Output returns the channel that receives batches, sorted by path.
func (d *Debouncer) Output() <-chan []Change {
	return d.output
}

// Add records a change and restarts the quiet period.
func (d *Debouncer) Add(c Change) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.changes[c.Path] = c

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

// Stop discards pending changes. Batches not yet received are dropped.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.changes = make(map[string]Change)
	close(d.done)
}

// flush sends the accumulated changes to the output channel.
func (d *Debouncer) flush() {
	d.mu.Lock()
	if len(d.changes) == 0 || d.stopped {
		d.mu.Unlock()
		return
	}

	batch := make([]Change, 0, len(d.changes))
	for _, c := range d.changes {
		batch = append(batch, c)
	}
	d.changes = make(map[string]Change)
	d.mu.Unlock()

	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })

	select {
	case d.output <- batch:
	case <-d.done:
	}
}
