package dev

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/vango-dev/routegen/internal/routes"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRebuilder counts rebuilds and fails while err is set.
type fakeRebuilder struct {
	mu     sync.Mutex
	calls  int
	err    error
	routes int
	block  chan struct{}
}

func (f *fakeRebuilder) Rebuild(ctx context.Context) (*routes.Report, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	resolved := make([]routes.Resolved, f.routes)
	return &routes.Report{Categories: []routes.CategoryReport{{Name: "public", Routes: resolved}}}, nil
}

func (f *fakeRebuilder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingNotifier struct {
	mu      sync.Mutex
	rebuilt []int
	errors  []string
}

func (n *recordingNotifier) NotifyRebuilt(routes int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rebuilt = append(n.rebuilt, routes)
}

func (n *recordingNotifier) NotifyError(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, err.Error())
}

// runLoop starts the loop and returns a function that stops it and waits.
func runLoop(t *testing.T, loop *Loop) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run returned %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("loop did not stop")
		}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestLoop_InitialRebuild(t *testing.T) {
	defer goleak.VerifyNone(t)

	rb := &fakeRebuilder{routes: 3}
	notifier := &recordingNotifier{}
	loop := NewLoop(LoopOptions{Rebuilder: rb, Logger: testLogger(), Notifier: notifier})

	stop := runLoop(t, loop)
	waitFor(t, func() bool { return rb.count() == 1 })
	stop()

	report, err := loop.Last()
	if err != nil || report == nil || report.RouteCount() != 3 {
		t.Errorf("Last() = %+v, %v", report, err)
	}
	if len(notifier.rebuilt) != 1 || notifier.rebuilt[0] != 3 {
		t.Errorf("notified = %v", notifier.rebuilt)
	}
}

func TestLoop_BatchTriggersOneRebuild(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	empty := filepath.Join(dir, "user-list.tsx")
	writeFile(t, empty, "  \n")
	full := filepath.Join(dir, "about.tsx")
	writeFile(t, full, "export default function About() { return null }\n")

	events := make(chan []Change, 4)
	rb := &fakeRebuilder{}
	metrics := NewMetrics()
	loop := NewLoop(LoopOptions{Rebuilder: rb, Events: events, Logger: testLogger(), Metrics: metrics})

	stop := runLoop(t, loop)
	waitFor(t, func() bool { return rb.count() == 1 })

	events <- []Change{
		{Path: empty, Type: ChangeAdd},
		{Path: full, Type: ChangeAdd},
		{Path: filepath.Join(dir, "gone.tsx"), Type: ChangeRemove},
	}
	waitFor(t, func() bool { return rb.count() == 2 })
	stop()

	data, err := os.ReadFile(empty)
	if err != nil {
		t.Fatal(err)
	}
	want := "export default function UserList() {\n  return <div>UserList</div>\n}\n"
	if string(data) != want {
		t.Errorf("placeholder = %q, want %q", data, want)
	}
	data, _ = os.ReadFile(full)
	if string(data) != "export default function About() { return null }\n" {
		t.Errorf("non-empty file was modified: %q", data)
	}
}

func TestLoop_QueuedBatchesShareRebuild(t *testing.T) {
	defer goleak.VerifyNone(t)

	events := make(chan []Change, 4)
	rb := &fakeRebuilder{block: make(chan struct{})}
	loop := NewLoop(LoopOptions{Rebuilder: rb, Events: events, Logger: testLogger()})

	// Both batches queue up while the startup rebuild is blocked.
	events <- []Change{{Path: "/r/a.tsx", Type: ChangeRemove}}
	events <- []Change{{Path: "/r/b.tsx", Type: ChangeRemove}}

	stop := runLoop(t, loop)
	close(rb.block)
	waitFor(t, func() bool { return rb.count() == 2 })
	time.Sleep(50 * time.Millisecond)
	stop()

	if got := rb.count(); got != 2 {
		t.Errorf("rebuilds = %d, want 2", got)
	}
}

func TestLoop_ErrorKeepsRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	events := make(chan []Change, 1)
	rb := &fakeRebuilder{err: errors.New("disk full")}
	notifier := &recordingNotifier{}
	var mu sync.Mutex
	var seen []error
	loop := NewLoop(LoopOptions{
		Rebuilder: rb,
		Events:    events,
		Logger:    testLogger(),
		Notifier:  notifier,
		OnRebuild: func(_ *routes.Report, err error) {
			mu.Lock()
			seen = append(seen, err)
			mu.Unlock()
		},
	})

	stop := runLoop(t, loop)
	waitFor(t, func() bool { return rb.count() == 1 })

	rb.mu.Lock()
	rb.err = nil
	rb.mu.Unlock()
	events <- []Change{{Path: "/r/a.tsx", Type: ChangeRemove}}
	waitFor(t, func() bool { return rb.count() == 2 })
	stop()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] == nil || seen[1] != nil {
		t.Errorf("OnRebuild errors = %v", seen)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "disk full" {
		t.Errorf("notified errors = %v", notifier.errors)
	}
	if _, err := loop.Last(); err != nil {
		t.Errorf("last error should clear after a good rebuild: %v", err)
	}
}

func TestLoop_ClosedEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	events := make(chan []Change)
	close(events)
	rb := &fakeRebuilder{}
	loop := NewLoop(LoopOptions{Rebuilder: rb, Events: events, Logger: testLogger()})

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if rb.count() != 1 {
		t.Errorf("rebuilds = %d, want 1", rb.count())
	}
}
