package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"gitdash/internal/discovery"
	"gitdash/internal/events"
	"gitdash/internal/gitprobe"
)

// fakeLister counts calls per path and can block until released.
type fakeLister struct {
	mu      sync.Mutex
	calls   map[string]int
	results map[string][]discovery.Entry
	errs    map[string]error
	block   chan struct{} // when non-nil, List waits until closed
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		calls:   make(map[string]int),
		results: make(map[string][]discovery.Entry),
		errs:    make(map[string]error),
	}
}

func (f *fakeLister) List(_ context.Context, path string) ([]discovery.Entry, error) {
	f.mu.Lock()
	f.calls[path]++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	return f.results[path], nil
}

func (f *fakeLister) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func nopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// nextEvent reads one event or fails the test after a timeout.
func nextEvent(t *testing.T, s *Scheduler) any {
	t.Helper()
	select {
	case ev := <-s.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestExpand_StartedThenCompleted(t *testing.T) {
	lister := newFakeLister()
	lister.results["/work"] = []discovery.Entry{
		{Status: gitprobe.RepoStatus{Path: "/work/a", IsRepo: true, Branch: "main"}},
	}

	s := New(lister, nopLogger(), 2)
	s.RequestExpand(context.Background(), "/work")

	started, ok := nextEvent(t, s).(events.ScanStartedMsg)
	if !ok || started.Path != "/work" {
		t.Fatalf("expected ScanStartedMsg for /work, got %#v", started)
	}

	completed, ok := nextEvent(t, s).(events.ScanCompletedMsg)
	if !ok {
		t.Fatal("expected ScanCompletedMsg after ScanStartedMsg")
	}
	if completed.Path != "/work" || len(completed.Children) != 1 {
		t.Errorf("unexpected completion: %#v", completed)
	}
}

func TestExpand_FailureDeliversFailedEvent(t *testing.T) {
	lister := newFakeLister()
	lister.errs["/work"] = &discovery.ListError{Path: "/work", Err: errors.New("permission denied")}

	s := New(lister, nopLogger(), 2)
	s.RequestExpand(context.Background(), "/work")

	if _, ok := nextEvent(t, s).(events.ScanStartedMsg); !ok {
		t.Fatal("expected ScanStartedMsg first")
	}
	failed, ok := nextEvent(t, s).(events.ScanFailedMsg)
	if !ok {
		t.Fatal("expected ScanFailedMsg")
	}
	var lerr *discovery.ListError
	if !errors.As(failed.Err, &lerr) {
		t.Errorf("expected ListError cause, got %v", failed.Err)
	}
}

func TestExpand_CoalescesConcurrentRequests(t *testing.T) {
	lister := newFakeLister()
	lister.block = make(chan struct{})
	lister.results["/work"] = nil

	s := New(lister, nopLogger(), 2)
	ctx := context.Background()

	s.RequestExpand(ctx, "/work")
	// Wait until the first listing is actually running before re-requesting.
	for i := 0; lister.callCount("/work") == 0 && i < 100; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	s.RequestExpand(ctx, "/work")
	s.RequestExpand(ctx, "/work")

	close(lister.block)
	s.Wait()

	if got := lister.callCount("/work"); got != 1 {
		t.Errorf("expected exactly one underlying listing, got %d", got)
	}

	// Exactly one Started and one terminal event.
	var startedN, terminalN int
	for len(s.Events()) > 0 {
		switch nextEvent(t, s).(type) {
		case events.ScanStartedMsg:
			startedN++
		case events.ScanCompletedMsg, events.ScanFailedMsg:
			terminalN++
		}
	}
	if startedN != 1 || terminalN != 1 {
		t.Errorf("expected 1 started / 1 terminal event, got %d / %d", startedN, terminalN)
	}
}

func TestExpand_RerequestAfterCompletionRunsAgain(t *testing.T) {
	lister := newFakeLister()
	lister.results["/work"] = nil

	s := New(lister, nopLogger(), 2)
	ctx := context.Background()

	s.RequestExpand(ctx, "/work")
	s.Wait()
	s.RequestExpand(ctx, "/work")
	s.Wait()

	if got := lister.callCount("/work"); got != 2 {
		t.Errorf("expected two listings for sequential requests, got %d", got)
	}
}

func TestExpand_IndependentNodesBothComplete(t *testing.T) {
	lister := newFakeLister()
	lister.results["/work/a"] = nil
	lister.results["/work/b"] = nil

	s := New(lister, nopLogger(), 2)
	ctx := context.Background()

	s.RequestExpand(ctx, "/work/a")
	s.RequestExpand(ctx, "/work/b")
	s.Wait()

	// Per-node ordering must hold even though cross-node order is free.
	started := make(map[string]bool)
	terminal := make(map[string]bool)
	for len(s.Events()) > 0 {
		switch ev := nextEvent(t, s).(type) {
		case events.ScanStartedMsg:
			if terminal[ev.Path] {
				t.Errorf("started after terminal for %s", ev.Path)
			}
			started[ev.Path] = true
		case events.ScanCompletedMsg:
			if !started[ev.Path] {
				t.Errorf("completed without started for %s", ev.Path)
			}
			terminal[ev.Path] = true
		case events.ScanFailedMsg:
			t.Errorf("unexpected failure for %s: %v", ev.Path, ev.Err)
		}
	}
	if !terminal["/work/a"] || !terminal["/work/b"] {
		t.Error("expected both nodes to complete")
	}
}

func TestSeed_RootNotFound(t *testing.T) {
	lister := newFakeLister()
	s := New(lister, nopLogger(), 2)

	err := s.RequestSeed(context.Background(), "/nonexistent/root")

	var rnf *RootNotFoundError
	if !errors.As(err, &rnf) {
		t.Fatalf("expected *RootNotFoundError, got %v", err)
	}
	if rnf.Path != "/nonexistent/root" {
		t.Errorf("unexpected error path %q", rnf.Path)
	}
	if len(lister.calls) != 0 {
		t.Error("no listing may run for a missing root")
	}
	if len(s.Events()) != 0 {
		t.Error("no events may fire for a missing root")
	}
}

func TestSeed_ValidRootSchedulesListing(t *testing.T) {
	root := t.TempDir()
	lister := newFakeLister()
	lister.results[root] = []discovery.Entry{
		{Status: gitprobe.RepoStatus{Path: root + "/a"}},
	}

	s := New(lister, nopLogger(), 2)
	if err := s.RequestSeed(context.Background(), root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Wait()

	if got := lister.callCount(root); got != 1 {
		t.Fatalf("expected one listing of the root, got %d", got)
	}
	if _, ok := nextEvent(t, s).(events.ScanStartedMsg); !ok {
		t.Fatal("expected ScanStartedMsg")
	}
	completed, ok := nextEvent(t, s).(events.ScanCompletedMsg)
	if !ok || len(completed.Children) != 1 {
		t.Fatalf("expected completion with one child, got %#v", completed)
	}
}

func TestClose_DrainsAndCloses(t *testing.T) {
	lister := newFakeLister()
	lister.results["/work"] = nil

	s := New(lister, nopLogger(), 2)
	s.RequestExpand(context.Background(), "/work")
	s.Close()

	var n int
	for range s.Events() {
		n++
	}
	if n != 2 {
		t.Errorf("expected 2 drained events, got %d", n)
	}
}
