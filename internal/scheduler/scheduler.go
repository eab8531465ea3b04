// pattern: Imperative Shell

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"gitdash/internal/discovery"
	"gitdash/internal/events"
)

// DefaultWorkers caps concurrently running listings. Each listing spawns
// several git processes, so the cap bounds process fan-out, not goroutines.
const DefaultWorkers = 4

const eventBufSize = 64

// RootNotFoundError reports that a seed root does not exist or is not a
// directory. It is returned synchronously; no worker runs and no events fire.
type RootNotFoundError struct {
	Path string
	Err  error
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("scan root %s: %v", e.Path, e.Err)
}

func (e *RootNotFoundError) Unwrap() error { return e.Err }

// Lister produces the immediate children of a directory.
type Lister interface {
	List(ctx context.Context, path string) ([]discovery.Entry, error)
}

// Scheduler runs directory listings on background workers and delivers
// lifecycle events over a channel. Request methods never block on listing
// work; per path, at most one listing is in flight at a time.
type Scheduler struct {
	lister Lister
	logger *zap.SugaredLogger
	sem    *semaphore.Weighted
	events chan any

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

// New creates a Scheduler with the given worker cap (<=0 means DefaultWorkers).
func New(lister Lister, logger *zap.SugaredLogger, workers int) *Scheduler {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Scheduler{
		lister:   lister,
		logger:   logger,
		sem:      semaphore.NewWeighted(int64(workers)),
		events:   make(chan any, eventBufSize),
		inflight: make(map[string]struct{}),
	}
}

// Events returns the channel on which scan events are delivered. For any
// single path the order is ScanStartedMsg then exactly one of
// ScanCompletedMsg or ScanFailedMsg; events for different paths interleave
// arbitrarily.
func (s *Scheduler) Events() <-chan any {
	return s.events
}

// RequestSeed verifies the root exists and schedules a listing of its
// immediate children. The existence check is synchronous so a bad root is
// rejected before any event fires and the caller's current tree stays
// intact. The listing itself runs on a worker.
func (s *Scheduler) RequestSeed(ctx context.Context, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return &RootNotFoundError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return &RootNotFoundError{Path: root, Err: errors.New("not a directory")}
	}
	s.RequestExpand(ctx, root)
	return nil
}

// RequestExpand schedules a listing of path's children and returns
// immediately. A request for a path whose listing is already in flight
// coalesces into it: no second listing runs and no extra events are
// emitted, so both callers observe the same terminal event.
func (s *Scheduler) RequestExpand(ctx context.Context, path string) {
	s.mu.Lock()
	if _, busy := s.inflight[path]; busy {
		s.mu.Unlock()
		s.logger.Debugw("expand coalesced into in-flight scan", "path", path)
		return
	}
	s.inflight[path] = struct{}{}
	s.mu.Unlock()

	s.wg.Add(1)
	go s.scan(ctx, path)
}

// Wait blocks until all in-flight listings have delivered their events.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Close waits for in-flight work and closes the events channel. No request
// method may be called afterwards.
func (s *Scheduler) Close() {
	s.wg.Wait()
	close(s.events)
}

func (s *Scheduler) scan(ctx context.Context, path string) {
	defer s.wg.Done()
	// The in-flight mark is cleared only after the terminal event has been
	// queued, so a rescan requested meanwhile still coalesces.
	defer func() {
		s.mu.Lock()
		delete(s.inflight, path)
		s.mu.Unlock()
	}()

	s.events <- events.ScanStartedMsg{Path: path}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.events <- events.ScanFailedMsg{Path: path, Err: err}
		return
	}
	defer s.sem.Release(1)

	children, err := s.lister.List(ctx, path)
	if err != nil {
		s.logger.Warnw("listing failed", "path", path, "error", err)
		s.events <- events.ScanFailedMsg{Path: path, Err: err}
		return
	}

	s.logger.Debugw("listing complete", "path", path, "children", len(children))
	s.events <- events.ScanCompletedMsg{Path: path, Children: children}
}
