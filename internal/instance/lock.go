// pattern: Imperative Shell
package instance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = "gitdash.lock"

// Lock acquires an exclusive file lock for single-instance enforcement.
// Two dashboards sharing one data dir would fight over the log file and
// double-scan, so the second one is refused. Returns the flock handle
// (caller must defer Cleanup) or an error if another instance holds it.
func Lock(dataDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	lockPath := filepath.Join(dataDir, lockFileName)
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another gitdash instance is already running")
	}
	return fl, nil
}

// Cleanup releases the file lock.
func Cleanup(fl *flock.Flock) {
	if fl != nil {
		_ = fl.Unlock()
	}
}
