// pattern: Functional Core

package discovery

import "gitdash/internal/gitprobe"

// Entry pairs a scanned directory with its probe outcome.
type Entry struct {
	Status gitprobe.RepoStatus

	// ProbeErr is set when the probe itself failed at the I/O level.
	// The entry is still listed (Status.IsRepo is false) so a directory
	// never silently disappears from the operator's view.
	ProbeErr error
}
