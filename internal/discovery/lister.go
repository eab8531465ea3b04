// pattern: Imperative Shell

package discovery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gitdash/internal/gitprobe"
)

// ListError reports that a directory could not be enumerated at all
// (missing, permission denied, or not a directory).
type ListError struct {
	Path string
	Err  error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("listing %s: %v", e.Path, e.Err)
}

func (e *ListError) Unwrap() error { return e.Err }

// Prober determines the version-control status of a single directory.
type Prober interface {
	Probe(ctx context.Context, path string) (gitprobe.RepoStatus, error)
}

// Lister enumerates the immediate subdirectories of a path, probing each.
type Lister struct {
	prober Prober
}

// NewLister creates a Lister backed by the given prober.
func NewLister(p Prober) *Lister {
	return &Lister{prober: p}
}

// List returns the immediate directory-type children of path in
// directory-listing order (os.ReadDir, lexical by name), each with a fresh
// probe result. Files are skipped; symlinks are not followed even when they
// point at directories, so a symlink cycle can never be scanned.
//
// A probe failure on one entry does not abort the listing: the entry is
// returned with ProbeErr set and a bare non-repo status. Only a failure to
// read path itself yields an error, as a *ListError.
func (l *Lister) List(ctx context.Context, path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, &ListError{Path: path, Err: err}
	}

	var entries []Entry
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		child := filepath.Join(path, d.Name())

		status, perr := l.prober.Probe(ctx, child)
		if perr != nil {
			status = gitprobe.RepoStatus{Path: child}
		}
		entries = append(entries, Entry{Status: status, ProbeErr: perr})
	}
	return entries, nil
}
