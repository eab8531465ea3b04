// pattern: Imperative Shell

package gitprobe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Cleanliness reports whether a repository's working tree has uncommitted
// changes. The zero value is Unknown so a failed status query is never
// mistaken for a clean tree.
type Cleanliness int

const (
	CleanUnknown Cleanliness = iota // status query failed or timed out
	Clean
	Dirty
)

func (c Cleanliness) String() string {
	switch c {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// RepoStatus describes the version-control state of one directory.
// When IsRepo is false every other field keeps its zero value.
type RepoStatus struct {
	Path       string      // absolute path, identity key
	IsRepo     bool        // a .git directory exists directly under Path
	Branch     string      // current branch; empty when the query failed or yielded nothing
	RemoteURL  string      // URL of the remote named "origin"; empty when not configured
	Clean      Cleanliness // CleanUnknown unless IsRepo and the status query succeeded
	LastCommit time.Time   // committer date of HEAD; zero when unavailable
}

// Name returns the last path element, used as the display name.
func (r RepoStatus) Name() string {
	return filepath.Base(r.Path)
}

// ProbeError reports an I/O-level failure inspecting the directory itself,
// as opposed to "not a repository" which is a normal result.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probing %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// GitRunner executes a git subcommand in dir and returns its trimmed stdout.
type GitRunner func(ctx context.Context, dir string, args ...string) (string, error)

// DefaultTimeout bounds each git subcommand. A hung git (network remote
// helper, locked index) degrades one field instead of freezing a scan.
const DefaultTimeout = 5 * time.Second

// Prober determines repository status by invoking the git CLI.
type Prober struct {
	// Timeout applies per subcommand, not per probe. Zero means DefaultTimeout.
	Timeout time.Duration

	run GitRunner
}

// New creates a Prober that shells out to git on the PATH.
func New() *Prober {
	return &Prober{Timeout: DefaultTimeout, run: runGit}
}

// NewWithRunner creates a Prober with an injected runner.
func NewWithRunner(run GitRunner) *Prober {
	return &Prober{Timeout: DefaultTimeout, run: run}
}

// Probe inspects path and returns its repository status. A directory that is
// not under version control is a normal IsRepo=false result, not an error;
// a *ProbeError is returned only when the directory itself cannot be read.
//
// The four git queries (branch, origin URL, porcelain status, last commit
// date) run independently: a failure degrades only its own field.
func (p *Prober) Probe(ctx context.Context, path string) (RepoStatus, error) {
	status := RepoStatus{Path: path}

	if _, err := os.Stat(path); err != nil {
		return status, &ProbeError{Path: path, Err: err}
	}

	// A repository is identified by a .git directory immediately under path.
	// No upward search: a subdirectory of a repo is not itself a repo.
	gi, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil || !gi.IsDir() {
		return status, nil
	}
	status.IsRepo = true

	if out, err := p.git(ctx, path, "rev-parse", "--abbrev-ref", "HEAD"); err == nil && out != "" {
		status.Branch = out
	}
	if out, err := p.git(ctx, path, "remote", "get-url", "origin"); err == nil && out != "" {
		status.RemoteURL = out
	}
	if out, err := p.git(ctx, path, "status", "--porcelain"); err == nil {
		// Untracked files count as dirty, same as tracked modifications.
		if out == "" {
			status.Clean = Clean
		} else {
			status.Clean = Dirty
		}
	}
	if out, err := p.git(ctx, path, "log", "-1", "--format=%cI"); err == nil && out != "" {
		if t, perr := time.Parse(time.RFC3339, out); perr == nil {
			status.LastCommit = t
		}
	}

	return status, nil
}

func (p *Prober) git(ctx context.Context, dir string, args ...string) (string, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.run(ctx, dir, args...)
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}
