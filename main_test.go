package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitdash/internal/discovery"
	"gitdash/internal/gitprobe"
)

type cannedProber struct {
	statuses map[string]gitprobe.RepoStatus
}

func (c cannedProber) Probe(_ context.Context, path string) (gitprobe.RepoStatus, error) {
	if st, ok := c.statuses[path]; ok {
		return st, nil
	}
	return gitprobe.RepoStatus{Path: path}, nil
}

func TestPrintListing(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"alpha", "plain"} {
		if err := os.Mkdir(filepath.Join(root, name), 0755); err != nil {
			t.Fatal(err)
		}
	}

	alphaPath := filepath.Join(root, "alpha")
	lister := discovery.NewLister(cannedProber{statuses: map[string]gitprobe.RepoStatus{
		alphaPath: {
			Path:      alphaPath,
			IsRepo:    true,
			Branch:    "main",
			RemoteURL: "git@host:org/alpha.git",
			Clean:     gitprobe.Clean,
		},
	}})

	var buf bytes.Buffer
	if err := printListing(&buf, lister, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "FOLDER") {
		t.Errorf("missing header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "alpha") || !strings.Contains(lines[1], "main") || !strings.Contains(lines[1], "clean") {
		t.Errorf("unexpected repo row: %s", lines[1])
	}
	if !strings.Contains(lines[2], "plain") || !strings.Contains(lines[2], "no") {
		t.Errorf("unexpected plain row: %s", lines[2])
	}
}

func TestPrintListing_MissingRoot(t *testing.T) {
	lister := discovery.NewLister(cannedProber{})
	var buf bytes.Buffer
	if err := printListing(&buf, lister, "/nonexistent/root"); err == nil {
		t.Fatal("expected error for missing root")
	}
}
