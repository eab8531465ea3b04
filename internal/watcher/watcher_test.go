package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWatch_DirectoryCreationNotifies(t *testing.T) {
	root := t.TempDir()

	w, err := New(zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if err := w.Watch(root); err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := os.Mkdir(filepath.Join(root, "newproject"), 0755); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-w.Events():
		if msg.Path != root {
			t.Errorf("expected notification for %s, got %s", root, msg.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for root change notification")
	}
}

func TestWatch_RepointDropsOldRoot(t *testing.T) {
	oldRoot := t.TempDir()
	newRoot := t.TempDir()

	w, err := New(zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if err := w.Watch(oldRoot); err != nil {
		t.Fatalf("watch old: %v", err)
	}
	if err := w.Watch(newRoot); err != nil {
		t.Fatalf("watch new: %v", err)
	}

	if err := os.Mkdir(filepath.Join(newRoot, "proj"), 0755); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-w.Events():
		if msg.Path != newRoot {
			t.Errorf("expected notification for new root, got %s", msg.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for notification on new root")
	}
}

func TestWatch_MissingRoot(t *testing.T) {
	w, err := New(zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	if err := w.Watch("/nonexistent/root"); err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}

func TestClose_ClosesEventsChannel(t *testing.T) {
	w, err := New(zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	select {
	case _, ok := <-w.Events():
		if ok {
			t.Error("expected closed channel after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after Close")
	}
}
