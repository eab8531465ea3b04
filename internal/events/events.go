// package events contains message types shared between the scan engine and
// its consumers (tui, print mode).
package events

import "gitdash/internal/discovery"

// ScanStartedMsg is sent when a listing for a node begins.
type ScanStartedMsg struct{ Path string }

// ScanCompletedMsg is sent when a listing finishes. Children are in
// directory-listing order. For every path a ScanStartedMsg precedes this.
type ScanCompletedMsg struct {
	Path     string
	Children []discovery.Entry
}

// ScanFailedMsg is sent when a listing fails. For every path a
// ScanStartedMsg precedes this.
type ScanFailedMsg struct {
	Path string
	Err  error
}

// RootChangedMsg is sent by the watcher when directories appear or vanish
// under the scan root.
type RootChangedMsg struct{ Path string }
