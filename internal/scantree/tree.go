// pattern: Functional Core

package scantree

import (
	"gitdash/internal/discovery"
	"gitdash/internal/gitprobe"
)

// ExpansionState tracks where a node is in its listing lifecycle.
type ExpansionState int

const (
	Collapsed ExpansionState = iota // children never listed
	Expanding                       // a listing is in flight
	Expanded                        // children populated
	Failed                          // last listing failed; re-expand allowed
)

func (s ExpansionState) String() string {
	switch s {
	case Expanding:
		return "expanding"
	case Expanded:
		return "expanded"
	case Failed:
		return "failed"
	default:
		return "collapsed"
	}
}

// Node is one entry in the scan tree: a scanned directory, its probe result,
// and its children once expanded. Depth is display indentation only.
type Node struct {
	Status   gitprobe.RepoStatus
	ProbeErr error
	Depth    int
	State    ExpansionState
	Children []*Node
}

// Tree maintains the scanned directory hierarchy keyed by path. It is not
// safe for concurrent use: a single owner applies scan results in the order
// events arrive, and workers never touch it directly.
type Tree struct {
	root  string
	top   []*Node
	index map[string]*Node
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{index: make(map[string]*Node)}
}

// Root returns the path the tree was last seeded from, or "" before any seed.
func (t *Tree) Root() string { return t.root }

// Len returns the number of nodes currently in the tree.
func (t *Tree) Len() int { return len(t.index) }

// Lookup returns the node for path, if present.
func (t *Tree) Lookup(path string) (*Node, bool) {
	n, ok := t.index[path]
	return n, ok
}

// Seed replaces the entire tree with the root's immediate children, in
// listing order. Every node from a previous seed is discarded, so results
// still in flight for the old tree become no-ops on arrival.
func (t *Tree) Seed(root string, entries []discovery.Entry) {
	t.root = root
	t.top = nil
	t.index = make(map[string]*Node)
	t.top = t.makeNodes(entries, 0)
}

// SetChildren atomically replaces the children of the node at path from a
// fresh listing and marks it Expanded. Prior children, including their
// entire subtrees, are evicted first so stale entries cannot linger.
// An unknown path is ignored: the node was discarded by a superseding seed.
func (t *Tree) SetChildren(path string, entries []discovery.Entry) {
	n, ok := t.index[path]
	if !ok {
		return
	}
	t.evict(n.Children)
	n.Children = t.makeNodes(entries, n.Depth+1)
	n.State = Expanded
}

// SetState updates the expansion state of the node at path. Returns false
// when the path is no longer in the tree.
func (t *Tree) SetState(path string, state ExpansionState) bool {
	n, ok := t.index[path]
	if !ok {
		return false
	}
	n.State = state
	return true
}

// Flatten returns the nodes in display order: each node immediately followed
// by its children, depth-first, siblings in insertion order.
func (t *Tree) Flatten() []*Node {
	var out []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(t.top)
	return out
}

func (t *Tree) makeNodes(entries []discovery.Entry, depth int) []*Node {
	nodes := make([]*Node, 0, len(entries))
	for _, e := range entries {
		n := &Node{
			Status:   e.Status,
			ProbeErr: e.ProbeErr,
			Depth:    depth,
			State:    Collapsed,
		}
		nodes = append(nodes, n)
		t.index[e.Status.Path] = n
	}
	return nodes
}

func (t *Tree) evict(nodes []*Node) {
	for _, n := range nodes {
		t.evict(n.Children)
		delete(t.index, n.Status.Path)
	}
}
