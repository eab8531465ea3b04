// pattern: Imperative Shell

package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"gitdash/internal/events"
	"gitdash/internal/osopen"
	"gitdash/internal/scantree"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rootInput.Width = min(msg.Width-20, 80)
		return m, nil

	case tea.KeyMsg:
		if m.editingRoot {
			return m.updateRootInput(msg)
		}
		return m.updateKeys(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case seedResultMsg:
		if msg.err != nil {
			// Bad root: reject up front, leave the current tree untouched.
			m.errText = msg.err.Error()
			m.logger.Warnw("seed rejected", "root", msg.root, "error", msg.err)
			return m, nil
		}
		m.errText = ""
		m.pendingSeed = msg.root
		return m, nil

	case events.ScanStartedMsg:
		m.scanning++
		m.tree.SetState(msg.Path, scantree.Expanding)
		m.status = fmt.Sprintf("Scanning %s...", filepath.Base(msg.Path))
		return m, m.waitForScanEvent()

	case events.ScanCompletedMsg:
		m.scanning--
		if msg.Path == m.pendingSeed {
			m.pendingSeed = ""
			m.tree.Seed(msg.Path, msg.Children)
			m.collapsed = make(map[string]bool)
			m.cursor = 0
			if m.watch != nil {
				if err := m.watch.Watch(msg.Path); err != nil {
					m.logger.Warnw("cannot watch root", "path", msg.Path, "error", err)
				}
			}
		} else {
			m.tree.SetChildren(msg.Path, msg.Children)
			delete(m.collapsed, msg.Path)
		}
		m.rebuildRows()
		m.status = fmt.Sprintf("Finished %s (%d entries)", filepath.Base(msg.Path), len(msg.Children))
		return m, m.waitForScanEvent()

	case events.ScanFailedMsg:
		m.scanning--
		if msg.Path == m.pendingSeed {
			m.pendingSeed = ""
		}
		m.tree.SetState(msg.Path, scantree.Failed)
		m.errText = fmt.Sprintf("scan of %s failed: %v", filepath.Base(msg.Path), msg.Err)
		m.logger.Warnw("scan failed", "path", msg.Path, "error", msg.Err)
		return m, m.waitForScanEvent()

	case events.RootChangedMsg:
		m.status = "Directory changes detected — press s to rescan"
		return m, nil
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter", " ":
		if n := m.selected(); n != nil {
			return m.toggleOrExpand(n)
		}

	case "r":
		if n := m.selected(); n != nil {
			return m, m.expandCmd(n.Status.Path)
		}

	case "s":
		root := m.rootInput.Value()
		if root != "" {
			return m, m.seedCmd(root)
		}

	case "i":
		m.editingRoot = true
		m.rootInput.Focus()
		return m, nil

	case "o":
		if n := m.selected(); n != nil {
			if err := osopen.Reveal(n.Status.Path); err != nil {
				m.logger.Warnw("reveal failed", "path", n.Status.Path, "error", err)
			}
		}

	case "e":
		if n := m.selected(); n != nil {
			if err := osopen.Edit(m.cfg.Editor, n.Status.Path); err != nil {
				m.logger.Warnw("editor launch failed", "path", n.Status.Path, "error", err)
			}
		}
	}
	return m, nil
}

func (m Model) updateRootInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editingRoot = false
		m.rootInput.Blur()
		if root := m.rootInput.Value(); root != "" {
			return m, m.seedCmd(root)
		}
		return m, nil
	case "esc":
		m.editingRoot = false
		m.rootInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.rootInput, cmd = m.rootInput.Update(msg)
	return m, cmd
}

// toggleOrExpand collapses an expanded node (display-only, children kept),
// re-opens a display-collapsed one, and requests a listing otherwise.
func (m Model) toggleOrExpand(n *scantree.Node) (tea.Model, tea.Cmd) {
	path := n.Status.Path
	switch {
	case m.collapsed[path]:
		delete(m.collapsed, path)
		m.rebuildRows()
		return m, nil
	case n.State == scantree.Expanded:
		m.collapsed[path] = true
		m.rebuildRows()
		return m, nil
	default:
		return m, m.expandCmd(path)
	}
}

func (m *Model) selected() *scantree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

// rebuildRows recomputes visible rows from the tree, skipping the subtrees
// of display-collapsed nodes.
func (m *Model) rebuildRows() {
	all := m.tree.Flatten()
	rows := make([]*scantree.Node, 0, len(all))
	skipBelow := -1
	for _, n := range all {
		if skipBelow >= 0 {
			if n.Depth > skipBelow {
				continue
			}
			skipBelow = -1
		}
		rows = append(rows, n)
		if m.collapsed[n.Status.Path] {
			skipBelow = n.Depth
		}
	}
	m.rows = rows

	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
