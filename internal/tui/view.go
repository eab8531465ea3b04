package tui

import (
	"fmt"
	"strings"

	"gitdash/internal/scantree"
)

const (
	nameColWidth   = 34
	branchColWidth = 18
	stateColWidth  = 9
)

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.TitleStyle().Render("Git Project Dashboard"))
	b.WriteString("\n")

	if m.editingRoot {
		b.WriteString("Root: " + m.rootInput.View())
	} else {
		root := m.tree.Root()
		if root == "" {
			root = m.rootInput.Value()
		}
		b.WriteString(m.styles.SubtitleStyle().Render("Root: " + root + "  (i to edit, s to rescan)"))
	}
	b.WriteString("\n")

	if m.scanning > 0 {
		b.WriteString(m.spin.View() + " " + m.status)
	} else if m.status != "" {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	if m.errText != "" {
		b.WriteString(m.styles.ErrorStyle().Render(m.errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.styles.HeaderStyle().Render(fmt.Sprintf(
		"  %-*s %-3s %-*s %-*s %s",
		nameColWidth, "FOLDER", "GIT", branchColWidth, "BRANCH", stateColWidth, "STATUS", "REMOTE",
	)))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(m.styles.SubtitleStyle().Render("  no directories scanned yet"))
		b.WriteString("\n")
	}
	for i, n := range m.rows {
		b.WriteString(m.renderRow(n, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpStyle().Render(
		"enter expand/collapse · r rescan · s rescan root · o reveal · e editor · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderRow(n *scantree.Node, selected bool) string {
	indent := strings.Repeat("  ", n.Depth)
	name := truncate(indent+expansionMarker(n)+" "+n.Status.Name(), nameColWidth)

	var gitMark string
	if n.Status.IsRepo {
		gitMark = m.styles.RepoMarkStyle().Render("✓") + "  "
	} else if n.ProbeErr != nil {
		gitMark = m.styles.ErrorStyle().Render("!") + "  "
	} else {
		gitMark = m.styles.NonRepoMarkStyle().Render("·") + "  "
	}

	branch := truncate(n.Status.Branch, branchColWidth)

	var state string
	if n.Status.IsRepo {
		state = m.styles.CleanlinessStyle(n.Status.Clean).Render(
			fmt.Sprintf("%-*s", stateColWidth, n.Status.Clean.String()))
	} else {
		state = strings.Repeat(" ", stateColWidth)
	}

	remote := m.styles.RemoteStyle().Render(n.Status.RemoteURL)

	row := fmt.Sprintf("  %-*s %s %-*s %s %s",
		nameColWidth, name, gitMark, branchColWidth, branch, state, remote)

	if selected {
		return m.styles.SelectedStyle().Render(row)
	}
	return row
}

func expansionMarker(n *scantree.Node) string {
	switch n.State {
	case scantree.Expanding:
		return "…"
	case scantree.Expanded:
		return "▾"
	case scantree.Failed:
		return "✗"
	default:
		return "▸"
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
