package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"gitdash/internal/config"
	"gitdash/internal/scantree"
	"gitdash/internal/scheduler"
	"gitdash/internal/watcher"
)

// Model represents the dashboard state: the scan tree plus view concerns
// (cursor, collapse toggles, root input). The tree is mutated only here, in
// the update loop; workers hand results over as messages.
type Model struct {
	width  int
	height int
	styles *Styles

	cfg    *config.Config
	logger *zap.SugaredLogger
	sched  *scheduler.Scheduler
	watch  *watcher.Watcher // optional, nil disables change hints

	tree      *scantree.Tree
	rows      []*scantree.Node
	cursor    int
	collapsed map[string]bool // display-only; children stay in the tree

	rootInput   textinput.Model
	editingRoot bool
	spin        spinner.Model

	scanning    int    // in-flight scan count, drives the spinner
	pendingSeed string // root whose completion replaces the whole tree
	status      string
	errText     string
}

// NewModel creates the dashboard model. The watcher may be nil.
func NewModel(cfg *config.Config, sched *scheduler.Scheduler, w *watcher.Watcher, logger *zap.SugaredLogger) Model {
	styles := NewStyles(cfg.Theme)

	input := textinput.New()
	input.Placeholder = "/path/to/projects"
	input.SetValue(cfg.Root)
	input.CharLimit = 512

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		styles:    styles,
		cfg:       cfg,
		logger:    logger,
		sched:     sched,
		watch:     w,
		tree:      scantree.New(),
		collapsed: make(map[string]bool),
		rootInput: input,
		spin:      spin,
	}
}

// Init kicks off the initial root scan and the event pump.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, m.waitForScanEvent()}
	if m.cfg.Root != "" {
		cmds = append(cmds, m.seedCmd(m.cfg.Root))
	}
	return tea.Batch(cmds...)
}

// seedResultMsg carries the synchronous outcome of a seed request. The
// listing itself arrives later through the event pump.
type seedResultMsg struct {
	root string
	err  error
}

func (m Model) seedCmd(root string) tea.Cmd {
	return func() tea.Msg {
		return seedResultMsg{root: root, err: m.sched.RequestSeed(context.Background(), root)}
	}
}

func (m Model) expandCmd(path string) tea.Cmd {
	return func() tea.Msg {
		m.sched.RequestExpand(context.Background(), path)
		return nil
	}
}

// waitForScanEvent blocks on the scheduler's event channel; re-issued after
// every delivered event so the pump never stalls.
func (m Model) waitForScanEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.sched.Events()
		if !ok {
			return nil
		}
		return ev
	}
}
