// pattern: Imperative Shell
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"gitdash/internal/config"
	"gitdash/internal/discovery"
	"gitdash/internal/gitprobe"
	"gitdash/internal/instance"
	"gitdash/internal/logging"
	"gitdash/internal/scheduler"
	"gitdash/internal/tui"
	"gitdash/internal/watcher"
)

var version = "dev"

func main() {
	rootFlag := flag.StringP("root", "r", "", "scan root (overrides config)")
	configDir := flag.StringP("config-dir", "c", "", "config directory (default: ~/.config/gitdash)")
	logLevel := flag.String("log-level", "", "minimum log level (overrides config)")
	printMode := flag.BoolP("print", "p", false, "print the top-level listing to stdout and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("gitdash", version)
		return
	}

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	if *rootFlag != "" {
		cfg.Root = *rootFlag
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if cfg.Root == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.Root = wd
		}
	}

	if *printMode {
		prober := gitprobe.New()
		prober.Timeout = cfg.ProbeTimeout()
		if err := printListing(os.Stdout, discovery.NewLister(prober), cfg.Root); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runTUI(cfg)
}

// loadConfig loads the configuration from the specified directory or default location.
func loadConfig(configDir string) (config.Config, error) {
	if configDir != "" {
		return config.LoadFromDir(configDir)
	}
	return config.Load()
}

// printListing writes a one-shot table of the root's immediate children,
// for scripting and quick checks without the TUI.
func printListing(w io.Writer, lister *discovery.Lister, root string) error {
	entries, err := lister.List(context.Background(), root)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FOLDER\tGIT\tBRANCH\tSTATUS\tREMOTE")
	for _, e := range entries {
		s := e.Status
		git, branch, state, remote := "no", "-", "-", "-"
		if s.IsRepo {
			git = "yes"
			state = s.Clean.String()
			if s.Branch != "" {
				branch = s.Branch
			}
			if s.RemoteURL != "" {
				remote = s.RemoteURL
			}
		}
		if e.ProbeErr != nil {
			git = "error"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Name(), git, branch, state, remote)
	}
	return tw.Flush()
}

// runTUI launches the interactive dashboard.
func runTUI(cfg config.Config) {
	dataDir := config.DataDir()

	// Acquire single-instance lock
	fl, err := instance.Lock(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer instance.Cleanup(fl)

	logManager, err := logging.NewManager(logging.Config{
		FilePath:   filepath.Join(dataDir, "gitdash.log"),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      cfg.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Infow("application starting", "root", cfg.Root, "workers", cfg.Workers)

	prober := gitprobe.New()
	prober.Timeout = cfg.ProbeTimeout()
	lister := discovery.NewLister(prober)
	sched := scheduler.New(lister, logManager.For("scheduler"), cfg.Workers)

	// The watcher is optional: scanning works without change notifications.
	w, err := watcher.New(logManager.For("watcher"))
	if err != nil {
		appLogger.Warnw("watcher unavailable", "error", err)
		w = nil
	}

	model := tui.NewModel(&cfg, sched, w, logManager.For("tui"))
	p := tea.NewProgram(model, tea.WithAltScreen())

	if w != nil {
		defer w.Close()
		go func() {
			for msg := range w.Events() {
				p.Send(msg)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		appLogger.Errorw("application exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	appLogger.Info("application stopped")
}
