// pattern: Imperative Shell

// Package osopen launches OS-level helpers for a project path: the platform
// file manager and the operator's editor. Calls are fire-and-forget; the
// dashboard does not depend on their outcome.
package osopen

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Reveal opens path in the platform file manager.
func Reveal(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

// Edit opens path with the configured editor command. The command may carry
// its own arguments ("subl -n"); the path is appended last.
func Edit(editor, path string) error {
	name, args, err := SplitCommand(editor)
	if err != nil {
		return err
	}
	return exec.Command(name, append(args, path)...).Start()
}

// SplitCommand splits an editor command line into binary and leading args.
func SplitCommand(command string) (string, []string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty editor command")
	}
	return fields[0], fields[1:], nil
}
