package detect

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/opsbook-cli/opsbook/display"
	"github.com/opsbook-cli/opsbook/shell/kind"
)

// Shell detection walks up the process tree with ps until it finds a known
// shell, the same way kubie does it.

func runPS(args []string) (string, error) {
	out, err := exec.Command("ps", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("could not run ps: %w", err)
	}
	return string(out), nil
}

// commandOf executes the 'ps' command to get the command line of a process by its PID.
func commandOf(pid string) (string, error) {
	out, err := runPS([]string{"-o", "args=", pid})
	if err != nil {
		return "", fmt.Errorf("could not run ps pid=%s: %w", pid, err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		return "", fmt.Errorf("commandOf: empty output for pid=%s", pid)
	}
	return strings.TrimSpace(lines[0]), nil
}

// parseCommand extracts the command name from a command line string.
func parseCommand(cmd string) string {
	firstSpace := strings.Index(cmd, " ")
	if firstSpace == -1 {
		firstSpace = len(cmd)
	}
	binaryPath := cmd[:firstSpace]
	lastPathSep := strings.LastIndex(binaryPath, string(filepath.Separator))
	binary := binaryPath
	if lastPathSep != -1 {
		binary = binaryPath[lastPathSep+1:]
	}

	// Login shells are prefixed with '-'; strip trailing version suffixes.
	binary = strings.TrimLeft(binary, "-")
	binary = strings.TrimFunc(binary, func(c rune) bool {
		return c >= '0' && c <= '9' || c == '.'
	})

	return binary
}

// detect walks up the process tree to find out which shell is in use.
func detect() (kind.Kind, error) {
	parentPid := fmt.Sprintf("%d", os.Getppid())

	for parentPid != "1" {
		cmd, err := commandOf(parentPid)
		if err != nil {
			return "", err
		}

		name := parseCommand(cmd)
		if kind, ok := kind.ShellKindFromString(name); ok {
			return kind, nil
		}

		parentPid, err = parentOf(parentPid)
		if err != nil {
			return "", err
		}
	}

	return "", errors.New("could not detect shell in use")
}

func DetectWithDefault() kind.Kind {
	knd, err := detect()
	if err != nil {
		shell, ok := kind.ShellKindFromString(parseCommand(os.Getenv("SHELL")))
		if !ok {
			err := errors.New("could not detect your default shell")
			display.FatalErr(err)
		}
		err = fmt.Errorf("could not detect your shell: %w. Defaulting to %s", err, shell)
		display.Error(err)
		return shell
	}
	return knd
}

// parentOf finds the parent PID of a given PID.
func parentOf(pid string) (string, error) {
	out, err := runPS([]string{"-o", "ppid=", pid})
	if err != nil {
		return "", fmt.Errorf("could not get parent of pid=%s: %w", pid, err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		return "", fmt.Errorf("parentOf: empty output for pid=%s", pid)
	}
	return strings.TrimSpace(lines[0]), nil
}
