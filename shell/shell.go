package shell

import (
	"context"
	"errors"
	"os/exec"

	"github.com/opsbook-cli/opsbook/runbook"
	"github.com/opsbook-cli/opsbook/shell/internal/detect"
	"github.com/opsbook-cli/opsbook/shell/kind"
)

// Shell spawns subshells wired to an interactive run session.
type Shell interface {
	// SpawnRunbookRunner starts a subshell whose hooks step through the
	// runbook via the session server listening on the socket path.
	SpawnRunbookRunner(ctx context.Context, rb *runbook.Runbook) (*exec.Cmd, error)
}

func New(socketPath string) Shell {
	return NewWithOverride(socketPath, "")
}

// NewWithOverride skips shell detection when override names a supported
// shell.
func NewWithOverride(socketPath string, override string) Shell {
	shell, ok := kind.ShellKindFromString(override)
	if !ok {
		shell = detect.DetectWithDefault()
	}
	switch shell {
	case kind.Zsh:
		return &zsh{
			shellCmd:   "zsh",
			SocketPath: socketPath,
		}
	case kind.Dash:
		fallthrough
	case kind.Bash:
		return &bash{
			shellCmd:   "bash",
			SocketPath: socketPath,
		}
	default:
		return &unsupported{}
	}
}

var ErrUnsupportedShell = errors.New("opsbook doesn't support your current shell")

type unsupported struct{}

func (u *unsupported) SpawnRunbookRunner(ctx context.Context, rb *runbook.Runbook) (*exec.Cmd, error) {
	return nil, ErrUnsupportedShell
}
