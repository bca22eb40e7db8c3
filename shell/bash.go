package shell

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"text/template"
	"time"

	"github.com/opsbook-cli/opsbook/runbook"
)

type bash struct {
	shellCmd string
	// Exported to use in template
	SocketPath string
}

var _ Shell = (*bash)(nil)

const bashrcScript = `
RED=$(tput setaf 1)
RESET=$(tput sgr0)

case "$OSTYPE" in
  solaris*) ;;
  darwin*)  ;;
  linux*)   ;;
  bsd*)     ;;
  msys*)    echo "windows os is not supported" ;;
  cygwin*)  echo "windows os is not supported" ;;
  *)        echo "unknown: $OSTYPE" ;;
esac

OPSBOOK_SOCKET_PATH={{.SocketPath}}

# Reference for loading behavior
# https://shreevatsa.wordpress.com/2008/03/30/zshbash-startup-files-loading-order-bashrc-zshrc-etc/

if shopt -q login_shell; then
    if [[ -f "/etc/profile" ]] ; then
        source "/etc/profile"
    fi

    if [[ -f "$HOME/.bash_profile" ]] ; then
        source "$HOME/.bash_profile"
    elif [[ -f "$HOME/.bash_login" ]] ; then
        source "$HOME/.bash_login"
    elif [[ -f "$HOME/.profile" ]] ; then
        source "$HOME/.profile"
    fi
else
    if [[ -f "/etc/bash.bashrc" ]] ; then
        source "/etc/bash.bashrc"
    fi

    if [[ -f "$HOME/.bashrc" ]] ; then
        source "$HOME/.bashrc"
    fi
fi

if ! type __opsbook_run_pre_exec__ >/dev/null 2>&1; then
echo "${RED} Your shell is not configured to use opsbook. Please run the following commands: ${RESET}"
echo
echo "${RED}> echo 'eval \"\$(opsbook init bash)\"' >> ~/.bashrc${RESET}"
echo "${RED}> source ~/.bashrc${RESET}"
exit 1
fi

echo
echo "Press enter to run each step. Type 'exit' or press 'ctrl+d' to stop running."
`

var bashTemplate *template.Template

func init() {
	bashTemplate = template.Must(template.New("bash").Parse(bashrcScript))
}

func (b *bash) SpawnRunbookRunner(ctx context.Context, rb *runbook.Runbook) (*exec.Cmd, error) {
	tmpDir := os.TempDir()
	bashrc, err := os.CreateTemp(tmpDir, "opsbook-bashrc-*.bash")
	if err != nil {
		return nil, err
	}
	defer bashrc.Close()

	if err := bashTemplate.Execute(bashrc, b); err != nil {
		return nil, err
	}

	nextStep := os.Getenv("OPSBOOK_NEXT_STEP")
	if nextStep == "" {
		nextStep = "1"
	}

	cmd := exec.CommandContext(ctx, b.shellCmd, "--rcfile", bashrc.Name())
	cmd.Env = append(os.Environ(),
		"OPSBOOK_CONTEXT=run",
		fmt.Sprintf("OPSBOOK_NEXT_STEP=%s", nextStep),
	)
	cmd.WaitDelay = 500 * time.Millisecond
	return cmd, nil
}
