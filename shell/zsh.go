package shell

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"
	"time"

	"github.com/opsbook-cli/opsbook/runbook"
)

type zsh struct {
	shellCmd string
	// Exported to use in template
	SocketPath string
}

var _ Shell = (*zsh)(nil)

const zshBaseScript = `
# Reference for loading behavior
# https://shreevatsa.wordpress.com/2008/03/30/zshbash-startup-files-loading-order-bashrc-zshrc-etc/

RED=$(tput setaf 1)
RESET=$(tput sgr0)

OPSBOOK_SOCKET_PATH={{.SocketPath}}

if [[ -f "/etc/zshenv" ]] ; then
    source "/etc/zshenv"
elif [[ -f "/etc/zsh/zshenv" ]] ; then
    source "/etc/zsh/zshenv"
fi

if [[ -f "$HOME/.zshenv" ]] ; then
    tmp_ZDOTDIR=$ZDOTDIR
    source "$HOME/.zshenv"
    # If the user has overridden $ZDOTDIR, save it in $_OPSBOOK_USER_ZDOTDIR
    # for later reference and reset $ZDOTDIR
    if [[ "$tmp_ZDOTDIR" != "$ZDOTDIR" ]]; then
        _OPSBOOK_USER_ZDOTDIR=$ZDOTDIR
        ZDOTDIR=$tmp_ZDOTDIR
        unset tmp_ZDOTDIR
    fi
fi

# If a zsh_history file exists, copy it over before zsh initialization so history is maintained
if [[ -f "$HOME/.zsh_history" ]] ; then
    cp $HOME/.zsh_history $ZDOTDIR
fi

OPSBOOK_LOGIN_SHELL=0

case "$OSTYPE" in
  solaris*) OPSBOOK_LOGIN_SHELL=1;;
  darwin*)  OPSBOOK_LOGIN_SHELL=1;;
  linux*)   OPSBOOK_LOGIN_SHELL=1;;
  bsd*)     OPSBOOK_LOGIN_SHELL=1;;
  msys*)    echo "windows os is not supported" ;;
  cygwin*)  echo "windows os is not supported" ;;
  *)        echo "unknown: $OSTYPE" ;;
esac

if [[ -f "/etc/zprofile" && "$OPSBOOK_LOGIN_SHELL" == "1" ]] ; then
    source "/etc/zprofile"
elif [[ -f "/etc/zsh/zprofile" && "$OPSBOOK_LOGIN_SHELL" == "1" ]] ; then
    source "/etc/zsh/zprofile"
fi

if [[ -f "${_OPSBOOK_USER_ZDOTDIR:-$HOME}/.zprofile" && "$OPSBOOK_LOGIN_SHELL" == "1" ]] ; then
    source "${_OPSBOOK_USER_ZDOTDIR:-$HOME}/.zprofile"
fi

if [[ -f "/etc/zshrc" ]] ; then
    source "/etc/zshrc"
elif [[ -f "/etc/zsh/zshrc" ]] ; then
    source "/etc/zsh/zshrc"
fi

if [[ -f "${_OPSBOOK_USER_ZDOTDIR:-$HOME}/.zshrc" ]] ; then
    source "${_OPSBOOK_USER_ZDOTDIR:-$HOME}/.zshrc"
fi

if [[ -f "/etc/zlogin" && "$OPSBOOK_LOGIN_SHELL" == "1" ]] ; then
    source "/etc/zlogin"
elif [[ -f "/etc/zsh/zlogin" && "$OPSBOOK_LOGIN_SHELL" == "1" ]] ; then
    source "/etc/zsh/zlogin"
fi

if [[ -f "${_OPSBOOK_USER_ZDOTDIR:-$HOME}/.zlogin" && "$OPSBOOK_LOGIN_SHELL" == "1" ]] ; then
    source "${_OPSBOOK_USER_ZDOTDIR:-$HOME}/.zlogin"
fi

unset _OPSBOOK_USER_ZDOTDIR

`

const zshRunScript = `
if ! whence -v __opsbook_run_pre_exec__ >/dev/null; then
echo "${RED} Your shell is not configured to use opsbook. Please run the following commands: ${RESET}"
echo
echo "${RED}> echo 'eval \"\$(opsbook init zsh)\"' >> ~/.zshrc${RESET}"
echo "${RED}> source ~/.zshrc${RESET}"
exit 1
fi

echo
echo "Press enter to run each step. Type 'exit' or press 'ctrl+d' to stop running."
`

func (z *zsh) SpawnRunbookRunner(ctx context.Context, rb *runbook.Runbook) (*exec.Cmd, error) {
	tmp := os.TempDir()
	zshrcPath := filepath.Join(tmp, ".zshrc")
	zshrc, err := os.Create(zshrcPath)
	if err != nil {
		return nil, err
	}
	defer zshrc.Close()

	t := template.Must(template.New("zshrc").Parse(zshBaseScript + zshRunScript))

	if err := t.Execute(zshrc, z); err != nil {
		return nil, err
	}

	// Inherit the next step from the environment if we are in a subshell
	nextStep := os.Getenv("OPSBOOK_NEXT_STEP")
	if nextStep == "" {
		nextStep = "1"
	}

	cmd := exec.CommandContext(ctx, z.shellCmd)
	cmd.Env = append(os.Environ(),
		"ZDOTDIR="+tmp,
		"OPSBOOK_CONTEXT=run",
		fmt.Sprintf("OPSBOOK_NEXT_STEP=%s", nextStep),
	)
	cmd.WaitDelay = 500 * time.Millisecond
	return cmd, nil
}
