package shell

import (
	"github.com/opsbook-cli/opsbook/shell/internal/detect"
	"github.com/opsbook-cli/opsbook/shell/kind"
)

type SetupChecker interface {
	// CheckSetup returns a non nil error if the shell setup is not correct.
	// The error message contains instructions on how to fix the setup and is
	// safe to display to the user.
	CheckSetup() error
}

func NewSetupChecker() SetupChecker {
	shell := detect.DetectWithDefault()
	switch shell {
	case kind.Zsh:
		return &zshSetupChecker{}
	case kind.Bash, kind.Dash:
		return &bashSetupChecker{}
	default:
		return &nopSetupChecker{}
	}
}

type nopSetupChecker struct{}

var _ SetupChecker = (*nopSetupChecker)(nil)

func (n *nopSetupChecker) CheckSetup() error {
	return nil
}
