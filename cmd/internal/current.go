package internal

import (
	"fmt"
	"os"

	"github.com/opsbook-cli/opsbook/display"
	"github.com/opsbook-cli/opsbook/server/run"
	"github.com/spf13/cobra"
)

// currentCmd represents the current command
var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Get the command to run",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cl, err := run.NewDefaultClient(ctx)
		if err != nil {
			display.Error(err)
			return
		}

		state, err := cl.CurrentState()
		if err != nil {
			display.Error(err)
			os.Exit(1)
		}
		fmt.Printf("%s", state.CommandWithSetParams())
	},
}

func init() {
	InternalCmd.AddCommand(currentCmd)
}
