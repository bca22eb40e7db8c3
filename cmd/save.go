package cmd

import (
	"github.com/opsbook-cli/opsbook/display"
	"github.com/opsbook-cli/opsbook/runbook/parser"
	"github.com/spf13/cobra"
)

// saveCmd represents the save command
var saveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Save a runbook file to the local store",
	Example: `
  opsbook save cluster-setup.yaml
  opsbook save notes/gcc-workaround.md
  `,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := loggerFromCtx(cmd.Context()).With("command", "save")

		rb, err := parser.Load(args[0])
		if err != nil {
			logger.Error("failed to parse runbook", "file", args[0], "error", err)
			display.FatalErr(err)
		}

		store, err := openStore()
		if err != nil {
			display.FatalErr(err)
		}
		defer store.Close()

		id, err := store.Save(rb)
		if err != nil {
			display.FatalErr(err)
		}

		display.Success("Saved runbook " + rb.Title + " as " + id)
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
