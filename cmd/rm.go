package cmd

import (
	"github.com/opsbook-cli/opsbook/display"
	"github.com/spf13/cobra"
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:     "rm [runbookID]",
	Short:   "Remove a runbook from the local store",
	Example: "  opsbook rm rb-1f6078134b9b9964",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			display.FatalErr(err)
		}
		defer store.Close()

		if err := store.Delete(args[0]); err != nil {
			display.FatalErr(err)
		}
		display.Success("Removed " + args[0])
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
