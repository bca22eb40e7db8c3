package cmd

import (
	"fmt"

	"github.com/opsbook-cli/opsbook/config"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Shows the opsbook cli version",
	Long:  "Shows the opsbook cli version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("version:", config.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
