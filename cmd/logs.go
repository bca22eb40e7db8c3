package cmd

import (
	"bufio"
	"fmt"

	"github.com/opsbook-cli/opsbook/config"
	"github.com/opsbook-cli/opsbook/display"
	"github.com/opsbook-cli/opsbook/tail"
	"github.com/spf13/cobra"
)

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:     "logs",
	Short:   "Show the most recent run transcript lines",
	Example: "  opsbook logs -n 50",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			display.FatalErr(err)
		}

		rc, err := tail.Tail(cfg.LogPath, int64(logLines))
		if err != nil {
			display.FatalErr(err)
		}
		defer rc.Close()

		scanner := bufio.NewScanner(rc)
		for scanner.Scan() {
			fmt.Println(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			display.Error(err)
		}
	},
}

var logLines int

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().IntVarP(&logLines, "lines", "n", 20, "number of transcript lines to show")
}
