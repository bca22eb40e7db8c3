package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/opsbook-cli/opsbook/display"
	"github.com/spf13/cobra"
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view [runbook]",
	Short: "View a runbook's steps without running anything",
	Example: `
  opsbook view rb-1f6078134b9b9964
  opsbook view cluster-setup.yaml
  `,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "view")

		rb, err := resolveRunbook(ctx, args[0])
		if err != nil {
			logger.Error("failed to load runbook", "ref", args[0], "error", err)
			display.FatalErr(err)
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			display.FatalErr(err)
		}

		out, err := r.Render(rb.Markdown())
		if err != nil {
			display.FatalErr(err)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
