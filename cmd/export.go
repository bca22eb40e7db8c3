package cmd

import (
	"github.com/opsbook-cli/opsbook/display"
	"github.com/opsbook-cli/opsbook/export/markdown"
	"github.com/opsbook-cli/opsbook/redact"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [runbook]",
	Short: "Export a runbook to a markdown file",
	Example: `
  opsbook export rb-1f6078134b9b9964
  opsbook export cluster-setup.yaml --output cluster.md
  opsbook export rb-1f6078134b9b9964 --redact
  `,
	Long: `
  Export renders a runbook's steps to a markdown file and copies the content
  to the clipboard.

  With --redact you can replace secrets in commands with <placeholders> or
  drop steps entirely before anything is written.
  `,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "export")

		rb, err := resolveRunbook(ctx, args[0])
		if err != nil {
			logger.Error("failed to load runbook", "ref", args[0], "error", err)
			display.FatalErr(err)
		}

		if redactFlag {
			steps, err := redact.Steps(rb.Steps)
			if err != nil {
				display.FatalErr(err)
			}
			rb.Steps = steps
		}

		svc := markdown.NewService(exportOutput)
		if err := svc.ToMarkdownFile(ctx, rb); err != nil {
			display.FatalErr(err)
		}
	},
}

var (
	exportOutput string
	redactFlag   bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file name")
	exportCmd.Flags().BoolVar(&redactFlag, "redact", false, "redact secrets before exporting")
}
