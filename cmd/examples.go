package cmd

import (
	"fmt"
	"os"

	"github.com/opsbook-cli/opsbook/display"
	"github.com/opsbook-cli/opsbook/runbook/builtin"
	"github.com/spf13/cobra"
)

// examplesCmd represents the examples command
var examplesCmd = &cobra.Command{
	Use:   "examples [name]",
	Short: "List or copy the built-in example runbooks",
	Example: `
  opsbook examples
  opsbook examples cluster-access
  opsbook examples gcc-module --save
  `,
	Long: `
  Without arguments, examples lists the runbooks shipped with opsbook.

  With a name, the example's YAML is written to the current directory, or
  saved straight to the local store with --save.
  `,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: builtin.Names(),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			for _, name := range builtin.Names() {
				rb, err := builtin.Load(name)
				if err != nil {
					display.FatalErr(err)
				}
				fmt.Printf("%s\t%s\n", name, rb.Title)
			}
			return
		}

		name := args[0]

		if saveExampleFlag {
			rb, err := builtin.Load(name)
			if err != nil {
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
			display.Success("Saved example " + name + " as " + id)
			return
		}

		data, err := builtin.Raw(name)
		if err != nil {
			display.FatalErr(err)
		}
		fileName := name + ".yaml"
		if err := os.WriteFile(fileName, data, 0644); err != nil {
			display.FatalErr(err)
		}
		display.Success("Wrote " + fileName)
	},
}

var saveExampleFlag bool

func init() {
	rootCmd.AddCommand(examplesCmd)
	examplesCmd.Flags().BoolVar(&saveExampleFlag, "save", false, "save the example to the local store")
}
