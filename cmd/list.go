package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/opsbook-cli/opsbook/cmd/component/list"
	"github.com/opsbook-cli/opsbook/display"
	"github.com/opsbook-cli/opsbook/slice"
	"github.com/opsbook-cli/opsbook/storage"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved runbooks",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			display.FatalErr(err)
		}
		defer store.Close()

		infos, err := store.List()
		if err != nil {
			display.FatalErr(err)
		}

		if len(infos) == 0 {
			display.Info("No runbooks saved yet. Save one with: opsbook save <file>")
			return
		}

		if plainFlag {
			for _, info := range infos {
				fmt.Printf("%s\t%s\n", info.ID, info.Title)
			}
			return
		}

		items := slice.Map(infos, func(info storage.Info) list.Item {
			return list.Item{
				TitleText:       info.Title,
				DescriptionText: info.ID,
			}
		})

		m := list.NewModel(items, "Saved Runbooks")
		programOutput := termenv.NewOutput(os.Stdout, termenv.WithColorCache(true))
		p := tea.NewProgram(m, tea.WithOutput(programOutput), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			display.FatalErr(err)
		}
	},
}

var plainFlag bool

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&plainFlag, "plain", false, "print ids and titles without the interactive list")
}
