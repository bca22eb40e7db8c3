package setup

import (
	"embed"
	"fmt"

	"github.com/spf13/cobra"
)

//go:embed opsbook.zsh
var zshSetupScript embed.FS

const zshSetupScriptName = "opsbook.zsh"

var ZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Output shell setup for zsh",
	Long:  `Output shell setup for zsh`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := zshSetupScript.ReadFile(zshSetupScriptName)
		if err != nil {
			return err
		}
		fmt.Println(string(content))
		return nil
	},
}
