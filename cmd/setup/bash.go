package setup

import (
	"embed"
	"fmt"

	"github.com/spf13/cobra"
)

//go:embed opsbook.bash
var bashSetupScript embed.FS

const bashSetupScriptName = "opsbook.bash"

var BashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Output shell setup for bash",
	Long:  `Output shell setup for bash`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := bashSetupScript.ReadFile(bashSetupScriptName)
		if err != nil {
			return err
		}
		fmt.Println(string(content))
		return nil
	},
}

// DashCmd reuses the bash setup, dash sessions are spawned through bash.
var DashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Output shell setup for dash",
	Long:  `Output shell setup for dash`,
	RunE:  BashCmd.RunE,
}

var SupportedShells = []string{"zsh", "bash", "dash"}
