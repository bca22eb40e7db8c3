package cmd

import (
	"github.com/opsbook-cli/opsbook/cmd/internal"
)

func init() {
	rootCmd.AddCommand(internal.InternalCmd)
}
