package internal

import (
	"context"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/opsbook-cli/opsbook/display"
	"github.com/opsbook-cli/opsbook/param"
	"github.com/opsbook-cli/opsbook/server/run"
	"github.com/spf13/cobra"
)

// setParamCmd represents the set-param command
var setParamCmd = &cobra.Command{
	Use:   "set-param",
	Short: "Prompt the user to set one or more parameters for their runbook",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cl, err := run.NewDefaultClient(ctx)
		if err != nil {
			display.Error(err)
			os.Exit(1)
		}

		state, err := cl.CurrentState()
		if err != nil {
			display.Error(err)
			os.Exit(1)
		}

		command := state.CommandWithSetParams()
		params := param.Extract(command)
		// Exit early
		if len(params) == 0 {
			return
		}

		fields := paramFields(ctx, params)

		var fs []huh.Field
		note := huh.NewNote().Title(command).Description("Set Parameters")
		fs = append(fs, note)
		for _, p := range params {
			fs = append(fs, fields[p])
		}

		paramGroup := huh.NewGroup(fs...).Title(command).WithTheme(huh.ThemeDracula())

		if err := huh.NewForm(paramGroup).Run(); err != nil {
			display.Error(err)
			os.Exit(1)
		}

		newParams := map[string]string{}
		for _, f := range fs {
			i, ok := f.(*huh.Input)
			if !ok {
				continue
			}
			strVal, ok := i.GetValue().(string)
			if !ok {
				continue
			}
			newParams[i.GetKey()] = strVal
		}

		if err := cl.SetParams(newParams); err != nil {
			display.Error(err)
			os.Exit(1)
		}
	},
}

func init() {
	InternalCmd.AddCommand(setParamCmd)
}

func paramFields(ctx context.Context, params []string) map[string]huh.Field {
	fields := map[string]huh.Field{}

	for _, p := range params {
		if _, ok := fields[p]; ok {
			continue
		}
		fields[p] = huh.NewInput().Title("Set " + p).Key(p)
	}
	return fields
}
