package redact

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/opsbook-cli/opsbook/runbook"
	"github.com/opsbook-cli/opsbook/slice"
	"github.com/opsbook-cli/opsbook/theme"
)

// Steps lets users redact one or more command steps before export.
// It returns a new step slice with the sensitive data replaced or the step
// removed entirely.
//
// NOTE: It is possible for users to completely remove some steps.
func Steps(steps []runbook.Step) ([]runbook.Step, error) {
	var fs []huh.Field
	description := "Replace sensitive data with <placeholders>. To remove a step, simply delete the text."
	note := huh.NewNote().Title("Redact Secrets and PII").Description(description)
	fs = append(fs, note)

	for i, step := range steps {
		if step.Command == "" {
			continue
		}
		fs = append(fs, redactField(step.Command, strconv.Itoa(i)))
	}

	customTheme := theme.New()

	group := huh.NewGroup(fs...).Title("Redact Steps").WithTheme(customTheme)

	if err := huh.NewForm(group).WithTheme(customTheme).Run(); err != nil {
		return nil, fmt.Errorf("failed to run redaction form: %w", err)
	}

	redacted := make([]runbook.Step, len(steps))
	copy(redacted, steps)

	for _, f := range fs {
		in, ok := f.(*huh.Input)
		if !ok {
			continue
		}
		strVal, ok := in.GetValue().(string)
		if !ok {
			continue
		}

		idx, err := strconv.Atoi(in.GetKey())
		if err != nil {
			continue
		}
		redacted[idx].Command = strVal
	}

	redacted = slice.Filter(redacted, func(step runbook.Step) bool {
		return step.Command != "" || step.Edit != nil
	})
	return redacted, nil
}

func redactField(cmd string, key string) huh.Field {
	return huh.NewInput().Value(&cmd).Key(key).WithTheme(theme.New())
}
