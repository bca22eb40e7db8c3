package runbook_test

import (
	"testing"

	"github.com/opsbook-cli/opsbook/runbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		runbook runbook.Runbook
		err     error
	}{
		{
			name:    "no steps",
			runbook: runbook.Runbook{Title: "empty"},
			err:     runbook.ErrParse,
		},
		{
			name: "step missing body",
			runbook: runbook.Runbook{
				Title: "broken",
				Steps: []runbook.Step{
					{Title: "ok", Command: "true"},
					{Title: "missing body"},
				},
			},
			err: runbook.ErrMissingBody,
		},
		{
			name: "step with both command and edit",
			runbook: runbook.Runbook{
				Title: "broken",
				Steps: []runbook.Step{
					{
						Title:   "two bodies",
						Command: "true",
						Edit:    &runbook.Edit{Path: "f", Text: "x"},
					},
				},
			},
			err: runbook.ErrParse,
		},
		{
			name: "edit without text",
			runbook: runbook.Runbook{
				Title: "broken",
				Steps: []runbook.Step{
					{Title: "empty edit", Edit: &runbook.Edit{Path: "f"}},
				},
			},
			err: runbook.ErrMissingBody,
		},
		{
			name: "valid",
			runbook: runbook.Runbook{
				Title: "ok",
				Steps: []runbook.Step{
					{Title: "cmd", Command: "gcc --version"},
					{Title: "edit", Edit: &runbook.Edit{Path: "CMakeLists.txt", Text: "add_executable(demo src/demo.cpp)"}},
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.runbook.Validate()
			if tc.err != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommands(t *testing.T) {
	rb := runbook.Runbook{
		Title: "mixed",
		Steps: []runbook.Step{
			{Title: "build", Command: "colcon build --mixin debug"},
			{Title: "register", Edit: &runbook.Edit{Path: "CMakeLists.txt", Text: "add_executable(demo src/demo.cpp)\ninstall(TARGETS demo)"}},
			{Title: "launch", Command: "ros2 run demo demo_node"},
		},
	}

	cmds := rb.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, "colcon build --mixin debug", cmds[0])
	assert.Equal(t, "# edit CMakeLists.txt: add_executable(demo src/demo.cpp)", cmds[1])
	assert.Equal(t, "ros2 run demo demo_node", cmds[2])
}

func TestMarkdownIsIdempotent(t *testing.T) {
	rb := runbook.Runbook{
		Title:       "GCC module workaround",
		Description: "Load a newer GCC through the module system.",
		Steps: []runbook.Step{
			{Title: "Check version", Command: "gcc --version"},
			{Title: "List modules", Command: "module avail gcc", Precondition: "only if the build fails with a GCC version error"},
			{Title: "Register demo", Edit: &runbook.Edit{Path: "CMakeLists.txt", Text: "add_executable(demo src/demo.cpp)", After: "# targets"}},
		},
	}

	first := rb.Markdown()
	second := rb.Markdown()
	assert.Equal(t, first, second)

	assert.Contains(t, first, "# GCC module workaround")
	assert.Contains(t, first, "gcc --version")
	assert.Contains(t, first, "_only if the build fails with a GCC version error_")
	assert.Contains(t, first, "Edit `CMakeLists.txt` (after `# targets`):")
}
