package markdown_test

import (
	"testing"

	"github.com/opsbook-cli/opsbook/export/markdown"
	"github.com/opsbook-cli/opsbook/runbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	rb := &runbook.Runbook{
		Title:       "HPC cluster access",
		Description: "Log in and attach to a running job.",
		Steps: []runbook.Step{
			{Title: "Log in", Command: "ssh user@host"},
			{Title: "Check GPUs", Command: "nvidia-smi", Precondition: "only on GPU nodes"},
			{Title: "Register demo", Edit: &runbook.Edit{Path: "CMakeLists.txt", Text: "add_executable(demo src/demo.cpp)"}},
		},
	}

	out, err := markdown.Render(rb)
	require.NoError(t, err)

	assert.Contains(t, out, "# HPC cluster access")
	assert.Contains(t, out, "> Log in and attach to a running job.")
	assert.Contains(t, out, "## 1. Log in")
	assert.Contains(t, out, "ssh user@host")
	assert.Contains(t, out, "_only on GPU nodes_")
	assert.Contains(t, out, "## 3. Register demo")
	assert.Contains(t, out, "edit CMakeLists.txt")

	// rendering the same runbook twice yields identical output
	again, err := markdown.Render(rb)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}
