package builtin_test

import (
	"testing"

	"github.com/opsbook-cli/opsbook/runbook/builtin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	names := builtin.Names()
	assert.Equal(t, []string{"cluster-access", "conda-env", "gcc-module", "sim-build"}, names)
}

func TestLoadAllExamples(t *testing.T) {
	for _, name := range builtin.Names() {
		t.Run(name, func(t *testing.T) {
			rb, err := builtin.Load(name)
			require.NoError(t, err)
			require.NotNil(t, rb)
			assert.NotEmpty(t, rb.Title)
			assert.NoError(t, rb.Validate())
		})
	}
}

func TestLoadUnknownExample(t *testing.T) {
	_, err := builtin.Load("does-not-exist")
	require.Error(t, err)

	_, err = builtin.Raw("does-not-exist")
	require.Error(t, err)
}

func TestClusterAccessCommands(t *testing.T) {
	rb, err := builtin.Load("cluster-access")
	require.NoError(t, err)

	cmds := rb.Commands()
	require.Len(t, cmds, 4)
	assert.Equal(t, "ssh <user>@<host>", cmds[0])
	assert.Equal(t, "squeue -u <user>", cmds[1])
	assert.Equal(t, "srun --jobid=<jobid> --pty bash", cmds[2])
	assert.Equal(t, "nvidia-smi", cmds[3])
}
