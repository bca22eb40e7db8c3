package runner_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/opsbook-cli/opsbook/runbook"
	"github.com/opsbook-cli/opsbook/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommander records every command it is asked to run and fails at a
// configurable index.
type fakeCommander struct {
	ran    []string
	failAt int
}

func newFakeCommander() *fakeCommander {
	return &fakeCommander{failAt: -1}
}

func (f *fakeCommander) Run(ctx context.Context, command string) error {
	idx := len(f.ran)
	f.ran = append(f.ran, command)
	if idx == f.failAt {
		// run a real process so the error carries a real exit code
		return exec.Command("sh", "-c", "exit 7").Run()
	}
	return nil
}

func testRunbook() *runbook.Runbook {
	return &runbook.Runbook{
		Title: "cluster access",
		Steps: []runbook.Step{
			{Title: "log in", Command: "ssh user@host"},
			{Title: "check queue", Command: "squeue -u user"},
			{Title: "check gpus", Command: "nvidia-smi"},
		},
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "dry-run", runner.DryRun.String())
	assert.Equal(t, "execute", runner.Execute.String())
	assert.Equal(t, "", runner.Mode(42).String())
}

func TestRunExecutesStepsInOrder(t *testing.T) {
	fake := newFakeCommander()
	r := runner.New(
		runner.WithCommander(fake),
		runner.WithOutput(&bytes.Buffer{}),
	)

	err := r.Run(context.Background(), testRunbook(), runner.Execute)
	require.NoError(t, err)
	assert.Equal(t, []string{"ssh user@host", "squeue -u user", "nvidia-smi"}, fake.ran)
}

func TestRunHaltsOnFirstFailure(t *testing.T) {
	fake := newFakeCommander()
	fake.failAt = 1
	r := runner.New(
		runner.WithCommander(fake),
		runner.WithOutput(&bytes.Buffer{}),
	)

	err := r.Run(context.Background(), testRunbook(), runner.Execute)
	require.Error(t, err)

	var serr *runner.StepError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Index)
	assert.Equal(t, 7, serr.ExitCode)

	// the step after the failing one is never attempted
	assert.Len(t, fake.ran, 2)
}

func TestDryRunNeverInvokesCommands(t *testing.T) {
	fake := newFakeCommander()
	var out bytes.Buffer
	r := runner.New(
		runner.WithCommander(fake),
		runner.WithOutput(&out),
	)

	err := r.Run(context.Background(), testRunbook(), runner.DryRun)
	require.NoError(t, err)
	assert.Empty(t, fake.ran)
	assert.Contains(t, out.String(), "ssh user@host")
	assert.Contains(t, out.String(), "nvidia-smi")
}

func TestPreconditionDeclinedSkipsStep(t *testing.T) {
	rb := &runbook.Runbook{
		Title: "gcc workaround",
		Steps: []runbook.Step{
			{Title: "check version", Command: "gcc --version"},
			{Title: "load module", Command: "module load gcc/11.2.0", Precondition: "only if the build fails with a GCC version error"},
			{Title: "rebuild", Command: "colcon build --mixin debug"},
		},
	}

	fake := newFakeCommander()
	r := runner.New(
		runner.WithCommander(fake),
		runner.WithOutput(&bytes.Buffer{}),
		runner.WithConfirm(func(step runbook.Step) (bool, error) {
			return false, nil
		}),
	)

	err := r.Run(context.Background(), rb, runner.Execute)
	require.NoError(t, err)
	assert.Equal(t, []string{"gcc --version", "colcon build --mixin debug"}, fake.ran)
}

func TestCancelledContextAbortsRemainingSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := newFakeCommander()
	r := runner.New(
		runner.WithCommander(fake),
		runner.WithOutput(&bytes.Buffer{}),
	)

	err := r.Run(ctx, testRunbook(), runner.Execute)
	require.Error(t, err)
	assert.ErrorIs(t, err, runner.ErrAborted)
	assert.Empty(t, fake.ran)
}

func TestEditStepAppends(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "CMakeLists.txt")
	require.NoError(t, os.WriteFile(target, []byte("cmake_minimum_required(VERSION 3.8)\n"), 0644))

	rb := &runbook.Runbook{
		Title: "register demo",
		Steps: []runbook.Step{
			{
				Title: "register the demo executable",
				Edit: &runbook.Edit{
					Path: target,
					Text: "add_executable(demo src/demo.cpp)",
				},
			},
		},
	}

	r := runner.New(
		runner.WithCommander(newFakeCommander()),
		runner.WithOutput(&bytes.Buffer{}),
	)
	require.NoError(t, r.Run(context.Background(), rb, runner.Execute))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "cmake_minimum_required(VERSION 3.8)\nadd_executable(demo src/demo.cpp)\n", string(content))
}

func TestEditStepInsertsAfterAnchor(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "rc")
	require.NoError(t, os.WriteFile(target, []byte("# modules\nmodule load cuda\n"), 0644))

	rb := &runbook.Runbook{
		Title: "load gcc",
		Steps: []runbook.Step{
			{
				Title: "load gcc after the marker",
				Edit: &runbook.Edit{
					Path:  target,
					Text:  "module load gcc/11.2.0",
					After: "# modules",
				},
			},
		},
	}

	r := runner.New(
		runner.WithCommander(newFakeCommander()),
		runner.WithOutput(&bytes.Buffer{}),
	)
	require.NoError(t, r.Run(context.Background(), rb, runner.Execute))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "# modules\nmodule load gcc/11.2.0\nmodule load cuda\n", string(content))
}

func TestEditStepMissingAnchorFails(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "rc")
	require.NoError(t, os.WriteFile(target, []byte("module load cuda\n"), 0644))

	rb := &runbook.Runbook{
		Title: "load gcc",
		Steps: []runbook.Step{
			{
				Title: "anchor is gone",
				Edit: &runbook.Edit{
					Path:  target,
					Text:  "module load gcc/11.2.0",
					After: "# modules",
				},
			},
		},
	}

	r := runner.New(
		runner.WithCommander(newFakeCommander()),
		runner.WithOutput(&bytes.Buffer{}),
	)
	err := r.Run(context.Background(), rb, runner.Execute)
	require.Error(t, err)

	var serr *runner.StepError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 0, serr.Index)
}

func TestTranscript(t *testing.T) {
	var transcript bytes.Buffer
	fake := newFakeCommander()
	fake.failAt = 1

	r := runner.New(
		runner.WithCommander(fake),
		runner.WithOutput(&bytes.Buffer{}),
		runner.WithTranscript(&transcript),
	)

	err := r.Run(context.Background(), testRunbook(), runner.Execute)
	require.Error(t, err)

	lines := transcript.String()
	assert.Contains(t, lines, "step=0\tstatus=ok")
	assert.Contains(t, lines, fmt.Sprintf("step=%d\tstatus=failed", 1))
	assert.NotContains(t, lines, "step=2")
}
