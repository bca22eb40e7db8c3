package run

import (
	"context"
	"fmt"
	"testing"

	"github.com/opsbook-cli/opsbook/idgen"
	"github.com/opsbook-cli/opsbook/runbook"
	"github.com/stretchr/testify/assert"
)

func TestRunServer(t *testing.T) {
	rb := &runbook.Runbook{
		Title: "test",
		Steps: []runbook.Step{
			{
				Title:   "step 0",
				Command: "idx_0",
			},
			{
				Title:   "step 1",
				Command: "idx_1",
			},
			{
				Title:   "step 2",
				Command: "idx_2",
			},
		},
	}

	t.Run("TestCurrentCommand", func(t *testing.T) {
		srv, cl, cleanup := newTestServerWithClient(t, rb)
		t.Cleanup(func() { cleanup() })

		assert.Len(t, srv.Commands(), 3)
		assert.Equal(t, "idx_0", srv.Commands()[0].Command)
		assert.Equal(t, "idx_1", srv.Commands()[1].Command)
		assert.Equal(t, "idx_2", srv.Commands()[2].Command)

		st, err := cl.CurrentState()
		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.Equal(t, "idx_0", st.Command)

		t.Run("TestCurrentCommandIdempotent", func(t *testing.T) {
			st, err := cl.CurrentState()
			assert.NoError(t, err)
			assert.NotNil(t, st)
			assert.Equal(t, "idx_0", st.Command)
		})
	})
	t.Run("TestNextCommand", func(t *testing.T) {
		_, cl, cleanup := newTestServerWithClient(t, rb)
		t.Cleanup(func() { cleanup() })

		st, err := cl.CurrentState()
		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.Zero(t, st.Index)

		assert.NoError(t, cl.NextCommand())

		st, err = cl.CurrentState()
		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.Equal(t, 1, st.Index)
		assert.Equal(t, "idx_1", st.Command)
	})
	t.Run("TestNextCommandStopsAtLastStep", func(t *testing.T) {
		_, cl, cleanup := newTestServerWithClient(t, rb)
		t.Cleanup(func() { cleanup() })

		for i := 0; i < 5; i++ {
			assert.NoError(t, cl.NextCommand())
		}

		st, err := cl.CurrentState()
		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.Equal(t, 2, st.Index)
		assert.Equal(t, "idx_2", st.Command)
	})
	t.Run("TestPreviousCommand", func(t *testing.T) {
		_, cl, cleanup := newTestServerWithClient(t, rb)
		t.Cleanup(func() { cleanup() })

		assert.NoError(t, cl.NextCommand())
		assert.NoError(t, cl.PreviousCommand())

		st, err := cl.CurrentState()
		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.Zero(t, st.Index)

		// previous at the first step stays at the first step
		assert.NoError(t, cl.PreviousCommand())
		st, err = cl.CurrentState()
		assert.NoError(t, err)
		assert.Zero(t, st.Index)
	})
	t.Run("TestParams", func(t *testing.T) {
		paramRb := &runbook.Runbook{
			Title: "params",
			Steps: []runbook.Step{
				{Title: "attach", Command: "srun --jobid=<jobid> --pty bash"},
			},
		}
		_, cl, cleanup := newTestServerWithClient(t, paramRb)
		t.Cleanup(func() { cleanup() })

		st, err := cl.CurrentState()
		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.Zero(t, st.Index)
		assert.Len(t, st.Params, 0)
		assert.Equal(t, "srun --jobid=<jobid> --pty bash", st.CommandWithSetParams())

		assert.NoError(t, cl.SetParams(map[string]string{"<jobid>": "42"}))

		st, err = cl.CurrentState()
		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.Equal(t, "srun --jobid=42 --pty bash", st.CommandWithSetParams())
	})
}

func TestNextCommandAppliedBeforeReturn(t *testing.T) {
	const steps = 50
	rb := &runbook.Runbook{Title: "long"}
	for i := 0; i < steps; i++ {
		rb.Steps = append(rb.Steps, runbook.Step{
			Title:   fmt.Sprintf("step %d", i),
			Command: fmt.Sprintf("idx_%d", i),
		})
	}

	_, cl, cleanup := newTestServerWithClient(t, rb)
	t.Cleanup(func() { cleanup() })

	// Every advance must be visible to the very next read. The shell hooks
	// rely on this: preexec advances the session and precmd immediately
	// reads the current step to pre-fill the prompt.
	for i := 1; i < steps; i++ {
		assert.NoError(t, cl.NextCommand())

		st, err := cl.CurrentState()
		assert.NoError(t, err)
		assert.Equal(t, i, st.Index)
		assert.Equal(t, fmt.Sprintf("idx_%d", i), st.Command)
	}
}

func TestSetParamsAppliedBeforeReturn(t *testing.T) {
	rb := &runbook.Runbook{
		Title: "params",
		Steps: []runbook.Step{
			{Title: "attach", Command: "srun --jobid=<jobid> --pty bash"},
		},
	}
	_, cl, cleanup := newTestServerWithClient(t, rb)
	t.Cleanup(func() { cleanup() })

	assert.NoError(t, cl.SetParams(map[string]string{"<jobid>": "42"}))

	st, err := cl.CurrentState()
	assert.NoError(t, err)
	assert.Equal(t, "srun --jobid=42 --pty bash", st.CommandWithSetParams())
}

type cleanupFunc func() error

func newTestServerWithClient(t *testing.T, rb *runbook.Runbook) (*RunServer, Client, cleanupFunc) {
	socketPath := "/tmp/opsbook-run-test-" + idgen.New("tst") + ".sock"

	srv, err := NewServerWithSocketPath(socketPath, rb)
	assert.Nil(t, err)
	assert.NotNil(t, srv)
	assert.Equal(t, socketPath, srv.SocketPath())

	ctx := context.Background()
	cl, err := NewClient(ctx, srv.SocketPath())
	assert.Nil(t, err)
	assert.NotNil(t, cl)

	go srv.ListenAndServe()
	return srv, cl, srv.Close
}
