package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/muesli/cancelreader"
	"github.com/opsbook-cli/opsbook/config"
	"github.com/opsbook-cli/opsbook/display"
	"github.com/opsbook-cli/opsbook/runbook"
	"github.com/opsbook-cli/opsbook/runner"
	runServer "github.com/opsbook-cli/opsbook/server/run"
	"github.com/opsbook-cli/opsbook/shell"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [runbook]",
	Short: "Run steps through a runbook, one step at a time",
	Example: `
  opsbook run rb-1f6078134b9b9964
  opsbook run cluster-setup.yaml
  opsbook run cluster-setup.yaml --dry-run
  opsbook run rb-1f6078134b9b9964 --interactive
  `,
	Long: `
  Run executes a runbook's steps strictly in sequence: each step must finish
  before the next begins, because later steps depend on the environment state
  left by earlier ones.

  The first failing step halts the run. With --dry-run the steps are only
  printed and no external process is started. With --interactive the runbook
  is stepped through inside a subshell instead.
  `,
	Run: opsbookRun,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("missing: runbook id or file")
		}
		return nil
	},
}

var (
	dryRunFlag      bool
	interactiveFlag bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "print the steps without executing anything")
	runCmd.Flags().BoolVarP(&interactiveFlag, "interactive", "i", false, "step through the runbook in a subshell")
}

func opsbookRun(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	logger := loggerFromCtx(ctx).With("command", "run")

	rb, err := resolveRunbook(ctx, args[0])
	if err != nil {
		logger.Error("failed to load runbook", "ref", args[0], "error", err)
		display.FatalErr(err)
	}

	if interactiveFlag {
		checker := shell.NewSetupChecker()
		if err := checker.CheckSetup(); err != nil {
			display.FatalErr(err)
		}
		if err := runRunbookSession(ctx, rb); err != nil {
			display.FatalErr(fmt.Errorf("failed to run runbook %s: %w", rb.Title, err))
		}
		return
	}

	mode := runner.Execute
	if dryRunFlag {
		mode = runner.DryRun
	}
	logger.Debug("starting run", "runbook", rb.Title, "mode", mode.String())

	opts := []runner.Option{}
	if mode == runner.Execute {
		if transcript := openTranscript(logger); transcript != nil {
			defer transcript.Close()
			opts = append(opts, runner.WithTranscript(transcript))
		}
	}

	// User interrupt aborts the remaining sequence.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.New(opts...).Run(ctx, rb, mode); err != nil {
		var serr *runner.StepError
		if errors.As(err, &serr) {
			display.FatalErr(fmt.Errorf("%s: %w", rb.Title, serr))
		}
		display.FatalErr(err)
	}

	if mode == runner.Execute {
		display.Success(fmt.Sprintf("Finished runbook: %s", rb.Title))
	}
}

func openTranscript(logger *slog.Logger) *os.File {
	cfg, err := config.Load()
	if err != nil {
		logger.Debug("skipping transcript", "error", err.Error())
		return nil
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Debug("skipping transcript", "error", err.Error())
		return nil
	}
	return f
}

// runRunbookSession spawns a subshell wired to a step session server. Shell
// hooks pre-fill each step's command at the prompt and report executed
// commands back over the session socket.
func runRunbookSession(ctx context.Context, rb *runbook.Runbook) error {
	ctx, cancelCtx := context.WithCancel(ctx)
	defer cancelCtx()

	srv, err := runServer.NewServerWithDefaultSocketPath(rb)
	if err != nil {
		if errors.Is(err, runServer.ErrAbortRun) {
			display.Info("Run aborted")
			return nil
		}
		return err
	}
	go srv.ListenAndServe()
	defer srv.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sh := shell.NewWithOverride(srv.SocketPath(), cfg.Shell)
	c, err := sh.SpawnRunbookRunner(ctx, rb)
	if err != nil {
		return fmt.Errorf("run: failed to spawn shell %w", err)
	}

	// Start the command with a pty.
	ptmx, err := pty.Start(c)
	if err != nil {
		return err
	}
	// Make sure to close the pty at the end.
	defer ptmx.Close()

	// Handle pty size.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	go func() {
		for range ch {
			if err := pty.InheritSize(os.Stdin, ptmx); err != nil {
				log.Printf("error resizing pty: %s", err)
			}
		}
	}()
	ch <- syscall.SIGWINCH                        // Initial resize.
	defer func() { signal.Stop(ch); close(ch) }() // Cleanup signals when done.

	// Set stdin in raw mode.
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to set stdin to raw mode: %w", err)
	}

	// Restore the terminal to its original state when we're done.
	defer func() {
		if err := term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
			// intentionally display the error and continue without exiting
			display.Error(err)
		}
	}()

	// A cancelable reader lets us unblock the io.Copy from os.Stdin when the
	// user types 'exit' or presses 'ctrl+d' to leave the subshell.
	cancelReader, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		display.Error(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		io.Copy(ptmx, cancelReader)
	}()

	// io.Copy blocks till ptmx is closed.
	io.Copy(os.Stdout, ptmx)

	// cancel ctx and wait for the underlying shell command to finish
	cancelCtx()
	c.Wait()

	// cancel the cancelReader and wait for its go routine to finish
	cancelReader.Cancel()
	wg.Wait()
	return nil
}
