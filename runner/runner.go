package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/opsbook-cli/opsbook/runbook"
)

// Mode selects how Run treats each step.
type Mode int

const (
	// DryRun prints every step without spawning any external process.
	DryRun Mode = iota
	// Execute runs each step in sequence, halting on the first failure.
	Execute
)

func (m Mode) String() string {
	switch m {
	case DryRun:
		return "dry-run"
	case Execute:
		return "execute"
	default:
		return ""
	}
}

// StepError reports the first failing step. Index is zero based; external
// tool output has already been surfaced verbatim on the inherited stdio.
type StepError struct {
	Index    int
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d failed with exit code %d", e.Index+1, e.ExitCode)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

var ErrAborted = errors.New("run aborted")

// Commander executes a single shell command. The default implementation
// hands the command to sh with inherited stdio so that the external tool's
// output and prompts reach the user unmodified.
type Commander interface {
	Run(ctx context.Context, command string) error
}

type shCommander struct{}

func (shCommander) Run(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ConfirmFunc decides whether a step guarded by a precondition note should
// run. Declining skips the step without failing the run.
type ConfirmFunc func(step runbook.Step) (bool, error)

func huhConfirm(step runbook.Step) (bool, error) {
	ok := true
	prompt := huh.NewConfirm().
		Title(step.Title).
		Description(fmt.Sprintf("This step applies %s. Run it?", step.Precondition)).
		Value(&ok)
	if err := prompt.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

type Runner struct {
	out        io.Writer
	commander  Commander
	confirm    ConfirmFunc
	transcript io.Writer

	now func() time.Time
}

type Option func(*Runner)

func WithCommander(c Commander) Option {
	return func(r *Runner) { r.commander = c }
}

func WithConfirm(f ConfirmFunc) Option {
	return func(r *Runner) { r.confirm = f }
}

func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithTranscript appends a line per step outcome to w.
func WithTranscript(w io.Writer) Option {
	return func(r *Runner) { r.transcript = w }
}

func New(opts ...Option) *Runner {
	r := &Runner{
		out:       os.Stdout,
		commander: shCommander{},
		confirm:   huhConfirm,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	stepStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	noteStyle = lipgloss.NewStyle().Faint(true)
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Run walks the runbook's steps strictly in order. Steps mutate shared
// external state (shell environment, loaded modules, installed packages), so
// each one must finish before the next begins.
//
// In Execute mode the first non-zero exit halts the run with a StepError
// carrying the failing index and exit code. There is no retry and no
// rollback: the side effects live outside the tool's control and are unsafe
// to retry blindly. Cancelling ctx aborts the remaining sequence.
func (r *Runner) Run(ctx context.Context, rb *runbook.Runbook, mode Mode) error {
	for i, step := range rb.Steps {
		if err := ctx.Err(); err != nil {
			r.log(i, "aborted", step)
			return fmt.Errorf("%w after step %d: %v", ErrAborted, i, err)
		}

		r.printStep(i, len(rb.Steps), step)

		if mode == DryRun {
			continue
		}

		if step.Precondition != "" {
			ok, err := r.confirm(step)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(r.out, skipStyle.Render("skipped"))
				r.log(i, "skipped", step)
				continue
			}
		}

		if err := r.runStep(ctx, step); err != nil {
			serr := &StepError{Index: i, ExitCode: exitCode(err), Err: err}
			r.log(i, "failed", step)
			return serr
		}
		r.log(i, "ok", step)
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, step runbook.Step) error {
	if step.Edit != nil {
		return applyEdit(step.Edit)
	}
	return r.commander.Run(ctx, step.Command)
}

func (r *Runner) printStep(i, n int, step runbook.Step) {
	fmt.Fprintln(r.out, stepStyle.Render(fmt.Sprintf("[%d/%d] %s", i+1, n, step.Title)))
	if step.Precondition != "" {
		fmt.Fprintln(r.out, noteStyle.Render("note: "+step.Precondition))
	}
	fmt.Fprintln(r.out, "  $ "+strings.ReplaceAll(step.Body(), "\n", "\n  $ "))
}

func (r *Runner) log(i int, status string, step runbook.Step) {
	if r.transcript == nil {
		return
	}
	fmt.Fprintf(r.transcript, "%s\tstep=%d\tstatus=%s\t%s\n",
		r.now().Format(time.RFC3339), i, status, firstLine(step.Body()))
}

// applyEdit inserts the edit text into the target file, after the first
// line matching After if one is set, otherwise at the end. The file is
// created if it does not exist.
func applyEdit(e *runbook.Edit) error {
	content, err := os.ReadFile(e.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var lines []string
	if len(content) > 0 {
		lines = strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	}

	inserted := false
	var result []string
	if e.After != "" {
		for _, line := range lines {
			result = append(result, line)
			if !inserted && strings.TrimSpace(line) == strings.TrimSpace(e.After) {
				result = append(result, e.Text)
				inserted = true
			}
		}
		if !inserted {
			return fmt.Errorf("edit %s: anchor line %q not found", e.Path, e.After)
		}
	} else {
		result = append(lines, e.Text)
	}

	return os.WriteFile(e.Path, []byte(strings.Join(result, "\n")+"\n"), 0644)
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
