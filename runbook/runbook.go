package runbook

import (
	"errors"
	"fmt"
	"strings"
)

// Runbook is an ordered list of manual setup or operational steps.
// A runbook is immutable once loaded: it is only read, displayed, or
// executed.
type Runbook struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Steps       []Step `json:"steps" yaml:"steps"`
}

// Step is one unit of a runbook: a title plus a literal shell command or a
// file edit instruction. Exactly one of Command or Edit must be set.
//
// Commands are opaque text. The tool stores and replays them; it never
// interprets cluster, package manager, or build semantics.
type Step struct {
	Title        string `json:"title" yaml:"title"`
	Command      string `json:"command,omitempty" yaml:"command,omitempty"`
	Edit         *Edit  `json:"edit,omitempty" yaml:"edit,omitempty"`
	Precondition string `json:"precondition,omitempty" yaml:"precondition,omitempty"`
}

// Edit describes an insertion into a target file. If After is set the text
// is inserted after the first line matching it, otherwise appended.
type Edit struct {
	Path  string `json:"path" yaml:"path"`
	Text  string `json:"text" yaml:"text"`
	After string `json:"after,omitempty" yaml:"after,omitempty"`
}

var (
	ErrParse       = errors.New("malformed runbook")
	ErrMissingBody = fmt.Errorf("%w: step missing body", ErrParse)
)

// Validate checks that every step has a body. Steps have no identity beyond
// their position, so errors reference the step index.
func (rb *Runbook) Validate() error {
	if len(rb.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrParse)
	}
	for i, step := range rb.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	if s.Command == "" && s.Edit == nil {
		return ErrMissingBody
	}
	if s.Command != "" && s.Edit != nil {
		return fmt.Errorf("%w: step has both command and edit", ErrParse)
	}
	if s.Edit != nil && (s.Edit.Path == "" || s.Edit.Text == "") {
		return ErrMissingBody
	}
	return nil
}

// Body returns a one line description of what the step does, suitable for
// display next to the step title.
func (s Step) Body() string {
	if s.Command != "" {
		return s.Command
	}
	if s.Edit != nil {
		return fmt.Sprintf("edit %s", s.Edit.Path)
	}
	return ""
}

// Commands returns the shell command of every command step, in order. Edit
// steps are rendered as comments so interactive runners can show them
// without executing anything.
func (rb *Runbook) Commands() []string {
	var cmds []string
	for _, step := range rb.Steps {
		if step.Command != "" {
			cmds = append(cmds, step.Command)
			continue
		}
		if step.Edit != nil {
			cmds = append(cmds, fmt.Sprintf("# edit %s: %s", step.Edit.Path, firstLine(step.Edit.Text)))
		}
	}
	return cmds
}

// Markdown renders the runbook as a markdown document. Rendering is pure:
// the same runbook always produces the same output.
func (rb *Runbook) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", rb.Title)
	if rb.Description != "" {
		fmt.Fprintf(&b, "\n> %s\n", rb.Description)
	}
	for i, step := range rb.Steps {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, step.Title)
		if step.Precondition != "" {
			fmt.Fprintf(&b, "\n   _%s_\n", step.Precondition)
		}
		if step.Command != "" {
			fmt.Fprintf(&b, "\n   ```sh\n   %s\n   ```\n", strings.ReplaceAll(step.Command, "\n", "\n   "))
		}
		if step.Edit != nil {
			fmt.Fprintf(&b, "\n   Edit `%s`", step.Edit.Path)
			if step.Edit.After != "" {
				fmt.Fprintf(&b, " (after `%s`)", step.Edit.After)
			}
			fmt.Fprintf(&b, ":\n\n   ```\n   %s\n   ```\n", strings.ReplaceAll(step.Edit.Text, "\n", "\n   "))
		}
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
