package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opsbook-cli/opsbook/runbook"
	"gopkg.in/yaml.v3"
)

// Parser loads a runbook from a single source file.
type Parser interface {
	Parse(r io.Reader) (*runbook.Runbook, error)
}

var ErrUnsupportedFormat = fmt.Errorf("%w: unsupported file format", runbook.ErrParse)

// Format selects the on-disk runbook format.
type Format string

const (
	YAML     Format = "yaml"
	Markdown Format = "markdown"
)

func New(format Format) Parser {
	switch format {
	case YAML:
		return &yamlParser{}
	case Markdown:
		return &markdownParser{}
	default:
		return nil
	}
}

// FormatForPath maps a file extension to its format.
func FormatForPath(path string) (Format, error) {
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return YAML, nil
	case ".md", ".markdown":
		return Markdown, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Load reads a runbook from path, picking the parser from the file
// extension.
func Load(path string) (*runbook.Runbook, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	p := New(format)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rb, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rb, nil
}

type yamlParser struct{}

var _ Parser = (*yamlParser)(nil)

func (y *yamlParser) Parse(r io.Reader) (*runbook.Runbook, error) {
	var rb runbook.Runbook
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rb); err != nil {
		return nil, fmt.Errorf("%w: %s", runbook.ErrParse, err)
	}
	if err := rb.Validate(); err != nil {
		return nil, err
	}
	return &rb, nil
}

// markdownParser reads a line oriented markdown runbook:
//
//	# title
//	> description
//	- step title
//	`command`
//
// Fenced blocks (```) are also accepted as step bodies.
type markdownParser struct{}

var _ Parser = (*markdownParser)(nil)

func (m *markdownParser) Parse(r io.Reader) (*runbook.Runbook, error) {
	scanner := bufio.NewScanner(r)

	rb := &runbook.Runbook{}

	var description []string
	var pending *runbook.Step
	var fence []string
	inFence := false

	flush := func() {
		if pending != nil {
			rb.Steps = append(rb.Steps, *pending)
			pending = nil
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if inFence {
			if strings.HasPrefix(trimmed, "```") {
				inFence = false
				if pending != nil && pending.Command == "" {
					pending.Command = strings.Join(fence, "\n")
				}
				fence = nil
				continue
			}
			fence = append(fence, line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "```"):
			inFence = true
		case strings.HasPrefix(trimmed, "#"):
			if rb.Title != "" {
				continue
			}
			rb.Title = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		case strings.HasPrefix(trimmed, ">"):
			description = append(description, strings.TrimSpace(strings.TrimPrefix(trimmed, ">")))
		case strings.HasPrefix(trimmed, "-"):
			flush()
			title := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(trimmed, "-")), ":")
			pending = &runbook.Step{Title: title}
		case strings.HasPrefix(trimmed, "`"):
			if pending != nil && pending.Command == "" {
				pending.Command = strings.TrimSpace(strings.Trim(trimmed, "`"))
			}
		default:
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	rb.Description = strings.Join(description, " ")
	if err := rb.Validate(); err != nil {
		return nil, err
	}
	return rb, nil
}
