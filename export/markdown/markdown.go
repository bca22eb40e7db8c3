package markdown

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/atotto/clipboard"
	"github.com/opsbook-cli/opsbook/display"
	"github.com/opsbook-cli/opsbook/runbook"
)

const MdTemplate = `# {{ .Title }}
{{ if .Description }}
> {{ .Description }}
{{ end -}}
{{- range $i, $step := .Steps }}
## {{ add $i 1 }}. {{ $step.Title }}
{{ if $step.Precondition }}
_{{ $step.Precondition }}_
{{ end }}
~~~sh
{{ $step.Body }}
~~~
{{ end -}}
`

type Service interface {
	ToMarkdownFile(ctx context.Context, rb *runbook.Runbook) error
}

var mdTemplate *template.Template

func init() {
	mdTemplate = template.Must(template.New("md").Funcs(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		}}).Parse(MdTemplate))
}

type svc struct {
	// out overrides the generated file name when set.
	out string
}

func NewService(out string) Service {
	return &svc{out: out}
}

// Render produces the markdown document for a runbook. Rendering is pure:
// rendering the same runbook twice yields identical output.
func Render(rb *runbook.Runbook) (string, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, rb); err != nil {
		return "", fmt.Errorf("error executing markdown template: %w", err)
	}
	return buf.String(), nil
}

func (s *svc) ToMarkdownFile(ctx context.Context, rb *runbook.Runbook) error {
	mdContent, err := Render(rb)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := clipboard.WriteAll(mdContent); cerr == nil {
			display.Info("Copied markdown to clipboard")
		}
	}()

	fileName := s.out
	if fileName == "" {
		humanReadableTime := time.Now().Format("2006_01_02_15:04:05")
		fileName = fmt.Sprintf("opsbook_%s.md", humanReadableTime)
	}
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("failed to create markdown file: %w", err)
	}

	defer f.Close()
	if _, err := f.WriteString(mdContent); err != nil {
		return fmt.Errorf("failed to write md to file: %w", err)
	}

	display.Info(fmt.Sprintf("Markdown file created: %s", fileName))
	return nil
}
