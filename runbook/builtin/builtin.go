// Package builtin ships the example runbooks embedded in the binary.
package builtin

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/opsbook-cli/opsbook/runbook"
	"github.com/opsbook-cli/opsbook/runbook/parser"
)

//go:embed *.yaml
var examples embed.FS

// Names lists the available example runbooks, sorted.
func Names() []string {
	entries, err := examples.ReadDir(".")
	if err != nil {
		panic(err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Load parses the named example runbook.
func Load(name string) (*runbook.Runbook, error) {
	f, err := examples.Open(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown example runbook %q", name)
	}
	defer f.Close()

	return parser.New(parser.YAML).Parse(f)
}

// Raw returns the named example's YAML source, for writing to disk.
func Raw(name string) ([]byte, error) {
	data, err := examples.ReadFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown example runbook %q", name)
	}
	return data, nil
}
