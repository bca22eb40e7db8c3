package cmd

import (
	"context"
	"fmt"
	"strings"

	huhSpinner "github.com/charmbracelet/huh/spinner"
	"github.com/opsbook-cli/opsbook/config"
	"github.com/opsbook-cli/opsbook/idgen"
	"github.com/opsbook-cli/opsbook/runbook"
	"github.com/opsbook-cli/opsbook/runbook/parser"
	"github.com/opsbook-cli/opsbook/storage"
)

// resolveRunbook loads a runbook either from the local store (rb- ids) or
// from a file on disk.
func resolveRunbook(ctx context.Context, ref string) (*runbook.Runbook, error) {
	if strings.HasPrefix(ref, idgen.RunbookPrefix) {
		return fetchRunbook(ctx, ref)
	}
	return parser.Load(ref)
}

func fetchRunbook(ctx context.Context, id string) (*runbook.Runbook, error) {
	var rb *runbook.Runbook
	var err error
	if serr := huhSpinner.New().Title("Fetching runbook").Action(func() {
		var store *storage.Store
		store, err = openStore()
		if err != nil {
			return
		}
		defer store.Close()

		rb, err = store.Get(id)
		if err != nil {
			err = fmt.Errorf("failed to fetch runbook %s: %w", id, err)
			return
		}
	}).Run(); serr != nil {
		return nil, serr
	}
	return rb, err
}

func openStore() (*storage.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return storage.Open(cfg.StorePath)
}
