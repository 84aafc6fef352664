package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/most-active-cookie/internal/cookie"
	"github.com/runnerr0/most-active-cookie/internal/source"
	"github.com/runnerr0/most-active-cookie/internal/storage"
)

type importOutput struct {
	ID       int64  `json:"id"`
	Source   string `json:"source"`
	Rows     int64  `json:"rows"`
	Replaced bool   `json:"replaced"`
}

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	if c.Args.File == "" {
		return fmt.Errorf("a cookie log FILE is required for import")
	}

	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	records, err := source.Load(c.Args.File)
	if err != nil {
		return err
	}

	return e.withStore(c.globals, c.store, func(s storage.Store) error {
		return c.run(context.Background(), e, s, records)
	})
}

func (c *ImportCommand) run(ctx context.Context, e *env, store storage.Store, records []cookie.Record) error {
	importFn := store.ImportRecords
	if c.Replace {
		importFn = store.ReplaceRecords
	}

	imp, err := importFn(ctx, c.Args.File, records)
	if err != nil {
		return fmt.Errorf("import %s: %w", c.Args.File, err)
	}

	e.logger.Info("imported cookie log", "source", imp.Source, "rows", imp.Rows, "import_id", imp.ID, "replace", c.Replace)

	if c.globals.JSON {
		return printJSON(importOutput{ID: imp.ID, Source: imp.Source, Rows: imp.Rows, Replaced: c.Replace})
	}

	fmt.Printf("Imported %s records from %s (import #%d)\n", formatNumber(imp.Rows), imp.Source, imp.ID)
	return nil
}
