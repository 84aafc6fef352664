package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/most-active-cookie/internal/cookie"
)

type locateOutput struct {
	Date    string `json:"date"`
	Found   bool   `json:"found"`
	Left    int    `json:"left"`
	Right   int    `json:"right"`
	Records int    `json:"records"`
}

// Execute implements the go-flags Commander interface for LocateCommand.
func (c *LocateCommand) Execute(args []string) error {
	if err := requireDay("--date", c.Date); err != nil {
		return err
	}

	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	records, err := e.loadRecords(context.Background(), c.globals, c.Args.File, c.FromDB, c.store)
	if err != nil {
		return err
	}

	return c.run(records)
}

func (c *LocateCommand) run(records []cookie.Record) error {
	b, err := cookie.Locate(records, c.Date)
	if err != nil {
		return fmt.Errorf("locate %s: %w", c.Date, err)
	}

	if c.globals.JSON {
		return printJSON(locateOutput{
			Date:    c.Date,
			Found:   b.Found(),
			Left:    b.Left,
			Right:   b.Right,
			Records: b.Len(),
		})
	}

	if !b.Found() {
		fmt.Printf("No records found for %s.\n", c.Date)
		return nil
	}
	fmt.Printf("%s: %s (%d records of %d)\n", c.Date, b, b.Len(), len(records))
	return nil
}
