package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/most-active-cookie/internal/cookie"
)

// queryOutput is the --json form of a query result.
type queryOutput struct {
	Date     string          `json:"date"`
	Strategy cookie.Strategy `json:"strategy"`
	Cookies  []string        `json:"cookies"`
	Count    int             `json:"count"`
	Boundary *boundaryJSON   `json:"boundary"`
}

type boundaryJSON struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

func toBoundaryJSON(b cookie.Boundary) *boundaryJSON {
	if !b.Found() {
		return nil
	}
	return &boundaryJSON{Left: b.Left, Right: b.Right}
}

// Execute implements the go-flags Commander interface for QueryCommand.
func (c *QueryCommand) Execute(args []string) error {
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

	return c.run(e, records)
}

func (c *QueryCommand) run(e *env, records []cookie.Record) error {
	name := c.Strategy
	if name == "" {
		name = e.cfg.Query.Strategy
	}
	strategy, err := cookie.ParseStrategy(name)
	if err != nil {
		return err
	}

	if (c.CheckOrder || e.cfg.Query.CheckOrder) && !cookie.IsDescending(records) {
		e.logger.Warn("cookie log is not sorted newest first; locate may miss records, try --strategy scan",
			"records", len(records), "strategy", strategy)
	}

	res, err := cookie.Find(strategy, records, c.Date)
	if err != nil {
		return fmt.Errorf("query %s: %w", c.Date, err)
	}

	e.logger.Debug("query complete",
		"date", c.Date,
		"strategy", strategy,
		"boundary", res.Boundary.String(),
		"cookies", len(res.Cookies),
		"count", res.Count,
	)

	if c.globals.JSON {
		return printJSON(queryOutput{
			Date:     res.Day,
			Strategy: strategy,
			Cookies:  res.Cookies,
			Count:    res.Count,
			Boundary: toBoundaryJSON(res.Boundary),
		})
	}

	if !res.Found() {
		fmt.Println("No cookie(s) found.")
		return nil
	}
	for _, id := range res.Cookies {
		fmt.Println(id)
	}
	return nil
}
