package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runnerr0/most-active-cookie/internal/storage"
)

type pruneOutput struct {
	Before string `json:"before"`
	DryRun bool   `json:"dry_run"`
	Pruned int64  `json:"pruned"`
}

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	if err := requireDay("--before", c.Before); err != nil {
		return err
	}

	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.withStore(c.globals, c.store, func(s storage.Store) error {
		return c.executeWithStore(e, s)
	})
}

// executeWithStore runs prune against a provided store (for testing).
func (c *PruneCommand) executeWithStore(e *env, store storage.Store) error {
	ctx := context.Background()

	n, err := store.CountBefore(ctx, c.Before)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}

	if c.DryRun {
		if c.globals.JSON {
			return printJSON(pruneOutput{Before: c.Before, DryRun: true, Pruned: n})
		}
		fmt.Printf("[DRY RUN] Would prune %s records before %s\n", formatNumber(n), c.Before)
		return nil
	}

	if n == 0 {
		if c.globals.JSON {
			return printJSON(pruneOutput{Before: c.Before})
		}
		fmt.Printf("No records to prune before %s\n", c.Before)
		return nil
	}

	// JSON output is non-interactive.
	if !c.Force && !c.globals.JSON {
		fmt.Printf("Prune %s records before %s? [y/N]: ", formatNumber(n), c.Before)
		if !confirmYes(c.input()) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	pruned, err := store.PruneBefore(ctx, c.Before)
	if err != nil {
		return fmt.Errorf("prune records: %w", err)
	}

	e.logger.Info("pruned records", "before", c.Before, "count", pruned)

	if c.globals.JSON {
		return printJSON(pruneOutput{Before: c.Before, Pruned: pruned})
	}
	fmt.Printf("Pruned %s records before %s\n", formatNumber(pruned), c.Before)
	return nil
}

func (c *PruneCommand) input() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// confirmYes reads one line and reports whether it starts with y or Y.
func confirmYes(in io.Reader) bool {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
