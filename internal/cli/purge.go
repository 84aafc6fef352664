package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runnerr0/most-active-cookie/internal/storage"
)

// setDB allows tests to inject a database connection.
func (c *PurgeCommand) setDB(db *sql.DB) {
	c.db = db
}

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	// Confirmation prompt unless --force. JSON output is non-interactive.
	if !c.Force && !c.globals.JSON {
		if err := confirmPurge(c.input()); err != nil {
			return err
		}
	}

	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	// Open or use injected DB
	var store *storage.SQLiteStore
	if c.db != nil {
		store, err = storage.NewSQLiteStore(c.db)
		if err != nil {
			return fmt.Errorf("init store: %w", err)
		}
	} else {
		dbPath, err := resolveDBPath(c.globals, e.cfg)
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
		var db *sql.DB
		store, db, err = openStore(dbPath, e.cfg.Storage.SQLiteJournalMode)
		if err != nil {
			return err
		}
		defer db.Close()
	}
	defer store.Close()

	if err := store.PurgeAll(context.Background()); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	e.logger.Warn("purged all records")

	// Output
	if c.globals.JSON {
		return printJSON(map[string]interface{}{
			"purged":  true,
			"message": "all data deleted",
		})
	}

	fmt.Println("Purged all data. The cookie database is empty.")
	return nil
}

func (c *PurgeCommand) input() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// confirmPurge reads the confirmation word from in.
func confirmPurge(in io.Reader) error {
	fmt.Println("⚠ WARNING: This will permanently delete ALL stored cookie data.")
	fmt.Println("  - All imported cookie log records")
	fmt.Println("  - All import history")
	fmt.Println()
	fmt.Println("This action cannot be undone.")
	fmt.Println()
	fmt.Print(`Type "PURGE" to confirm: `)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return fmt.Errorf("aborted: no input received")
	}
	if strings.TrimSpace(scanner.Text()) != "PURGE" {
		return fmt.Errorf("aborted: confirmation text did not match")
	}
	return nil
}
