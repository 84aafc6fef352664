package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/most-active-cookie/internal/config"
	"github.com/runnerr0/most-active-cookie/internal/cookie"
	"github.com/runnerr0/most-active-cookie/internal/logging"
	"github.com/runnerr0/most-active-cookie/internal/source"
	"github.com/runnerr0/most-active-cookie/internal/storage"
)

// env is the config and logger a command runs with.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

// newEnv loads config (--config or the default path) and builds the logger.
// Logs go to stderr unless logging.file is set; stdout carries results only.
func newEnv(globals *GlobalFlags) (*env, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Logging
	if globals.Verbose {
		logCfg.Level = "debug"
	}
	logger, closer := logging.New(logCfg, os.Stderr)

	return &env{cfg: cfg, logger: logger, closer: closer}, nil
}

func (e *env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals.Config != "" {
		path, err := config.ExpandPath(globals.Config)
		if err != nil {
			return nil, err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns --db-path when given, else the configured storage path.
func resolveDBPath(globals *GlobalFlags, cfg *config.Config) (string, error) {
	if globals.DBPath != "" {
		return config.ExpandPath(globals.DBPath)
	}
	return cfg.DBPath()
}

// openStore opens the database at dbPath, runs migrations,
// and returns a ready-to-use store and the underlying *sql.DB.
func openStore(dbPath, journalMode string) (*storage.SQLiteStore, *sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db).WithJournalMode(journalMode)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

// withStore calls fn with the injected store, or with the configured
// database opened for the duration of the call.
func (e *env) withStore(globals *GlobalFlags, injected storage.Store, fn func(storage.Store) error) error {
	if injected != nil {
		return fn(injected)
	}

	dbPath, err := resolveDBPath(globals, e.cfg)
	if err != nil {
		return fmt.Errorf("resolve db path: %w", err)
	}

	store, db, err := openStore(dbPath, e.cfg.Storage.SQLiteJournalMode)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	e.logger.Debug("opened database", "path", dbPath)
	return fn(store)
}

// loadRecords reads the log named on the command line, or every stored
// record when fromDB is set.
func (e *env) loadRecords(ctx context.Context, globals *GlobalFlags, file string, fromDB bool, injected storage.Store) ([]cookie.Record, error) {
	if fromDB {
		if file != "" {
			return nil, fmt.Errorf("use either FILE or --db, not both")
		}
		var records []cookie.Record
		err := e.withStore(globals, injected, func(s storage.Store) error {
			var err error
			records, err = s.LoadRecords(ctx)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("load records: %w", err)
		}
		e.logger.Debug("loaded records", "source", "database", "records", len(records))
		return records, nil
	}

	if file == "" {
		return nil, fmt.Errorf("a cookie log FILE is required (or use --db)")
	}
	records, err := source.Load(file)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("loaded records", "source", file, "records", len(records))
	return records, nil
}

// requireDay checks that a day flag is present and well formed.
func requireDay(flag, day string) error {
	if day == "" {
		return fmt.Errorf("%s is required", flag)
	}
	if err := cookie.ValidateDay(day); err != nil {
		return fmt.Errorf("invalid %s: %w", flag, err)
	}
	return nil
}

// printJSON writes v to stdout as one JSON document.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
