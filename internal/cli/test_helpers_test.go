package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/most-active-cookie/internal/config"
	"github.com/runnerr0/most-active-cookie/internal/cookie"
	"github.com/runnerr0/most-active-cookie/internal/storage"
)

// sampleLines is the cookie log from the tool's README.
var sampleLines = []string{
	"AtY0laUfhglK3lC7,2018-12-09T14:19:00+00:00",
	"SAZuXPGUrfbcn5UA,2018-12-09T10:13:00+00:00",
	"5UAVanZf6UtGyKVS,2018-12-09T07:25:00+00:00",
	"AtY0laUfhglK3lC7,2018-12-09T06:19:00+00:00",
	"SAZuXPGUrfbcn5UA,2018-12-08T22:03:00+00:00",
	"4sMM2LxV07bPJzwf,2018-12-08T21:30:00+00:00",
	"fbcn5UAVanZf6UtG,2018-12-08T09:30:00+00:00",
	"4sMM2LxV07bPJzwf,2018-12-07T23:30:00+00:00",
}

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// isolateHome points HOME at a temp dir so default config and database
// paths never touch the real home directory.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// writeLog writes a CSV cookie log with a header and returns its path.
func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookie_log.csv")
	data := "cookie,timestamp\n" + strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func sampleRecords(t *testing.T) []cookie.Record {
	t.Helper()
	records := make([]cookie.Record, 0, len(sampleLines))
	for _, line := range sampleLines {
		rec, err := cookie.ParseLine(line)
		require.NoError(t, err)
		records = append(records, rec)
	}
	return records
}

// testEnv returns an env with default config whose logs go to the returned buffer.
func testEnv(t *testing.T) (*env, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &env{cfg: config.DefaultConfig(), logger: logger}, &buf
}

// openTestDB creates a migrated in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Each pooled connection would get its own in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	return db
}

// openTestStore returns a store over openTestDB, seeded with records.
func openTestStore(t *testing.T, records []cookie.Record) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.NewSQLiteStore(openTestDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if len(records) > 0 {
		_, err := store.ImportRecords(context.Background(), "test.csv", records)
		require.NoError(t, err)
	}
	return store
}
