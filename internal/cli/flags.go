package cli

import (
	"database/sql"
	"io"

	"github.com/runnerr0/most-active-cookie/internal/storage"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file (.yaml or .ini)" default:""`
	DBPath  string `long:"db-path" description:"Override the SQLite database path"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// logFileArg is the positional cookie log shared by file-reading commands.
type logFileArg struct {
	File string `positional-arg-name:"FILE" description:"Cookie log (.csv or .jsonl, optionally .gz or .zst)"`
}

// QueryCommand prints the most active cookie(s) on a day.
type QueryCommand struct {
	Date       string `short:"d" long:"date" description:"Day to query (YYYY-MM-DD)"`
	Strategy   string `long:"strategy" description:"locate: binary search a sorted log; scan: read every record" choice:"locate" choice:"scan"`
	CheckOrder bool   `long:"check-order" description:"Warn when the log is not sorted newest first"`
	FromDB     bool   `long:"db" description:"Read records from the SQLite database instead of FILE"`

	Args logFileArg `positional-args:"yes"`

	globals *GlobalFlags
	version string
	store   storage.Store // injectable for testing; nil means open the configured DB
}

// LocateCommand prints the index range a day occupies in a sorted log.
type LocateCommand struct {
	Date   string `short:"d" long:"date" description:"Day to locate (YYYY-MM-DD)"`
	FromDB bool   `long:"db" description:"Read records from the SQLite database instead of FILE"`

	Args logFileArg `positional-args:"yes"`

	globals *GlobalFlags
	version string
	store   storage.Store // injectable for testing; nil means open the configured DB
}

// GenerateCommand writes a synthetic cookie log.
type GenerateCommand struct {
	Lines  int    `long:"lines" description:"Number of records (default from config)"`
	Year   int    `long:"year" description:"Year of every record (default from config)"`
	Seed   *int64 `long:"seed" description:"Random seed (default: current time)"`
	Output string `short:"o" long:"output" description:"Output file; .gz or .zst compresses (default from config)"`

	globals *GlobalFlags
	version string
}

// ImportCommand loads a cookie log into the SQLite database.
type ImportCommand struct {
	Replace bool `long:"replace" description:"Delete existing records before importing"`

	Args logFileArg `positional-args:"yes"`

	globals *GlobalFlags
	version string
	store   storage.Store // injectable for testing; nil means open the configured DB
}

// StatsCommand shows database statistics.
type StatsCommand struct {
	globals *GlobalFlags
	version string
	store   storage.Store // injectable for testing; nil means open the configured DB
}

// PruneCommand deletes records older than a day.
type PruneCommand struct {
	Before string `long:"before" description:"Delete records on days before this one (YYYY-MM-DD)"`
	DryRun bool   `long:"dry-run" description:"Show what would be pruned without deleting"`
	Force  bool   `long:"force" description:"Skip confirmation prompt"`

	globals *GlobalFlags
	version string
	store   storage.Store // injectable for testing; nil means open the configured DB
	stdin   io.Reader     // injectable for testing; nil means os.Stdin
}

// PurgeCommand deletes ALL stored records with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	db      *sql.DB   // injectable for testing; nil means open the configured DB
	stdin   io.Reader // injectable for testing; nil means os.Stdin
}
