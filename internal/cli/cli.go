package cli

import (
	"fmt"
	"os"
	"strings"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Query    *QueryCommand
	Locate   *LocateCommand
	Generate *GenerateCommand
	Import   *ImportCommand
	Stats    *StatsCommand
	Prune    *PruneCommand
	Purge    *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "most-active-cookie"
	parser.LongDescription = "Find the most active cookie(s) on a given day in a cookie log sorted newest first."

	cmds := &commands{
		Query:    &QueryCommand{globals: &globals, version: version},
		Locate:   &LocateCommand{globals: &globals, version: version},
		Generate: &GenerateCommand{globals: &globals, version: version},
		Import:   &ImportCommand{globals: &globals, version: version},
		Stats:    &StatsCommand{globals: &globals, version: version},
		Prune:    &PruneCommand{globals: &globals, version: version},
		Purge:    &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("query", "Find the most active cookie(s) on a day", "Print every cookie tied for the most occurrences on --date, one per line.", cmds.Query)
	parser.AddCommand("locate", "Show where a day sits in the log", "Print the half-open index range [left, right) of the records on --date.", cmds.Locate)
	parser.AddCommand("generate", "Write a synthetic cookie log", "Write a random cookie log sorted newest first, for testing.", cmds.Generate)
	parser.AddCommand("import", "Load a cookie log into the database", "Load a cookie log into the SQLite database so later queries can use --db.", cmds.Import)
	parser.AddCommand("stats", "Show database statistics", "Show record counts, day range and the busiest days in the database.", cmds.Stats)
	parser.AddCommand("prune", "Delete old records", "Delete database records on days before --before.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL stored records", "Delete ALL stored records. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	if args == nil {
		args = os.Args[1:]
	}

	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	for _, arg := range args {
		if arg == "--version" {
			fmt.Printf("most-active-cookie %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	_, err := parser.ParseArgs(rewriteLegacyArgs(parser, args))
	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}

// rewriteLegacyArgs turns the bare "FILE -d DAY" form (flags in any order,
// e.g. "-d DAY FILE" or "--json FILE -d DAY") into "query ...". Args that
// already name a subcommand are left alone, as are flag-only args without
// a date such as "--help".
func rewriteLegacyArgs(parser *goflags.Parser, args []string) []string {
	if len(args) == 0 {
		return args
	}

	hasDate := false
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if parser.Find(arg) != nil {
			return args
		}
		if arg == "-d" || arg == "--date" || strings.HasPrefix(arg, "--date=") {
			hasDate = true
		}
	}

	if !hasDate && strings.HasPrefix(args[0], "-") {
		return args
	}
	return append([]string{"query"}, args...)
}
