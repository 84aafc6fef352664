package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runnerr0/most-active-cookie/internal/storage"
)

// statsJSON is the JSON output structure for the stats command.
type statsJSON struct {
	Version           string         `json:"version"`
	DatabasePath      string         `json:"database_path"`
	DatabaseSizeBytes int64          `json:"database_size_bytes"`
	TotalRecords      int64          `json:"total_records"`
	DistinctCookies   int64          `json:"distinct_cookies"`
	DistinctDays      int64          `json:"distinct_days"`
	OldestDay         string         `json:"oldest_day,omitempty"`
	NewestDay         string         `json:"newest_day,omitempty"`
	Imports           int64          `json:"imports"`
	LastImport        string         `json:"last_import,omitempty"`
	TopDays           []dayCountJSON `json:"top_days"`
}

type dayCountJSON struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	dbPath, err := resolveDBPath(c.globals, e.cfg)
	if err != nil {
		return fmt.Errorf("resolve db path: %w", err)
	}

	return e.withStore(c.globals, c.store, func(s storage.Store) error {
		return c.executeWithStore(s, dbPath)
	})
}

// executeWithStore runs stats against a provided store (for testing).
func (c *StatsCommand) executeWithStore(store storage.Store, dbPath string) error {
	stats, err := store.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbSize := getDatabaseSize(dbPath)

	if c.globals != nil && c.globals.JSON {
		return c.printStatsJSON(stats, dbPath, dbSize)
	}
	return c.printStatsHuman(stats, dbPath, dbSize)
}

func (c *StatsCommand) printStatsHuman(stats *storage.Stats, dbPath string, dbSize int64) error {
	fmt.Println("Cookie Log Stats")
	fmt.Println("================")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Records:       %s\n", formatNumber(stats.TotalRecords))
	fmt.Printf("Cookies:       %s\n", formatNumber(stats.DistinctCookies))
	fmt.Printf("Days:          %s\n", formatNumber(stats.DistinctDays))

	if stats.TotalRecords > 0 {
		fmt.Printf("Oldest:        %s\n", stats.OldestDay)
		fmt.Printf("Newest:        %s\n", stats.NewestDay)
	}

	fmt.Printf("Imports:       %s\n", formatNumber(stats.Imports))
	if !stats.LastImport.IsZero() {
		fmt.Printf("Last import:   %s\n", stats.LastImport.Local().Format("2006-01-02 15:04"))
	}

	if len(stats.TopDays) > 0 {
		fmt.Println()
		fmt.Println("Busiest Days:")
		for _, d := range stats.TopDays {
			fmt.Printf("  %-12s %s\n", d.Day, formatNumber(d.Count))
		}
	}

	return nil
}

func (c *StatsCommand) printStatsJSON(stats *storage.Stats, dbPath string, dbSize int64) error {
	out := statsJSON{
		Version:           c.version,
		DatabasePath:      dbPath,
		DatabaseSizeBytes: dbSize,
		TotalRecords:      stats.TotalRecords,
		DistinctCookies:   stats.DistinctCookies,
		DistinctDays:      stats.DistinctDays,
		OldestDay:         stats.OldestDay,
		NewestDay:         stats.NewestDay,
		Imports:           stats.Imports,
		TopDays:           make([]dayCountJSON, len(stats.TopDays)),
	}

	if !stats.LastImport.IsZero() {
		out.LastImport = stats.LastImport.UTC().Format(time.RFC3339)
	}

	for i, d := range stats.TopDays {
		out.TopDays[i] = dayCountJSON{Day: d.Day, Count: d.Count}
	}

	return printJSON(out)
}

// getDatabaseSize returns the database file size in bytes, or 0 when the
// file does not exist yet.
func getDatabaseSize(dbPath string) int64 {
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}
	return 0
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
