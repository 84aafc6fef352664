package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/runnerr0/most-active-cookie/internal/cookie"
)

// Store defines the interface for cookie log data operations.
type Store interface {
	ImportRecords(ctx context.Context, source string, records []cookie.Record) (*Import, error)
	ReplaceRecords(ctx context.Context, source string, records []cookie.Record) (*Import, error)
	LoadRecords(ctx context.Context) ([]cookie.Record, error)
	CountBefore(ctx context.Context, day string) (int64, error)
	PruneBefore(ctx context.Context, day string) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertRecord *sql.Stmt
	insertImport *sql.Stmt
	updateImport *sql.Stmt
	loadRecords  *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertRecord, err = s.db.Prepare(`
		INSERT INTO cookie_log (cookie, ts, day, import_id)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.insertImport, err = s.db.Prepare(`INSERT INTO imports (source) VALUES (?)`)
	if err != nil {
		return err
	}

	s.updateImport, err = s.db.Prepare(`UPDATE imports SET row_count = ? WHERE id = ?`)
	if err != nil {
		return err
	}

	// Newest first, matching the order of the log files themselves. Rows
	// with equal timestamps keep import order.
	s.loadRecords, err = s.db.Prepare(`
		SELECT cookie, ts, day FROM cookie_log ORDER BY ts DESC, id ASC
	`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999999-07:00",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// ImportRecords inserts records in a single transaction and records the
// import under source. Days are stored as given; they are validated when a
// query reads them.
func (s *SQLiteStore) ImportRecords(ctx context.Context, source string, records []cookie.Record) (*Import, error) {
	return s.importRecords(ctx, source, records, false)
}

// ReplaceRecords deletes every stored record and import, then imports
// records, all in one transaction. If the import fails the old rows remain.
func (s *SQLiteStore) ReplaceRecords(ctx context.Context, source string, records []cookie.Record) (*Import, error) {
	return s.importRecords(ctx, source, records, true)
}

func (s *SQLiteStore) importRecords(ctx context.Context, source string, records []cookie.Record, replace bool) (*Import, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if replace {
		if err := purgeTx(ctx, tx); err != nil {
			return nil, err
		}
	}

	res, err := tx.StmtContext(ctx, s.insertImport).ExecContext(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("insert import: %w", err)
	}
	importID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("import id: %w", err)
	}

	insert := tx.StmtContext(ctx, s.insertRecord)
	for i, r := range records {
		if _, err := insert.ExecContext(ctx, r.Cookie, r.Timestamp, r.Day, importID); err != nil {
			return nil, fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if _, err := tx.StmtContext(ctx, s.updateImport).ExecContext(ctx, len(records), importID); err != nil {
		return nil, fmt.Errorf("update import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &Import{
		ID:         importID,
		Source:     source,
		Rows:       int64(len(records)),
		ImportedAt: time.Now().UTC(),
	}, nil
}

// LoadRecords returns every stored record, newest first.
func (s *SQLiteStore) LoadRecords(ctx context.Context) ([]cookie.Record, error) {
	rows, err := s.loadRecords.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []cookie.Record{}
	for rows.Next() {
		var r cookie.Record
		if err := rows.Scan(&r.Cookie, &r.Timestamp, &r.Day); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// CountBefore returns how many records fall on days strictly before day.
func (s *SQLiteStore) CountBefore(ctx context.Context, day string) (int64, error) {
	if err := cookie.ValidateDay(day); err != nil {
		return 0, err
	}

	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cookie_log WHERE day < ?", day).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// PruneBefore deletes records on days strictly before day.
func (s *SQLiteStore) PruneBefore(ctx context.Context, day string) (int64, error) {
	if err := cookie.ValidateDay(day); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM cookie_log WHERE day < ?", day)
	if err != nil {
		return 0, fmt.Errorf("prune records: %w", err)
	}

	return res.RowsAffected()
}

// PurgeAll deletes all records and import history in one transaction.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := purgeTx(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

func purgeTx(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		"DELETE FROM cookie_log",
		"DELETE FROM imports",
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(DISTINCT cookie), COUNT(DISTINCT day) FROM cookie_log",
	).Scan(&stats.TotalRecords, &stats.DistinctCookies, &stats.DistinctDays)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	// Oldest and newest (handle empty DB)
	if stats.TotalRecords > 0 {
		err = s.db.QueryRowContext(ctx, "SELECT MIN(day), MAX(day) FROM cookie_log").Scan(&stats.OldestDay, &stats.NewestDay)
		if err != nil {
			return nil, fmt.Errorf("day range: %w", err)
		}
	}

	var lastImport sql.NullString
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*), MAX(imported_at) FROM imports").Scan(&stats.Imports, &lastImport)
	if err != nil {
		return nil, fmt.Errorf("import history: %w", err)
	}
	if lastImport.Valid {
		stats.LastImport, _ = parseTimestamp(lastImport.String)
	}

	// Busiest days
	rows, err := s.db.QueryContext(ctx,
		"SELECT day, COUNT(*) as cnt FROM cookie_log GROUP BY day ORDER BY cnt DESC, day DESC LIMIT 10",
	)
	if err != nil {
		return nil, fmt.Errorf("top days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		stats.TopDays = append(stats.TopDays, dc)
	}

	return stats, rows.Err()
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.insertRecord, s.insertImport, s.updateImport, s.loadRecords,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
