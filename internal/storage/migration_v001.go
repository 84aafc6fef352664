package storage

import "database/sql"

// migrateV001 creates the initial schema: the cookie log, its indexes, and
// the import history. Every statement uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		// ── Tables ──────────────────────────────────────────────

		`CREATE TABLE IF NOT EXISTS imports (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			source      TEXT NOT NULL DEFAULT '',
			row_count   INTEGER NOT NULL DEFAULT 0,
			imported_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// ts and day stay TEXT so rows come back exactly as imported.
		`CREATE TABLE IF NOT EXISTS cookie_log (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			cookie      TEXT NOT NULL,
			ts          TEXT NOT NULL,
			day         TEXT NOT NULL,
			import_id   INTEGER REFERENCES imports(id) ON DELETE SET NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// ── Indexes ────────────────────────────────────────────

		`CREATE INDEX IF NOT EXISTS idx_cookie_log_ts      ON cookie_log(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_cookie_log_day     ON cookie_log(day)`,
		`CREATE INDEX IF NOT EXISTS idx_cookie_log_cookie  ON cookie_log(cookie)`,
		`CREATE INDEX IF NOT EXISTS idx_imports_ts         ON imports(imported_at)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
