package storage

import (
	"context"
	"database/sql"
	"fmt"
	"hourbot/internal/models"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchemaVersion = 1

// SQLiteStore keeps entries in an embedded SQLite database, one row per entry.
type SQLiteStore struct {
	db  *sql.DB
	loc *time.Location
}

// NewSQLiteStore opens (or creates) the database at path and runs migrations.
func NewSQLiteStore(path string, loc *time.Location) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, unavailable("open", fmt.Errorf("create db directory: %w", err))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, unavailable("open", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, unavailable("open", fmt.Errorf("exec pragma %q: %w", p, err))
		}
	}

	s := &SQLiteStore{db: db, loc: loc}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, unavailable("open", fmt.Errorf("migrate: %w", err))
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= sqliteSchemaVersion {
		return nil
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			identity  TEXT    NOT NULL,
			hours     REAL    NOT NULL,
			logged_at TEXT    NOT NULL,
			is_reset  INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_identity ON entries(identity, id)`,
		fmt.Sprintf("PRAGMA user_version = %d", sqliteSchemaVersion),
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Name() string {
	return "sqlite"
}

func (s *SQLiteStore) Append(ctx context.Context, identity string, hours float64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (identity, hours, logged_at, is_reset) VALUES (?, ?, ?, 0)`,
		identity, hours, models.FormatTimestamp(at),
	)
	if err != nil {
		return unavailable("append", err)
	}
	return nil
}

func (s *SQLiteStore) Reset(ctx context.Context, identity string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (identity, hours, logged_at, is_reset) VALUES (?, 0, ?, 1)`,
		identity, models.FormatTimestamp(at),
	)
	if err != nil {
		return unavailable("reset", err)
	}
	return nil
}

func (s *SQLiteStore) AllEntries(ctx context.Context, identity string) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT hours, logged_at, is_reset FROM entries WHERE identity = ? ORDER BY id`,
		identity,
	)
	if err != nil {
		return nil, unavailable("read entries", err)
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		var (
			hours    float64
			loggedAt string
			isReset  bool
		)
		if err := rows.Scan(&hours, &loggedAt, &isReset); err != nil {
			return nil, unavailable("read entries", err)
		}
		ts, _ := models.ParseTimestamp(loggedAt, s.loc)
		entries = append(entries, models.Entry{
			Identity:  identity,
			Hours:     hours,
			Timestamp: ts,
			Reset:     isReset,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("read entries", err)
	}
	return entries, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
