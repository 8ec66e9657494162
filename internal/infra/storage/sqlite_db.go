package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite initializes the local SQLite database and creates the
// schemas for profiles, custom ingredients and the immutable event log.
func InitSQLite(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			session_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			gold INTEGER NOT NULL,
			xp INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			water INTEGER NOT NULL DEFAULT 100,
			round INTEGER NOT NULL DEFAULT 0,
			inventory_json TEXT NOT NULL DEFAULT '{}',
			last_updated DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS custom_items (
			item_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			name TEXT NOT NULL,
			emoji TEXT NOT NULL,
			category TEXT NOT NULL,
			price INTEGER NOT NULL,
			tier INTEGER NOT NULL DEFAULT 1,
			last_updated DATETIME NOT NULL,
			FOREIGN KEY (session_id) REFERENCES profiles(session_id)
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			event_type TEXT NOT NULL,
			item_id TEXT NOT NULL DEFAULT '',
			payload TEXT NOT NULL,
			round INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (session_id) REFERENCES profiles(session_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_session_id ON events(session_id);`,
		`CREATE INDEX IF NOT EXISTS idx_events_event_type ON events(event_type);`,
		`CREATE INDEX IF NOT EXISTS idx_events_round ON events(round);`,
		`CREATE INDEX IF NOT EXISTS idx_custom_items_session_id ON custom_items(session_id);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
