package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the database and ensures the schema exists.
// For local-only databases, dbPath is the filename (":memory:" works for
// tests). When primaryUrl is set, the remote Turso database is used instead.
func InitDB(dbPath string, primaryUrl string, authToken string) (*sql.DB, error) {
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err := sql.Open("libsql", "file:"+dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local database: %w", err)
		}
		if err = createTables(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables for local db: %w", err)
		}
		return db, nil
	}
	log.Info("Initializing Turso database", "url", primaryUrl)
	db, err := sql.Open("libsql", primaryUrl+"?authToken="+authToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
	}
	if err = createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables for remote db: %w", err)
	}
	return db, nil
}

func createTables(db *sql.DB) error {
	// The whole aggregate is persisted as one JSON document that is
	// rewritten wholesale on every mutation. A single-row table gives us an
	// atomic overwrite without any partial-update machinery.
	createStateTable := `
	CREATE TABLE IF NOT EXISTS app_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		doc TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT 0
	);`

	_, err := db.Exec(createStateTable)
	if err != nil {
		return err
	}
	log.Info("Database initialized successfully")
	return nil
}
