package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Options selects and locates the backing database
type Options struct {
	// Type is "sqlite" or "postgres"
	Type string
	// Path is the sqlite database file
	Path string
	// URL is the postgres connection string
	URL string
}

// Connect establishes a connection to the database and makes sure the schema exists
func Connect(ctx context.Context, opts Options) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch opts.Type {
	case "postgres":
		db, err = sqlx.ConnectContext(ctx, "postgres", opts.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	case "sqlite", "":
		if dir := filepath.Dir(opts.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		// foreign keys are set in the DSN so every pooled connection gets them
		dsn := opts.Path + "?_foreign_keys=on&_busy_timeout=5000"
		db, err = sqlx.ConnectContext(ctx, "sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		for _, pragma := range []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA synchronous = NORMAL",
		} {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
			}
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		return nil, fmt.Errorf("unsupported database type %q", opts.Type)
	}

	if err := initializeSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(ctx context.Context, db *sqlx.DB) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS subjects (
			name TEXT PRIMARY KEY
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create subjects table: %w", err)
	}

	// subject_name is a plain reference: deleting a subject leaves its topics alone
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS study_topics (
			id `+idColumn+`,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			subject_name TEXT NOT NULL,
			creation_date TEXT NOT NULL,
			last_session_date TEXT,
			total_sessions INTEGER NOT NULL DEFAULT 0,
			completed_sessions INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create study_topics table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS study_sessions (
			id `+idColumn+`,
			study_topic_id BIGINT NOT NULL,
			due_date TEXT NOT NULL,
			FOREIGN KEY (study_topic_id) REFERENCES study_topics(id) ON DELETE CASCADE,
			UNIQUE(study_topic_id, due_date)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create study_sessions table: %w", err)
	}

	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_study_topics_subject ON study_topics(subject_name)`)
	if err != nil {
		return fmt.Errorf("failed to create study_topics index: %w", err)
	}

	return nil
}
