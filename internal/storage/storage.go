// Package storage provides SQLite storage for the weatherfile session.
// It keeps the current result text and the export and import history
// in a single database file.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Storage provides access to the consolidated SQLite database.
type Storage struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// Open creates a new Storage instance with the given database path.
// It creates the directory structure if needed and runs migrations.
func Open(ctx context.Context, dbPath string) (*Storage, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory; %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database; %w", err)
	}

	// Serialize access to avoid SQLite write contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Configure busy timeout and enable foreign keys/WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout; %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys; %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode; %w", err)
	}

	s := &Storage{
		db:     db,
		dbPath: dbPath,
	}

	// Run migrations
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations; %w", err)
	}

	return s, nil
}

// DB returns the underlying database connection.
// Use with care; prefer using Storage methods.
func (s *Storage) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Path returns the database file path.
func (s *Storage) Path() string {
	return s.dbPath
}

// migrate runs all pending migrations on the database.
func (s *Storage) migrate(ctx context.Context) error {
	// Ensure schema_migrations table exists first
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table; %w", err)
	}

	// Get current version
	currentVersion, err := s.getCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version; %w", err)
	}

	// Run pending migrations
	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}

		if err := s.runMigration(ctx, m); err != nil {
			return fmt.Errorf("failed to run migration %d (%s); %w", m.Version, m.Description, err)
		}
	}

	return nil
}

// getCurrentVersion returns the highest applied migration version.
func (s *Storage) getCurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// runMigration executes a single migration within a transaction.
func (s *Storage) runMigration(ctx context.Context, m Migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction; %w", err)
	}
	defer tx.Rollback()

	// Execute the migration
	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		return fmt.Errorf("failed to execute migration; %w", err)
	}

	// Record the migration
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, description) VALUES (?, ?)",
		m.Version, m.Description,
	); err != nil {
		return fmt.Errorf("failed to record migration; %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction; %w", err)
	}

	return nil
}

// GetSchemaVersion returns the current schema version.
func (s *Storage) GetSchemaVersion(ctx context.Context) (int, error) {
	return s.getCurrentVersion(ctx)
}

// Migration represents a database schema migration.
type Migration struct {
	Version     int
	Description string
	Up          string
}

// migrations contains all schema migrations in order.
var migrations = []Migration{
	{
		Version:     1,
		Description: "Create result_state table",
		Up: `
			CREATE TABLE IF NOT EXISTS result_state (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				text TEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL
			);
		`,
	},
	{
		Version:     2,
		Description: "Create exports table",
		Up: `
			CREATE TABLE IF NOT EXISTS exports (
				id TEXT PRIMARY KEY,
				file_name TEXT NOT NULL,
				path TEXT NOT NULL,
				size_bytes INTEGER NOT NULL,
				checksum TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at);
		`,
	},
	{
		Version:     3,
		Description: "Create imports table",
		Up: `
			CREATE TABLE IF NOT EXISTS imports (
				id TEXT PRIMARY KEY,
				source_path TEXT NOT NULL,
				kind TEXT NOT NULL,
				size_bytes INTEGER NOT NULL,
				imported_at TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_imports_imported_at ON imports(imported_at);
		`,
	},
}
