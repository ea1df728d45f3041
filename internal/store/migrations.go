package store

import (
	"database/sql"
	"fmt"
)

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	Apply   func(tx *sql.Tx) error
}

// MigrationRunner applies pending migrations to a SQLite database.
type MigrationRunner struct {
	db         *sql.DB
	migrations []migration
}

// NewMigrationRunner creates a MigrationRunner with all registered migrations.
func NewMigrationRunner(db *sql.DB) *MigrationRunner {
	return &MigrationRunner{
		db: db,
		migrations: []migration{
			{Version: 1, Name: "initial_schema", Apply: migrateV001},
		},
	}
}

// Run applies all pending migrations in order. It enables WAL mode and
// foreign keys, creates the schema_migrations tracking table, then applies
// each migration that hasn't been recorded yet.
func (r *MigrationRunner) Run() error {
	if _, err := r.db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := r.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	if _, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	for _, m := range r.migrations {
		applied, err := r.isApplied(m.Version)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if applied {
			continue
		}

		if err := r.apply(m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// isApplied checks whether a migration version has already been recorded.
func (r *MigrationRunner) isApplied(version int) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// apply executes a migration inside a transaction and records it.
func (r *MigrationRunner) apply(m migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := m.Apply(tx); err != nil {
		return err
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		m.Version, m.Name,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}

// migrateV001 creates the initial reading-state schema. Every statement
// uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bookmarks (
			id          TEXT PRIMARY KEY,
			owner       TEXT NOT NULL,
			translation TEXT NOT NULL,
			book        INTEGER NOT NULL,
			chapter     INTEGER NOT NULL,
			verse       INTEGER NOT NULL,
			label       TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(owner, translation, book, chapter, verse)
		)`,

		`CREATE TABLE IF NOT EXISTS highlights (
			id          TEXT PRIMARY KEY,
			owner       TEXT NOT NULL,
			translation TEXT NOT NULL,
			book        INTEGER NOT NULL,
			chapter     INTEGER NOT NULL,
			verse       INTEGER NOT NULL,
			color       TEXT NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(owner, translation, book, chapter, verse)
		)`,

		`CREATE TABLE IF NOT EXISTS history (
			id          TEXT PRIMARY KEY,
			owner       TEXT NOT NULL,
			translation TEXT NOT NULL,
			book        INTEGER NOT NULL,
			chapter     INTEGER NOT NULL,
			visited_at  INTEGER NOT NULL,
			UNIQUE(owner, translation, book, chapter)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_bookmarks_owner     ON bookmarks(owner)`,
		`CREATE INDEX IF NOT EXISTS idx_highlights_owner    ON highlights(owner)`,
		`CREATE INDEX IF NOT EXISTS idx_history_owner_visit ON history(owner, visited_at DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
