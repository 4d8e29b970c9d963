package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Applied versions are recorded in schema_migrations, so MigrateUp on an
// existing database only executes the scripts it has not seen yet.
const migrationTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at TEXT NOT NULL
)`

func MigrateUp(db *sql.DB) error {
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}
	scripts, err := migrationScripts(".up.sql")
	if err != nil {
		return err
	}
	for _, name := range scripts {
		version := migrationVersion(name, ".up.sql")
		if applied[version] {
			continue
		}
		record := func(tx *sql.Tx) error {
			_, execErr := tx.Exec(
				"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
				version, time.Now().UTC().Format(time.RFC3339Nano),
			)
			return execErr
		}
		if err := runMigration(db, name, record); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown unwinds applied migrations newest-first.
func MigrateDown(db *sql.DB) error {
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}
	scripts, err := migrationScripts(".down.sql")
	if err != nil {
		return err
	}
	for i := len(scripts) - 1; i >= 0; i-- {
		name := scripts[i]
		version := migrationVersion(name, ".down.sql")
		if !applied[version] {
			continue
		}
		record := func(tx *sql.Tx) error {
			_, execErr := tx.Exec("DELETE FROM schema_migrations WHERE version = ?", version)
			return execErr
		}
		if err := runMigration(db, name, record); err != nil {
			return err
		}
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[string]bool, error) {
	if _, err := db.Exec(migrationTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()
	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func migrationScripts(suffix string) ([]string, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	return entries, nil
}

func migrationVersion(name, suffix string) string {
	return strings.TrimSuffix(path.Base(name), suffix)
}

// runMigration executes one script and its bookkeeping statement in a
// single transaction, so a half-applied script is never recorded.
func runMigration(db *sql.DB, name string, record func(*sql.Tx) error) error {
	script, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	if _, err := tx.Exec(string(script)); err != nil {
		tx.Rollback()
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	if err := record(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	return tx.Commit()
}
