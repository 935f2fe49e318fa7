package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const createMigrationLog = `CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// MigrateUp brings the portfolio schema up to date. Up scripts run in
// lexical order and each one at most once: applied names are recorded
// in schema_migrations, so a database created by an older build only
// replays the scripts it is missing.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(createMigrationLog); err != nil {
		return fmt.Errorf("create migration log: %w", err)
	}
	entries, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	for _, name := range entries {
		applied, err := migrationApplied(db, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
		if _, logErr := db.Exec(`INSERT INTO schema_migrations (name) VALUES (?)`, name); logErr != nil {
			return fmt.Errorf("record migration %s: %w", name, logErr)
		}
	}
	return nil
}

// MigrateDown unwinds the schema, newest script first, and clears the
// matching entries from the migration log so MigrateUp can rebuild.
func MigrateDown(db *sql.DB) error {
	if _, err := db.Exec(createMigrationLog); err != nil {
		return fmt.Errorf("create migration log: %w", err)
	}
	entries, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
		upName := strings.TrimSuffix(name, ".down.sql") + ".up.sql"
		if _, logErr := db.Exec(`DELETE FROM schema_migrations WHERE name = ?`, upName); logErr != nil {
			return fmt.Errorf("unrecord migration %s: %w", upName, logErr)
		}
	}
	return nil
}

func migrationApplied(db *sql.DB, name string) (bool, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`, name).Scan(&count); err != nil {
		return false, fmt.Errorf("check migration %s: %w", name, err)
	}
	return count > 0, nil
}
