package migration

import (
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
)

// RunMigrations applies every embedded *.up.sql file that has not been
// recorded in the schema_migrations ledger yet. Files run in lexical
// order, each inside its own transaction.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migration: database handle is required")
	}

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("migration: ensure ledger: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	files, err := fs.Glob(embeddedMigrations, migrationsDir+"/*.up.sql")
	if err != nil {
		return fmt.Errorf("migration: list embedded files: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		version := file[len(migrationsDir)+1:]
		if applied[version] {
			continue
		}
		contents, err := fs.ReadFile(embeddedMigrations, file)
		if err != nil {
			return fmt.Errorf("migration: read %s: %w", version, err)
		}
		if err := applyOne(db, version, string(contents)); err != nil {
			return err
		}
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("migration: read ledger: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("migration: scan ledger: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyOne(db *sql.DB, version, statements string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migration: begin %s: %w", version, err)
	}
	if _, err := tx.Exec(statements); err != nil {
		tx.Rollback()
		return fmt.Errorf("migration: apply %s: %w", version, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		tx.Rollback()
		return fmt.Errorf("migration: record %s: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration: commit %s: %w", version, err)
	}
	return nil
}
