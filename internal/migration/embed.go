package migration

import "embed"

const migrationsDir = "migrations"

// Only up migrations are shipped; rollbacks are done with a new forward
// migration.
//
//go:embed migrations/*.up.sql
var embeddedMigrations embed.FS
