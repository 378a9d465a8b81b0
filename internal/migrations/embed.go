// Package migrations provides embedded SQL migration files.
package migrations

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed sql/001_initial.sql
var InitialSQL string

// Apply runs all migrations against the database. Statements are idempotent,
// so running them on an already-migrated database is a no-op.
func Apply(db *sql.DB) error {
	if _, err := db.Exec(InitialSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
