// Package db provides SQLite storage for the planner's static game data,
// user goals and saved estimates.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

// SchemaVersion is recorded in sync_metadata on every InitSchema.
const SchemaVersion = "1"

//go:embed schema.sql
var schemaSQL string

// Schema returns the SQL schema for the database.
func Schema() string {
	return schemaSQL
}

// InitSchema creates all tables if they don't exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema()); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO sync_metadata (key, value, updated_at)
		VALUES ('schema_version', ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, SchemaVersion)
	if err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}

	return nil
}
