package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SchemaVersion is written to export_metadata when the schema is created.
const SchemaVersion = "1.0"

// CreateSchema creates the export tables and indexes if they do not exist.
// Uses a transaction so a partially created schema is never left behind.
//
// Schema:
//   - runs: one row per invocation that exported records
//   - functions: one row per match record, keyed to its run
//   - export_metadata: key/value bootstrap data (schema_version)
//
// Must be called with SQLite PRAGMA foreign_keys = ON.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	tables := []struct {
		name string
		ddl  string
	}{
		{"runs", createRunsTable},
		{"functions", createFunctionsTable},
		{"export_metadata", createExportMetadataTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range getAllIndexes() {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	bootstrapSQL := `
		INSERT OR IGNORE INTO export_metadata (key, value, updated_at)
		VALUES ('schema_version', ?, ?)
	`
	if _, err := tx.Exec(bootstrapSQL, SchemaVersion, now); err != nil {
		return fmt.Errorf("failed to bootstrap export_metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	return nil
}

// GetSchemaVersion retrieves the schema version from export_metadata.
// Returns "0" if the table doesn't exist (new database).
func GetSchemaVersion(db *sql.DB) (string, error) {
	var tableExists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='export_metadata'").Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("failed to check export_metadata existence: %w", err)
	}
	if tableExists == 0 {
		return "0", nil // New database
	}

	var version string
	err = db.QueryRow("SELECT value FROM export_metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("schema_version key not found in export_metadata")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query schema version: %w", err)
	}
	return version, nil
}

// Table DDL constants

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,                     -- UUID per invocation
    created_at TEXT NOT NULL,                    -- ISO 8601
    files_scanned INTEGER NOT NULL DEFAULT 0,
    files_skipped INTEGER NOT NULL DEFAULT 0,
    match_count INTEGER NOT NULL DEFAULT 0
)
`

const createFunctionsTable = `
CREATE TABLE IF NOT EXISTS functions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,                   -- 0-based index in the sorted report
    name TEXT NOT NULL,
    file_name TEXT NOT NULL,                     -- Base name, as printed
    file_path TEXT NOT NULL,                     -- Argument the file was reached through
    line INTEGER NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
)
`

const createExportMetadataTable = `
CREATE TABLE IF NOT EXISTS export_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
)
`

func getAllIndexes() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_functions_run ON functions(run_id, position)",
		"CREATE INDEX IF NOT EXISTS idx_functions_name ON functions(name)",
		"CREATE INDEX IF NOT EXISTS idx_functions_file ON functions(file_name)",
	}
}
