package storage

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mvp-joe/xref-functions/internal/indexer"
)

// Run summarizes one exported invocation.
type Run struct {
	RunID        string
	CreatedAt    time.Time
	FilesScanned int
	FilesSkipped int
	MatchCount   int
}

// FunctionRow is a stored match record.
type FunctionRow struct {
	RunID    string
	Position int
	Name     string
	FileName string
	FilePath string
	Line     int
}

// FunctionWriter writes match records to SQLite.
type FunctionWriter struct {
	db  *sql.DB
	now func() time.Time
}

// NewFunctionWriter creates a FunctionWriter instance.
// DB must have schema already created via CreateSchema().
func NewFunctionWriter(db *sql.DB) *FunctionWriter {
	return &FunctionWriter{db: db, now: time.Now}
}

// WriteRun stores one run and all of its records in a single transaction and
// returns the generated run ID. Records are stored in the given order.
func (w *FunctionWriter) WriteRun(result *indexer.Result) (string, error) {
	runID := uuid.New().String()

	tx, err := w.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	_, err = sq.Insert("runs").
		Columns("run_id", "created_at", "files_scanned", "files_skipped", "match_count").
		Values(
			runID,
			w.now().UTC().Format(time.RFC3339),
			result.Stats.FilesScanned,
			result.Stats.FilesSkipped,
			len(result.Matches),
		).
		RunWith(tx).
		Exec()
	if err != nil {
		return "", fmt.Errorf("failed to write run %s: %w", runID, err)
	}

	// Build the query once with Squirrel, then get SQL and args for preparation
	sqlStr, _, err := sq.Insert("functions").
		Columns("run_id", "position", "name", "file_name", "file_path", "line").
		Values("", 0, "", "", "", 0).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build SQL: %w", err)
	}

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, m := range result.Matches {
		if _, err := stmt.Exec(runID, i, m.Name, m.File, m.Path, m.Line); err != nil {
			return "", fmt.Errorf("failed to write function %s (%s:%d): %w", m.Name, m.File, m.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return runID, nil
}

// GetRun loads the run with the given ID.
func GetRun(db sq.BaseRunner, runID string) (*Run, error) {
	var (
		run       Run
		createdAt string
	)
	err := sq.Select("run_id", "created_at", "files_scanned", "files_skipped", "match_count").
		From("runs").
		Where(sq.Eq{"run_id": runID}).
		RunWith(db).
		QueryRow().
		Scan(&run.RunID, &createdAt, &run.FilesScanned, &run.FilesSkipped, &run.MatchCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for run %s: %w", runID, err)
	}
	return &run, nil
}

// GetFunctions loads the records of a run in report order.
func GetFunctions(db sq.BaseRunner, runID string) ([]FunctionRow, error) {
	rows, err := sq.Select("run_id", "position", "name", "file_name", "file_path", "line").
		From("functions").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("position").
		RunWith(db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("query functions: %w", err)
	}
	defer rows.Close()

	var out []FunctionRow
	for rows.Next() {
		var r FunctionRow
		if err := rows.Scan(&r.RunID, &r.Position, &r.Name, &r.FileName, &r.FilePath, &r.Line); err != nil {
			return nil, fmt.Errorf("scan function row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
