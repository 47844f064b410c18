package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/xref-functions/internal/indexer"
)

// Test Plan for FunctionWriter:
// - WriteRun() stores a run row with the pass statistics
// - WriteRun() stores records in report order with their positions
// - WriteRun() returns a fresh UUID per run
// - Runs with no records are stored with match_count 0
// - GetRun() fails for unknown run IDs
// - Runs persist across reopening a database file

func sampleResult() *indexer.Result {
	return &indexer.Result{
		Matches: []indexer.Match{
			{Name: "alpha", File: "b.cpp", Line: 9, Path: "src/b.cpp"},
			{Name: "zeta", File: "a.cpp", Line: 2, Path: "a.cpp"},
		},
		Skipped:  []string{"notes.txt"},
		Accepted: []string{"a.cpp", "src/b.cpp"},
		Stats: indexer.ProcessingStats{
			FilesScanned: 2,
			FilesSkipped: 1,
			Matches:      2,
		},
	}
}

func TestFunctionWriter_WriteRun(t *testing.T) {
	t.Parallel()

	db := NewTestDB(t)
	writer := NewFunctionWriter(db)
	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	writer.now = func() time.Time { return fixed }

	runID, err := writer.WriteRun(sampleResult())
	require.NoError(t, err)
	_, err = uuid.Parse(runID)
	require.NoError(t, err, "run ID should be a UUID")

	run, err := GetRun(db, runID)
	require.NoError(t, err)
	assert.Equal(t, runID, run.RunID)
	assert.True(t, fixed.Equal(run.CreatedAt))
	assert.Equal(t, 2, run.FilesScanned)
	assert.Equal(t, 1, run.FilesSkipped)
	assert.Equal(t, 2, run.MatchCount)

	rows, err := GetFunctions(db, runID)
	require.NoError(t, err)
	assert.Equal(t, []FunctionRow{
		{RunID: runID, Position: 0, Name: "alpha", FileName: "b.cpp", FilePath: "src/b.cpp", Line: 9},
		{RunID: runID, Position: 1, Name: "zeta", FileName: "a.cpp", FilePath: "a.cpp", Line: 2},
	}, rows)
}

func TestFunctionWriter_DistinctRuns(t *testing.T) {
	t.Parallel()

	db := NewTestDB(t)
	writer := NewFunctionWriter(db)

	first, err := writer.WriteRun(sampleResult())
	require.NoError(t, err)
	second, err := writer.WriteRun(sampleResult())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	rows, err := GetFunctions(db, second)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	var total int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM functions").Scan(&total))
	assert.Equal(t, 4, total)
}

func TestFunctionWriter_EmptyRun(t *testing.T) {
	t.Parallel()

	db := NewTestDB(t)

	runID, err := NewFunctionWriter(db).WriteRun(&indexer.Result{})
	require.NoError(t, err)

	run, err := GetRun(db, runID)
	require.NoError(t, err)
	assert.Equal(t, 0, run.MatchCount)

	rows, err := GetFunctions(db, runID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetRun_Unknown(t *testing.T) {
	t.Parallel()

	db := NewTestDB(t)

	_, err := GetRun(db, uuid.New().String())
	assert.Error(t, err)
}

func TestFunctionWriter_PersistsToFile(t *testing.T) {
	t.Parallel()

	path := NewTestDBPath(t)

	db, err := OpenExportDB(path)
	require.NoError(t, err)
	runID, err := NewFunctionWriter(db).WriteRun(sampleResult())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenExportDB(path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := GetFunctions(db, runID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
