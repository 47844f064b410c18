package indexer

import "time"

// Match is one detected function definition: the declared name, the base name
// of the file it was found in, and the 1-based line number.
type Match struct {
	Name string `json:"function"`
	File string `json:"file"`
	Line int    `json:"line"`

	// Path is the argument the file was reached through. It does not take part
	// in ordering or in the default table output.
	Path string `json:"path"`
}

// Result is the outcome of one indexing pass over the command-line arguments.
type Result struct {
	// Matches holds every record from every accepted file, sorted.
	Matches []Match

	// Skipped lists the arguments rejected by discovery, in argument order.
	Skipped []string

	// Accepted lists the arguments that were scanned, in argument order.
	Accepted []string

	Stats ProcessingStats
}

// ProcessingStats tracks statistics about a scan pass.
type ProcessingStats struct {
	FilesScanned          int     `json:"files_scanned"`
	FilesSkipped          int     `json:"files_skipped"`
	LinesScanned          int     `json:"lines_scanned"`
	Matches               int     `json:"matches"`
	CacheHits             int     `json:"cache_hits"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

// fileScan is what scanning one file yields; it is the unit stored in the
// scan cache.
type fileScan struct {
	matches []Match
	lines   int
}

func elapsedSeconds(start time.Time) float64 {
	return time.Since(start).Seconds()
}
