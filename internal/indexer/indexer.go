package indexer

import "context"

// Indexer runs the filter, scan, merge and sort pipeline over a list of
// command-line arguments.
type Indexer interface {
	// Index partitions args, scans every accepted file in argument order and
	// returns all matches sorted by name, file and line. An unreadable file
	// aborts the pass.
	Index(ctx context.Context, args []string) (*Result, error)

	// Invalidate forgets cached scans of the given paths.
	Invalidate(paths ...string)

	// Close releases all resources held by the indexer.
	Close() error
}

// Config contains configuration for the indexer.
type Config struct {
	// Extensions is the case-sensitive allow-list of file suffixes, with dots.
	Extensions []string

	// ExcludePatterns are globs; matching arguments are skipped.
	ExcludePatterns []string

	// Encoding is the WHATWG label used to decode files. Empty means UTF-8.
	Encoding string

	// CacheScans enables memoization of file scans between Index calls.
	CacheScans bool
}

// DefaultConfig returns the configuration of a plain invocation.
func DefaultConfig() *Config {
	return &Config{
		Extensions: append([]string(nil), DefaultExtensions...),
		Encoding:   DefaultEncoding,
	}
}
