package indexer

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"
)

// indexer implements the Indexer interface.
type indexer struct {
	config    *Config
	discovery *FileDiscovery
	scanner   *FileScanner
	cache     *ScanCache
	progress  ProgressReporter
}

// New creates a new indexer instance with no progress reporting.
func New(config *Config) (Indexer, error) {
	return NewWithProgress(config, &NoOpProgressReporter{})
}

// NewWithProgress creates a new indexer that reports to progress.
func NewWithProgress(config *Config, progress ProgressReporter) (Indexer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	discovery, err := NewFileDiscovery(config.Extensions, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to compile exclude patterns: %w", err)
	}

	decoder, err := NewTextDecoder(config.Encoding)
	if err != nil {
		return nil, err
	}

	var cache *ScanCache
	if config.CacheScans {
		cache, err = NewScanCache(DefaultCacheCapacity)
		if err != nil {
			return nil, err
		}
	}

	return &indexer{
		config:    config,
		discovery: discovery,
		scanner:   NewFileScanner(NewLineMatcher(), decoder, cache),
		cache:     cache,
		progress:  progress,
	}, nil
}

// Index scans the accepted arguments one after another. Files are
// independent; the only shared state is the result slice.
func (idx *indexer) Index(ctx context.Context, args []string) (*Result, error) {
	start := time.Now()

	accepts := make([]bool, len(args))
	result := &Result{
		Matches:  []Match{},
		Skipped:  []string{},
		Accepted: []string{},
	}
	for i, arg := range args {
		accepts[i] = idx.discovery.Accept(arg)
		if accepts[i] {
			result.Accepted = append(result.Accepted, arg)
		} else {
			result.Skipped = append(result.Skipped, arg)
		}
	}
	result.Stats.FilesSkipped = len(result.Skipped)
	idx.progress.OnDiscoveryComplete(len(result.Accepted), len(result.Skipped))

	// Arguments are visited in command-line order so skip diagnostics and
	// scan failures surface in the same sequence as the arguments.
	idx.progress.OnFileProcessingStart(len(result.Accepted))
	for i, path := range args {
		if !accepts[i] {
			idx.progress.OnFileSkipped(path)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scan, hit, err := idx.scanner.scanFile(path)
		if err != nil {
			return nil, err
		}
		if hit {
			result.Stats.CacheHits++
		}

		result.Matches = append(result.Matches, stamp(scan.matches, path)...)
		result.Stats.FilesScanned++
		result.Stats.LinesScanned += scan.lines
		idx.progress.OnFileProcessed(path, len(scan.matches))
	}

	SortMatches(result.Matches)
	result.Stats.Matches = len(result.Matches)
	result.Stats.ProcessingTimeSeconds = elapsedSeconds(start)
	idx.progress.OnComplete(&result.Stats)

	return result, nil
}

// Invalidate forgets cached scans of paths. It is a no-op without a cache.
func (idx *indexer) Invalidate(paths ...string) {
	if idx.cache == nil {
		return
	}
	for _, p := range paths {
		idx.cache.Invalidate(p)
	}
}

// Close releases all resources held by the indexer.
func (idx *indexer) Close() error {
	if idx.cache != nil {
		idx.cache.Close()
	}
	return nil
}

// SortMatches orders matches by name, then file base name, then line number.
// Strings compare bytewise, which for UTF-8 is code point order. The sort is
// stable, so fully equal records keep their scan order.
func SortMatches(matches []Match) {
	slices.SortStableFunc(matches, CompareMatches)
}

// CompareMatches is the three-key ordering used by SortMatches.
func CompareMatches(a, b Match) int {
	return cmp.Or(
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.File, b.File),
		cmp.Compare(a.Line, b.Line),
	)
}
