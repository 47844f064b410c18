package indexer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrUnreadableFile indicates an accepted file that could not be opened or read.
var ErrUnreadableFile = errors.New("unreadable file")

// FileScanner applies a LineMatcher to every line of a file.
type FileScanner struct {
	matcher LineMatcher
	decoder *TextDecoder
	cache   *ScanCache
}

// NewFileScanner creates a scanner. cache may be nil.
func NewFileScanner(matcher LineMatcher, decoder *TextDecoder, cache *ScanCache) *FileScanner {
	return &FileScanner{
		matcher: matcher,
		decoder: decoder,
		cache:   cache,
	}
}

// ScanFile returns one Match per matching line of the file at path, in line
// order, tagged with the file's base name. Failure to open or read the file is
// returned wrapped in ErrUnreadableFile.
func (s *FileScanner) ScanFile(path string) ([]Match, error) {
	scan, _, err := s.scanFile(path)
	if err != nil {
		return nil, err
	}
	return stamp(scan.matches, path), nil
}

// scanFile consults the cache before reading path. The boolean reports a
// cache hit.
func (s *FileScanner) scanFile(path string) (fileScan, bool, error) {
	if s.cache == nil {
		scan, err := s.read(path)
		return scan, false, err
	}

	key, err := keyFor(path, s.decoder.Name())
	if err != nil {
		return fileScan{}, false, fmt.Errorf("%w: %s: %w", ErrUnreadableFile, path, err)
	}
	if scan, ok := s.cache.get(key); ok {
		return scan, true, nil
	}

	scan, err := s.read(path)
	if err != nil {
		return fileScan{}, false, err
	}
	s.cache.set(key, scan)
	return scan, false, nil
}

func (s *FileScanner) read(path string) (fileScan, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileScan{}, fmt.Errorf("%w: %s: %w", ErrUnreadableFile, path, err)
	}
	defer f.Close()

	scan, err := s.scan(f)
	if err != nil {
		return fileScan{}, fmt.Errorf("%w: %s: %w", ErrUnreadableFile, path, err)
	}
	return scan, nil
}

// scan runs the matcher over r. Matches carry name and line only; callers
// stamp the file fields.
func (s *FileScanner) scan(r io.Reader) (fileScan, error) {
	lr := newLineReader(s.decoder.reader(r))
	scan := fileScan{matches: []Match{}}

	for {
		raw, err := lr.Next()
		if err == io.EOF {
			return scan, nil
		}
		if err != nil {
			return fileScan{}, err
		}

		scan.lines++
		if name, ok := s.matcher.Match(s.decoder.clean(raw)); ok {
			scan.matches = append(scan.matches, Match{Name: name, Line: scan.lines})
		}
	}
}

// stamp copies matches, filling in the file base name and argument path.
func stamp(matches []Match, path string) []Match {
	out := make([]Match, len(matches))
	base := filepath.Base(path)
	for i, m := range matches {
		m.File = base
		m.Path = path
		out[i] = m
	}
	return out
}
