package indexer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultExtensions are the C/C++ source and header suffixes accepted when no
// configuration overrides them.
var DefaultExtensions = []string{".cpp", ".h", ".hpp", ".cc"}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery decides which command-line arguments are scannable source files.
type FileDiscovery struct {
	extensions      map[string]bool
	excludePatterns []compiledPattern
}

// NewFileDiscovery creates a discovery filter for the given extension allow-list
// and exclude globs. Extensions are compared case-sensitively and include the
// leading dot.
func NewFileDiscovery(extensions, excludePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		extensions: make(map[string]bool, len(extensions)),
	}
	for _, ext := range extensions {
		fd.extensions[ext] = true
	}

	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.excludePatterns = append(fd.excludePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return fd, nil
}

// Accept reports whether arg names an existing regular file (after following
// symlinks) with an allowed extension that no exclude pattern matches.
func (fd *FileDiscovery) Accept(arg string) bool {
	if !fd.extensions[Suffix(arg)] {
		return false
	}
	if fd.shouldExclude(arg) {
		return false
	}

	info, err := os.Stat(arg)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// shouldExclude checks the slash-normalized argument and its base name against
// the exclude patterns.
func (fd *FileDiscovery) shouldExclude(arg string) bool {
	if len(fd.excludePatterns) == 0 {
		return false
	}

	path := filepath.ToSlash(filepath.Clean(arg))
	base := filepath.Base(arg)
	for _, cp := range fd.excludePatterns {
		if cp.glob.Match(path) || cp.glob.Match(base) {
			return true
		}
	}
	return false
}

// Suffix returns the extension of the final element of path, including the
// dot. A name whose only dot is its first or last character has no extension,
// so ".cpp" and "main." both yield "".
func Suffix(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}
