package indexer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/maypok86/otter"
)

// DefaultCacheCapacity bounds the number of file scans kept in memory.
const DefaultCacheCapacity = 4096

// scanKey identifies one version of a file. Any change to size or modification
// time produces a new key, so stale entries are never returned.
type scanKey struct {
	path     string
	size     int64
	modTime  int64
	encoding string
}

// ScanCache memoizes per-file scan results across indexing passes. It is used
// by watch mode so that unchanged inputs are not read again.
type ScanCache struct {
	cache otter.Cache[scanKey, fileScan]

	// keys tracks live keys per absolute path for explicit invalidation.
	mu   sync.Mutex
	keys map[string][]scanKey
}

// NewScanCache creates a cache holding up to capacity file scans.
func NewScanCache(capacity int) (*ScanCache, error) {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	c, err := otter.MustBuilder[scanKey, fileScan](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan cache: %w", err)
	}
	return &ScanCache{
		cache: c,
		keys:  make(map[string][]scanKey),
	}, nil
}

// keyFor stats path and returns its cache key.
func keyFor(path, encoding string) (scanKey, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return scanKey{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return scanKey{}, err
	}
	return scanKey{
		path:     abs,
		size:     info.Size(),
		modTime:  info.ModTime().UnixNano(),
		encoding: encoding,
	}, nil
}

func (c *ScanCache) get(key scanKey) (fileScan, bool) {
	return c.cache.Get(key)
}

func (c *ScanCache) set(key scanKey, scan fileScan) {
	if !c.cache.Set(key, scan) {
		return
	}
	c.mu.Lock()
	c.keys[key.path] = append(c.keys[key.path], key)
	c.mu.Unlock()
}

// Invalidate drops every cached version of path.
func (c *ScanCache) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	c.mu.Lock()
	keys := c.keys[abs]
	delete(c.keys, abs)
	c.mu.Unlock()

	for _, key := range keys {
		c.cache.Delete(key)
	}
}

// Close releases the cache's background resources.
func (c *ScanCache) Close() {
	c.cache.Close()
}
