package config

import (
	"github.com/mvp-joe/xref-functions/internal/indexer"
)

// ToIndexerConfig converts a Config to an indexer.Config.
// cacheScans should be set when the indexer runs more than once, as in watch
// mode.
func (c *Config) ToIndexerConfig(cacheScans bool) *indexer.Config {
	return &indexer.Config{
		Extensions:      c.Scan.Extensions,
		ExcludePatterns: c.Scan.Exclude,
		Encoding:        c.Scan.Encoding,
		CacheScans:      cacheScans,
	}
}
