package config

import (
	"github.com/mvp-joe/xref-functions/internal/indexer"
	"github.com/mvp-joe/xref-functions/internal/report"
)

// Config represents the complete xref configuration.
// It can be loaded from .xref/config.yml with environment variable overrides.
// The defaults reproduce the classic report exactly.
type Config struct {
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Report ReportConfig `yaml:"report" mapstructure:"report"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
}

// ScanConfig defines which arguments are scanned and how files are decoded.
type ScanConfig struct {
	Extensions []string `yaml:"extensions" mapstructure:"extensions"` // case-sensitive suffixes with leading dot
	Exclude    []string `yaml:"exclude" mapstructure:"exclude"`       // glob patterns for arguments to skip
	Encoding   string   `yaml:"encoding" mapstructure:"encoding"`     // WHATWG label, e.g. "utf-8", "windows-1252"
}

// ReportConfig defines the output format and table layout.
type ReportConfig struct {
	Format         string `yaml:"format" mapstructure:"format"`                   // table, markdown, json
	NameWidth      int    `yaml:"name_width" mapstructure:"name_width"`           // function column width
	FileWidth      int    `yaml:"file_width" mapstructure:"file_width"`           // file column width
	SeparatorWidth int    `yaml:"separator_width" mapstructure:"separator_width"` // number of '=' under the header
}

// ExportConfig defines the optional SQLite export.
type ExportConfig struct {
	Database string `yaml:"database" mapstructure:"database"` // empty disables export
}

// WatchConfig defines watch mode behavior.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before a rescan
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	layout := report.DefaultLayout()
	return &Config{
		Scan: ScanConfig{
			Extensions: append([]string(nil), indexer.DefaultExtensions...),
			Exclude:    []string{},
			Encoding:   indexer.DefaultEncoding,
		},
		Report: ReportConfig{
			Format:         report.FormatTable,
			NameWidth:      layout.NameWidth,
			FileWidth:      layout.FileWidth,
			SeparatorWidth: layout.SeparatorWidth,
		},
		Export: ExportConfig{
			Database: "",
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}

// Layout returns the table layout described by the report section.
func (c *Config) Layout() report.Layout {
	return report.Layout{
		NameWidth:      c.Report.NameWidth,
		FileWidth:      c.Report.FileWidth,
		SeparatorWidth: c.Report.SeparatorWidth,
	}
}
