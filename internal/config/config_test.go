package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/xref-functions/internal/report"
)

// Test Plan for Config System:
// - Default() reproduces the classic report and passes validation
// - Load() uses defaults when no config file exists
// - Load() reads .xref/config.yml and .xref/config.yaml
// - Load() merges a partial config file with defaults
// - NewFileLoader() reads an explicit file and fails when it is missing
// - Environment variables override config file values and defaults
// - Load() returns error for malformed YAML and invalid values
// - Validate() rejects each invalid field with its sentinel error
// - Validate() reports multiple errors at once
// - Layout() and ToIndexerConfig() carry the configured values

func writeConfig(t *testing.T, rootDir, name, content string) string {
	t.Helper()

	dir := filepath.Join(rootDir, ".xref")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, []string{".cpp", ".h", ".hpp", ".cc"}, cfg.Scan.Extensions)
	assert.Empty(t, cfg.Scan.Exclude)
	assert.Equal(t, "utf-8", cfg.Scan.Encoding)

	assert.Equal(t, report.FormatTable, cfg.Report.Format)
	assert.Equal(t, 30, cfg.Report.NameWidth)
	assert.Equal(t, 30, cfg.Report.FileWidth)
	assert.Equal(t, 70, cfg.Report.SeparatorWidth)

	assert.Empty(t, cfg.Export.Database)
	assert.Equal(t, 500, cfg.Watch.DebounceMS)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	loader := NewLoader(t.TempDir())
	cfg, err := loader.Load()

	require.NoError(t, err)

	expected := Default()
	assert.Equal(t, expected.Scan.Extensions, cfg.Scan.Extensions)
	assert.Empty(t, cfg.Scan.Exclude)
	assert.Equal(t, expected.Scan.Encoding, cfg.Scan.Encoding)
	assert.Equal(t, expected.Report, cfg.Report)
	assert.Equal(t, expected.Export, cfg.Export)
	assert.Equal(t, expected.Watch, cfg.Watch)
	assert.Empty(t, loader.ConfigFileUsed())
}

func TestLoad_LoadsFromConfigYml(t *testing.T) {
	tempDir := t.TempDir()
	path := writeConfig(t, tempDir, "config.yml", `
scan:
  extensions: [".c", ".h"]
  exclude:
    - "**/third_party/**"
  encoding: windows-1252

report:
  format: markdown
  name_width: 40
  file_width: 20
  separator_width: 61

export:
  database: out/xref.db

watch:
  debounce_ms: 250
`)

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{".c", ".h"}, cfg.Scan.Extensions)
	assert.Equal(t, []string{"**/third_party/**"}, cfg.Scan.Exclude)
	assert.Equal(t, "windows-1252", cfg.Scan.Encoding)
	assert.Equal(t, "markdown", cfg.Report.Format)
	assert.Equal(t, 40, cfg.Report.NameWidth)
	assert.Equal(t, 20, cfg.Report.FileWidth)
	assert.Equal(t, 61, cfg.Report.SeparatorWidth)
	assert.Equal(t, "out/xref.db", cfg.Export.Database)
	assert.Equal(t, 250, cfg.Watch.DebounceMS)
	assert.Equal(t, path, loader.ConfigFileUsed())
}

func TestLoad_LoadsFromConfigYaml(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yaml", `
report:
  format: json
`)

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Report.Format)
}

func TestLoad_MergesConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
report:
  name_width: 24
`)

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Report.NameWidth)
	assert.Equal(t, 30, cfg.Report.FileWidth)
	assert.Equal(t, report.FormatTable, cfg.Report.Format)
	assert.Equal(t, Default().Scan.Extensions, cfg.Scan.Extensions)
}

func TestNewFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  format: markdown\n"), 0644))

	loader := NewFileLoader(path)
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Report.Format)
	assert.Equal(t, path, loader.ConfigFileUsed())

	_, err = NewFileLoader(filepath.Join(t.TempDir(), "missing.yml")).Load()
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverridesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
report:
  format: markdown
  name_width: 40
`)

	t.Setenv("XREF_REPORT_FORMAT", "json")
	t.Setenv("XREF_REPORT_NAME_WIDTH", "12")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.Equal(t, 12, cfg.Report.NameWidth)
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("XREF_SCAN_EXTENSIONS", ".c,.cc")
	t.Setenv("XREF_SCAN_ENCODING", "latin1")
	t.Setenv("XREF_EXPORT_DATABASE", "/tmp/xref.db")
	t.Setenv("XREF_WATCH_DEBOUNCE_MS", "1000")
	t.Setenv("XREF_REPORT_SEPARATOR_WIDTH", "10")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{".c", ".cc"}, cfg.Scan.Extensions)
	assert.Equal(t, "latin1", cfg.Scan.Encoding)
	assert.Equal(t, "/tmp/xref.db", cfg.Export.Database)
	assert.Equal(t, 1000, cfg.Watch.DebounceMS)
	assert.Equal(t, 10, cfg.Report.SeparatorWidth)
}

func TestLoad_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", "report: [format: table\n")

	_, err := NewLoader(tempDir).Load()
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.yml", `
report:
  format: xml
`)

	_, err := NewLoader(tempDir).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty extensions", func(c *Config) { c.Scan.Extensions = nil }, ErrEmptyExtensions},
		{"extension without dot", func(c *Config) { c.Scan.Extensions = []string{"cpp"} }, ErrInvalidExtension},
		{"bare dot", func(c *Config) { c.Scan.Extensions = []string{"."} }, ErrInvalidExtension},
		{"double extension", func(c *Config) { c.Scan.Extensions = []string{".tar.gz"} }, ErrInvalidExtension},
		{"bad pattern", func(c *Config) { c.Scan.Exclude = []string{"[oops"} }, ErrInvalidPattern},
		{"unknown encoding", func(c *Config) { c.Scan.Encoding = "klingon" }, ErrInvalidEncoding},
		{"unknown format", func(c *Config) { c.Report.Format = "xml" }, ErrInvalidFormat},
		{"negative name width", func(c *Config) { c.Report.NameWidth = -1 }, ErrInvalidWidth},
		{"negative separator", func(c *Config) { c.Report.SeparatorWidth = -5 }, ErrInvalidWidth},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, ErrInvalidDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Scan.Extensions = []string{"cpp", "h"}
	cfg.Report.Format = "xml"
	cfg.Watch.DebounceMS = -1

	err := Validate(cfg)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrInvalidExtension))
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.True(t, errors.Is(err, ErrInvalidDebounce))
	assert.Contains(t, err.Error(), "validation failed:")
	assert.Contains(t, err.Error(), `"cpp"`)
	assert.Contains(t, err.Error(), `"h"`)
}

func TestValidate_FormatIsCaseInsensitive(t *testing.T) {
	cfg := Default()
	cfg.Report.Format = "JSON"
	assert.NoError(t, Validate(cfg))
}

func TestConfig_Conversions(t *testing.T) {
	cfg := Default()
	cfg.Scan.Exclude = []string{"gen_*"}
	cfg.Report.NameWidth = 12

	assert.Equal(t, report.Layout{NameWidth: 12, FileWidth: 30, SeparatorWidth: 70}, cfg.Layout())

	ic := cfg.ToIndexerConfig(true)
	assert.Equal(t, cfg.Scan.Extensions, ic.Extensions)
	assert.Equal(t, []string{"gen_*"}, ic.ExcludePatterns)
	assert.Equal(t, "utf-8", ic.Encoding)
	assert.True(t, ic.CacheScans)
}
