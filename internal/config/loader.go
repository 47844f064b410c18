package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)

	// ConfigFileUsed returns the config file read by the last Load, if any.
	ConfigFileUsed() string
}

type loader struct {
	rootDir    string
	configFile string
	used       string
}

// NewLoader creates a new configuration loader that looks for
// .xref/config.yml (or .yaml) under rootDir. A missing file is not an error.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader for an explicit config file, which must exist.
func NewFileLoader(configFile string) Loader {
	return &loader{
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (XREF_*)
// 2. Config file (--config, or .xref/config.yml / .xref/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".xref"))
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("XREF")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., XREF_REPORT_FORMAT)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Scan configuration
	v.BindEnv("scan.extensions")
	v.BindEnv("scan.exclude")
	v.BindEnv("scan.encoding")

	// Report configuration
	v.BindEnv("report.format")
	v.BindEnv("report.name_width")
	v.BindEnv("report.file_width")
	v.BindEnv("report.separator_width")

	// Export and watch configuration
	v.BindEnv("export.database")
	v.BindEnv("watch.debounce_ms")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	l.used = v.ConfigFileUsed()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ConfigFileUsed returns the path of the config file read by Load.
func (l *loader) ConfigFileUsed() string {
	if l.used == "" {
		return ""
	}
	if _, err := os.Stat(l.used); err != nil {
		return ""
	}
	return l.used
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("scan.extensions", defaults.Scan.Extensions)
	v.SetDefault("scan.exclude", defaults.Scan.Exclude)
	v.SetDefault("scan.encoding", defaults.Scan.Encoding)

	v.SetDefault("report.format", defaults.Report.Format)
	v.SetDefault("report.name_width", defaults.Report.NameWidth)
	v.SetDefault("report.file_width", defaults.Report.FileWidth)
	v.SetDefault("report.separator_width", defaults.Report.SeparatorWidth)

	v.SetDefault("export.database", defaults.Export.Database)
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}
