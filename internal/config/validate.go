package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/xref-functions/internal/indexer"
	"github.com/mvp-joe/xref-functions/internal/report"
)

var (
	// ErrEmptyExtensions indicates an empty extension allow-list
	ErrEmptyExtensions = errors.New("empty extension list")

	// ErrInvalidExtension indicates an extension without a leading dot
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrInvalidPattern indicates an exclude glob that does not compile
	ErrInvalidPattern = errors.New("invalid exclude pattern")

	// ErrInvalidEncoding indicates an unknown text encoding label
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrInvalidFormat indicates an unsupported report format
	ErrInvalidFormat = errors.New("invalid report format")

	// ErrInvalidWidth indicates a negative column or separator width
	ErrInvalidWidth = errors.New("invalid width")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid debounce")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}

	if err := validateReport(&cfg.Report); err != nil {
		errs = append(errs, err)
	}

	if cfg.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMS))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateScan(cfg *ScanConfig) error {
	var errs []error

	if len(cfg.Extensions) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one extension required", ErrEmptyExtensions))
	}
	for _, ext := range cfg.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") || strings.Count(ext, ".") != 1 {
			errs = append(errs, fmt.Errorf("%w: %q must be a dot followed by a suffix, e.g. \".cpp\"", ErrInvalidExtension, ext))
		}
	}

	for _, pattern := range cfg.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if _, err := indexer.NewTextDecoder(cfg.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidEncoding, err))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateReport(cfg *ReportConfig) error {
	var errs []error

	if !slices.Contains(report.Formats(), strings.ToLower(cfg.Format)) {
		errs = append(errs, fmt.Errorf("%w: must be one of %s, got '%s'", ErrInvalidFormat, strings.Join(report.Formats(), ", "), cfg.Format))
	}

	widths := []struct {
		name  string
		value int
	}{
		{"name_width", cfg.NameWidth},
		{"file_width", cfg.FileWidth},
		{"separator_width", cfg.SeparatorWidth},
	}
	for _, w := range widths {
		if w.value < 0 {
			errs = append(errs, fmt.Errorf("%w: %s cannot be negative, got %d", ErrInvalidWidth, w.name, w.value))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// The result still matches every sentinel through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var flat []error
	for _, err := range errs {
		var ve *validationError
		if errors.As(err, &ve) {
			flat = append(flat, ve.errs...)
			continue
		}
		flat = append(flat, err)
	}
	return &validationError{errs: flat}
}

// validationError lists several validation failures.
type validationError struct {
	errs []error
}

func (e *validationError) Error() string {
	msgs := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e *validationError) Unwrap() []error {
	return e.errs
}
