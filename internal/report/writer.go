package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/xref-functions/internal/indexer"
)

// Supported output formats.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ErrUnknownFormat indicates an output format with no writer.
var ErrUnknownFormat = errors.New("unknown report format")

// Writer renders sorted match records.
type Writer interface {
	// Write outputs matches, which must already be sorted.
	Write(matches []indexer.Match) error
}

// Layout controls the fixed-width table columns.
type Layout struct {
	NameWidth      int
	FileWidth      int
	SeparatorWidth int
}

// DefaultLayout is the layout of the classic report.
func DefaultLayout() Layout {
	return Layout{
		NameWidth:      30,
		FileWidth:      30,
		SeparatorWidth: 70,
	}
}

// Formats lists the accepted format names.
func Formats() []string {
	return []string{FormatTable, FormatMarkdown, FormatJSON}
}

// NewWriter returns the writer for format, writing to output.
func NewWriter(format string, output io.Writer, layout Layout) (Writer, error) {
	switch strings.ToLower(format) {
	case "", FormatTable:
		return NewTableWriter(output, layout), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
