package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/xref-functions/internal/indexer"
)

// TableWriter prints the fixed-width cross-reference table:
//
//	Function                       File                           Line
//	======================================================================
//	compute                        foo.cpp                        3
//
// Name and file columns are space padded to their width and never truncated;
// widths count code points.
type TableWriter struct {
	baseWriter
	layout Layout
}

// NewTableWriter creates a TableWriter that outputs to the given writer.
func NewTableWriter(output io.Writer, layout Layout) *TableWriter {
	return &TableWriter{
		baseWriter: newBaseWriter(output),
		layout:     layout,
	}
}

// Write prints the header, the separator and one row per match.
func (w *TableWriter) Write(matches []indexer.Match) error {
	bw := bufio.NewWriter(w.output)

	fmt.Fprintf(bw, "%-*s %-*s %s\n", w.layout.NameWidth, "Function", w.layout.FileWidth, "File", "Line")
	fmt.Fprintln(bw, strings.Repeat("=", w.layout.SeparatorWidth))
	for _, m := range matches {
		fmt.Fprintf(bw, "%-*s %-*s %d\n", w.layout.NameWidth, m.Name, w.layout.FileWidth, m.File, m.Line)
	}

	return bw.Flush()
}
