package report

import (
	"encoding/json"
	"io"

	"github.com/mvp-joe/xref-functions/internal/indexer"
)

// JSONWriter outputs the records as an indented JSON array for tool
// integration.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write encodes matches in order. An empty slice encodes as [].
func (w *JSONWriter) Write(matches []indexer.Match) error {
	if matches == nil {
		matches = []indexer.Match{}
	}
	enc := json.NewEncoder(w.output)
	enc.SetIndent("", "  ")
	return enc.Encode(matches)
}
