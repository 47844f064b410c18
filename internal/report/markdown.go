package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/mvp-joe/xref-functions/internal/indexer"
)

// MarkdownWriter outputs the cross-reference as a GitHub-flavored table.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs a heading followed by a Function/File/Line table.
func (w *MarkdownWriter) Write(matches []indexer.Match) error {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{"`" + m.Name + "`", m.File, strconv.Itoa(m.Line)})
	}

	md := markdown.NewMarkdown(w.output)
	md.H1("Function Cross-Reference")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header:    []string{"Function", "File", "Line"},
		Rows:      rows,
		Alignment: []markdown.TableAlignment{markdown.AlignLeft, markdown.AlignLeft, markdown.AlignRight},
	})

	return md.Build()
}
