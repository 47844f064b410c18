package indexer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the text encoding assumed for source files.
const DefaultEncoding = "utf-8"

// ErrUnknownEncoding indicates an encoding label that cannot be resolved.
var ErrUnknownEncoding = errors.New("unknown text encoding")

// TextDecoder turns raw file bytes into UTF-8 text without ever failing on
// malformed input.
type TextDecoder struct {
	name string
	enc  encoding.Encoding // nil for the UTF-8 fast path
}

// NewTextDecoder resolves a WHATWG encoding label such as "utf-8",
// "windows-1252" or "utf-16le". An empty label selects UTF-8.
func NewTextDecoder(label string) (*TextDecoder, error) {
	if isUTF8Label(label) {
		return &TextDecoder{name: DefaultEncoding}, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(label)
	}
	if name == DefaultEncoding {
		return &TextDecoder{name: DefaultEncoding}, nil
	}
	return &TextDecoder{name: name, enc: enc}, nil
}

// Name returns the canonical name of the encoding.
func (d *TextDecoder) Name() string {
	return d.name
}

// reader wraps r so that it yields UTF-8. For non-UTF-8 encodings bytes that
// cannot be decoded become U+FFFD.
func (d *TextDecoder) reader(r io.Reader) io.Reader {
	if d.enc == nil {
		return r
	}
	return transform.NewReader(r, d.enc.NewDecoder())
}

// clean drops byte sequences that are not valid UTF-8.
func (d *TextDecoder) clean(line []byte) string {
	return strings.ToValidUTF8(string(line), "")
}

func isUTF8Label(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}

// lineReader yields physical lines of a text stream. "\n", "\r\n" and a lone
// "\r" each terminate one line; terminators are not part of the line. Lines
// have no length limit.
type lineReader struct {
	r       *bufio.Reader
	pending [][]byte
	err     error
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next line, or io.EOF once the stream is exhausted.
func (lr *lineReader) Next() ([]byte, error) {
	for len(lr.pending) == 0 {
		if lr.err != nil {
			return nil, lr.err
		}

		chunk, err := lr.r.ReadBytes('\n')
		if err != nil {
			lr.err = err
		}
		if len(chunk) == 0 {
			continue
		}

		chunk = bytes.TrimSuffix(chunk, []byte("\n"))
		chunk = bytes.TrimSuffix(chunk, []byte("\r"))
		lr.pending = bytes.Split(chunk, []byte("\r"))
	}

	line := lr.pending[0]
	lr.pending = lr.pending[1:]
	return line, nil
}
