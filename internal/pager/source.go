package pager

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DocumentSource supplies the decoded full text of a book.
type DocumentSource interface {
	Load(ctx context.Context, path string) (string, error)
}

// ProgressSink persists the last read offset when a reader session ends.
type ProgressSink interface {
	SaveProgress(ctx context.Context, bookID string, location int, at time.Time) error
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// FileSource loads documents from the local filesystem.
type FileSource struct {
	// Fallback names an encoding (WHATWG label, e.g. "gb18030" or
	// "windows-1252") used when the file is not valid UTF-8. Empty means
	// UTF-8 only.
	Fallback string
}

// Load reads and decodes the file at path. Every failure is a *LoadError.
func (s FileSource) Load(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", &LoadError{Err: ErrEmptyPath}
	}
	if err := ctx.Err(); err != nil {
		return "", &LoadError{Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Path: path, Err: err}
	}

	text, err := Decode(data, s.Fallback)
	if err != nil {
		return "", &LoadError{Path: path, Err: err}
	}
	return text, nil
}

// Decode converts raw file bytes to text. A UTF-8 BOM is stripped, a
// UTF-16 BOM selects UTF-16, and anything else must be valid UTF-8 unless
// a fallback encoding is given.
func Decode(data []byte, fallback string) (string, error) {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		data = data[len(utf8BOM):]
	case bytes.HasPrefix(data, utf16LEBOM), bytes.HasPrefix(data, utf16BEBOM):
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("failed to decode UTF-16: %w", err)
		}
		return string(out), nil
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	if fallback == "" {
		return "", ErrInvalidEncoding
	}

	enc, err := htmlindex.Get(fallback)
	if err != nil {
		return "", fmt.Errorf("unknown encoding %q: %w", fallback, err)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", fallback, err)
	}
	return string(out), nil
}
