package pager

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEncoding is returned when a file is neither valid UTF-8
	// nor decodable with the configured fallback encoding.
	ErrInvalidEncoding = errors.New("text is not valid UTF-8")

	// ErrEmptyPath is returned when a document is opened without a path.
	ErrEmptyPath = errors.New("empty document path")
)

// LoadError reports that a document could not be read or decoded. It is
// terminal for the reader session that hit it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load document: %v", e.Err)
	}
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
