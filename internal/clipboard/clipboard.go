// Package clipboard defines the clipboard used to copy pages out of the
// reader and to import books from copied text.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmpty is returned by ReadText when the clipboard holds no text.
var ErrEmpty = errors.New("clipboard is empty")

// Clipboard reads and writes text on a clipboard.
type Clipboard interface {
	Read() (io.ReadCloser, error)
	Write(r io.Reader) error
	IsSupported() bool
}

// ReadText returns the clipboard content as a string.
func ReadText(c Clipboard) (string, error) {
	if !c.IsSupported() {
		return "", fmt.Errorf("clipboard not supported on this system")
	}

	r, err := c.Read()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard content: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", ErrEmpty
	}
	return string(data), nil
}

// WriteText puts text on the clipboard.
func WriteText(c Clipboard, text string) error {
	if !c.IsSupported() {
		return fmt.Errorf("clipboard not supported on this system")
	}
	if err := c.Write(strings.NewReader(text)); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	return nil
}
