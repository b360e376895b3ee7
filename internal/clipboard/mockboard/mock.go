// Package mockboard provides an in-memory clipboard for tests.
package mockboard

import (
	"bytes"
	"io"
)

// MockClipboard is an in-memory clipboard. Setting Unsupported makes it
// report that no clipboard is available.
type MockClipboard struct {
	data        []byte
	writes      int
	Unsupported bool
}

// New creates an empty MockClipboard.
func New() *MockClipboard {
	return &MockClipboard{}
}

// Read returns the current content.
func (m *MockClipboard) Read() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

// Write replaces the content with everything read from r.
func (m *MockClipboard) Write(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.data = data
	m.writes++
	return nil
}

// SetData sets the content directly.
func (m *MockClipboard) SetData(data []byte) {
	m.data = data
}

// GetData returns the current content.
func (m *MockClipboard) GetData() []byte {
	return m.data
}

// Writes returns how many times Write succeeded.
func (m *MockClipboard) Writes() int {
	return m.writes
}

// IsSupported reports whether the clipboard is usable.
func (m *MockClipboard) IsSupported() bool {
	return !m.Unsupported
}
