// Package sysboard implements the system clipboard. It uses the native
// clipboard through golang.design/x/clipboard and falls back to pbcopy and
// pbpaste on macOS, or xclip and xsel on Linux, when that cannot be
// initialized (for example on a headless build without cgo).
package sysboard

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"

	xclipboard "golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func nativeReady() bool {
	initOnce.Do(func() {
		initErr = xclipboard.Init()
	})
	return initErr == nil
}

// SystemClipboard is the system clipboard.
type SystemClipboard struct{}

// New creates a SystemClipboard.
func New() *SystemClipboard {
	return &SystemClipboard{}
}

// IsSupported reports whether any clipboard backend is available.
func (s *SystemClipboard) IsSupported() bool {
	if nativeReady() {
		return true
	}
	_, _, ok := commands()
	return ok
}

// Read returns the clipboard text.
func (s *SystemClipboard) Read() (io.ReadCloser, error) {
	if nativeReady() {
		return io.NopCloser(bytes.NewReader(xclipboard.Read(xclipboard.FmtText))), nil
	}

	read, _, ok := commands()
	if !ok {
		return nil, fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)
	}
	var lastErr error
	for _, argv := range read {
		out, err := exec.Command(argv[0], argv[1:]...).Output()
		if err == nil {
			return io.NopCloser(bytes.NewReader(out)), nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to read clipboard: %w", lastErr)
}

// Write replaces the clipboard text with the content of r.
func (s *SystemClipboard) Write(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read clipboard input: %w", err)
	}

	if nativeReady() {
		xclipboard.Write(xclipboard.FmtText, data)
		return nil
	}

	_, write, ok := commands()
	if !ok {
		return fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)
	}
	var lastErr error
	for _, argv := range write {
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = bytes.NewReader(data)
		if lastErr = cmd.Run(); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to write clipboard: %w", lastErr)
}

// commands returns the installed read and write commands for this platform.
func commands() (read, write [][]string, ok bool) {
	switch runtime.GOOS {
	case "darwin":
		read = [][]string{{"pbpaste"}}
		write = [][]string{{"pbcopy"}}
	case "linux":
		read = [][]string{{"xclip", "-selection", "clipboard", "-o"}, {"xsel", "--clipboard", "--output"}}
		write = [][]string{{"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}}
	default:
		return nil, nil, false
	}
	read, write = installed(read), installed(write)
	return read, write, len(read) > 0 && len(write) > 0
}

func installed(cmds [][]string) [][]string {
	var out [][]string
	for _, argv := range cmds {
		if _, err := exec.LookPath(argv[0]); err == nil {
			out = append(out, argv)
		}
	}
	return out
}
