// Package libfs manages the library directory that holds imported books.
package libfs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConfigDir      = ".config/txtreader"
	DefaultBookDir = "books"
)

// LibraryFS is a filesystem rooted at the library directory.
type LibraryFS struct {
	root string
}

// New creates a LibraryFS at the given location.
// If location is empty, uses ~/.config/txtreader/books/.
// If location is absolute, uses it directly.
// If location is relative, treats it as a subdirectory of ~/.config/txtreader/.
func New(location string) (*LibraryFS, error) {
	root := location
	if root == "" || !filepath.IsAbs(root) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		if root == "" {
			root = DefaultBookDir
		}
		root = filepath.Join(homeDir, ConfigDir, root)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}

	return &LibraryFS{root: root}, nil
}

// NewWithRoot creates a LibraryFS with a custom root (for testing)
func NewWithRoot(root string) *LibraryFS {
	return &LibraryFS{root: root}
}

// Open implements fs.FS
func (lfs *LibraryFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return os.Open(filepath.Join(lfs.root, name))
}

// ReadDir implements fs.ReadDirFS
func (lfs *LibraryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	return os.ReadDir(filepath.Join(lfs.root, name))
}

// Store copies r into the library under name, replacing any file of the
// same name. The data is written to a temporary file first and renamed into
// place, so a failed copy never clobbers an existing book. It returns the
// absolute path of the stored file and the number of bytes written.
func (lfs *LibraryFS) Store(name string, r io.Reader) (string, int64, error) {
	name = CleanName(name)
	if !fs.ValidPath(name) || name == "." {
		return "", 0, &fs.PathError{Op: "store", Path: name, Err: fs.ErrInvalid}
	}

	if err := os.MkdirAll(lfs.root, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create library directory: %w", err)
	}

	tmp, err := os.CreateTemp(lfs.root, ".import-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("failed to copy book: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to write book: %w", err)
	}

	dst := filepath.Join(lfs.root, name)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", 0, fmt.Errorf("failed to move book into library: %w", err)
	}
	return dst, n, nil
}

// Remove removes a file from the library. path may be absolute, as stored
// on a book record, but must lie inside the library root.
func (lfs *LibraryFS) Remove(path string) error {
	name, err := lfs.rel(path)
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(lfs.root, name))
}

// Exists reports whether path exists. Paths outside the library are checked
// as given, since books imported before a library move keep their old path.
func (lfs *LibraryFS) Exists(path string) bool {
	if !filepath.IsAbs(path) {
		path = filepath.Join(lfs.root, path)
	}
	_, err := os.Stat(path)
	return err == nil
}

// Path returns the absolute path of name inside the library.
func (lfs *LibraryFS) Path(name string) string {
	return filepath.Join(lfs.root, CleanName(name))
}

// Root returns the root directory path
func (lfs *LibraryFS) Root() string {
	return lfs.root
}

func (lfs *LibraryFS) rel(path string) (string, error) {
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(lfs.root, path)
		if err != nil {
			return "", &fs.PathError{Op: "remove", Path: path, Err: fs.ErrInvalid}
		}
		path = r
	}
	path = filepath.ToSlash(path)
	if !fs.ValidPath(path) || path == "." {
		return "", &fs.PathError{Op: "remove", Path: path, Err: fs.ErrInvalid}
	}
	return path, nil
}

// CleanName reduces an imported file name to a single path element.
func CleanName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "/" || name == ".." {
		return "."
	}
	return name
}
