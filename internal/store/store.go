// Package store defines the storage interfaces for txtreader's persistence
// layer: the books on the shelf, their bookmarks, and runtime settings.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned (wrapped) when a book, bookmark or config key
// does not exist.
var ErrNotFound = errors.New("not found")

// BookStore manages book records. The book text itself lives in the
// library directory; a record only points at it.
type BookStore interface {
	// Create stores a new book. The ID must be set by the caller.
	Create(input *CreateBookInput) (*Book, error)

	// Get retrieves a single book by ID.
	Get(id string) (*Book, error)

	// FindByHash returns the book whose content hash matches, or an
	// ErrNotFound error.
	FindByHash(hash string) (*Book, error)

	// List returns all books, most recently added first.
	List() ([]*Book, error)

	// Delete removes a book and its bookmarks.
	Delete(id string) error

	// UpdateProgress records the last read location of a book.
	UpdateProgress(id string, location int, at time.Time) error

	// Count returns the number of books.
	Count() (int, error)

	// Close releases any resources.
	Close() error
}

// BookmarkStore manages bookmarks.
type BookmarkStore interface {
	// Create stores a bookmark. The book must exist.
	Create(input *CreateBookmarkInput) (*Bookmark, error)

	// ListForBook returns the bookmarks of a book ordered by location.
	ListForBook(bookID string) ([]*Bookmark, error)

	// Delete removes a bookmark by ID.
	Delete(id uint) error

	// DeleteForBook removes every bookmark of a book.
	DeleteForBook(bookID string) error

	// Close releases any resources.
	Close() error
}

// ConfigStore manages configuration persistence.
// Configuration is stored as key-value pairs.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns an ErrNotFound error if the key does not exist.
	Get(key string) (string, error)

	// Set stores a configuration value.
	// If the key already exists, its value is updated.
	Set(key, value string) error

	// List returns all configuration key-value pairs.
	List() (map[string]string, error)

	// Delete removes a configuration key.
	Delete(key string) error

	// Close releases any resources.
	Close() error
}

// Store combines the book, bookmark and config stores and manages their
// lifecycle as a single unit.
type Store interface {
	Books() BookStore
	Bookmarks() BookmarkStore
	Config() ConfigStore

	// Close releases all resources.
	Close() error
}
