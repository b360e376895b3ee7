// Package memstore provides an in-memory implementation of the store interfaces.
// This implementation is designed for fast unit testing and does not persist data.
package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yiblet/txtreader/internal/store"
)

// MemoryStore is an in-memory implementation of store.Store.
// It uses maps for storage and is thread-safe via mutexes.
// Data is not persisted and exists only for the lifetime of the process.
type MemoryStore struct {
	data      *memoryData
	books     *memoryBookStore
	bookmarks *memoryBookmarkStore
	config    *memoryConfigStore
}

// memoryData holds books and bookmarks under one lock so that deleting a
// book removes its bookmarks atomically.
type memoryData struct {
	mu         sync.RWMutex
	books      map[string]*store.Book
	bookmarks  map[uint]*store.Bookmark
	nextMarkID uint
}

// NewMemoryStore creates a new in-memory store for testing.
func NewMemoryStore() *MemoryStore {
	data := &memoryData{
		books:      make(map[string]*store.Book),
		bookmarks:  make(map[uint]*store.Bookmark),
		nextMarkID: 1,
	}
	return &MemoryStore{
		data:      data,
		books:     &memoryBookStore{data: data},
		bookmarks: &memoryBookmarkStore{data: data},
		config:    newMemoryConfigStore(),
	}
}

// Books returns the book store.
func (m *MemoryStore) Books() store.BookStore {
	return m.books
}

// Bookmarks returns the bookmark store.
func (m *MemoryStore) Bookmarks() store.BookmarkStore {
	return m.bookmarks
}

// Config returns the config store.
func (m *MemoryStore) Config() store.ConfigStore {
	return m.config
}

// Close releases resources (no-op for memory store).
func (m *MemoryStore) Close() error {
	return nil
}

type memoryBookStore struct {
	data *memoryData
}

func copyBook(b *store.Book) *store.Book {
	c := *b
	if b.LastReadAt != nil {
		at := *b.LastReadAt
		c.LastReadAt = &at
	}
	return &c
}

func (m *memoryBookStore) Create(input *store.CreateBookInput) (*store.Book, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("failed to create book: missing id")
	}

	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	if _, exists := m.data.books[input.ID]; exists {
		return nil, fmt.Errorf("failed to create book: duplicate id %s", input.ID)
	}

	addedAt := input.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now()
	}

	book := &store.Book{
		ID:         input.ID,
		Title:      input.Title,
		Author:     input.Author,
		FilePath:   input.FilePath,
		Size:       input.Size,
		Hash:       input.Hash,
		CoverColor: input.CoverColor,
		AddedAt:    addedAt,
	}
	m.data.books[book.ID] = book
	return copyBook(book), nil
}

func (m *memoryBookStore) Get(id string) (*store.Book, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()

	book, ok := m.data.books[id]
	if !ok {
		return nil, fmt.Errorf("book %s: %w", id, store.ErrNotFound)
	}
	return copyBook(book), nil
}

func (m *memoryBookStore) FindByHash(hash string) (*store.Book, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()

	var found *store.Book
	for _, book := range m.data.books {
		if book.Hash != hash {
			continue
		}
		if found == nil || book.AddedAt.Before(found.AddedAt) {
			found = book
		}
	}
	if found == nil {
		return nil, fmt.Errorf("book with hash %s: %w", hash, store.ErrNotFound)
	}
	return copyBook(found), nil
}

// List returns books sorted by AddedAt descending (newest first).
func (m *memoryBookStore) List() ([]*store.Book, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()

	books := make([]*store.Book, 0, len(m.data.books))
	for _, book := range m.data.books {
		books = append(books, copyBook(book))
	}
	sort.Slice(books, func(i, j int) bool {
		if books[i].AddedAt.Equal(books[j].AddedAt) {
			return books[i].ID < books[j].ID
		}
		return books[i].AddedAt.After(books[j].AddedAt)
	})
	return books, nil
}

func (m *memoryBookStore) Delete(id string) error {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	if _, ok := m.data.books[id]; !ok {
		return fmt.Errorf("book %s: %w", id, store.ErrNotFound)
	}
	delete(m.data.books, id)
	for markID, mark := range m.data.bookmarks {
		if mark.BookID == id {
			delete(m.data.bookmarks, markID)
		}
	}
	return nil
}

func (m *memoryBookStore) UpdateProgress(id string, location int, at time.Time) error {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	book, ok := m.data.books[id]
	if !ok {
		return fmt.Errorf("book %s: %w", id, store.ErrNotFound)
	}
	book.LastReadLocation = location
	book.LastReadAt = &at
	return nil
}

func (m *memoryBookStore) Count() (int, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()
	return len(m.data.books), nil
}

func (m *memoryBookStore) Close() error {
	return nil
}

type memoryBookmarkStore struct {
	data *memoryData
}

func (m *memoryBookmarkStore) Create(input *store.CreateBookmarkInput) (*store.Bookmark, error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	if _, ok := m.data.books[input.BookID]; !ok {
		return nil, fmt.Errorf("book %s: %w", input.BookID, store.ErrNotFound)
	}

	mark := &store.Bookmark{
		ID:        m.data.nextMarkID,
		BookID:    input.BookID,
		Location:  input.Location,
		Content:   input.Content,
		Note:      input.Note,
		CreatedAt: time.Now(),
	}
	m.data.nextMarkID++
	m.data.bookmarks[mark.ID] = mark

	c := *mark
	return &c, nil
}

// ListForBook returns bookmarks sorted by location, then by ID.
func (m *memoryBookmarkStore) ListForBook(bookID string) ([]*store.Bookmark, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()

	marks := make([]*store.Bookmark, 0)
	for _, mark := range m.data.bookmarks {
		if mark.BookID == bookID {
			c := *mark
			marks = append(marks, &c)
		}
	}
	sort.Slice(marks, func(i, j int) bool {
		if marks[i].Location == marks[j].Location {
			return marks[i].ID < marks[j].ID
		}
		return marks[i].Location < marks[j].Location
	})
	return marks, nil
}

func (m *memoryBookmarkStore) Delete(id uint) error {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	if _, ok := m.data.bookmarks[id]; !ok {
		return fmt.Errorf("bookmark %d: %w", id, store.ErrNotFound)
	}
	delete(m.data.bookmarks, id)
	return nil
}

func (m *memoryBookmarkStore) DeleteForBook(bookID string) error {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	for id, mark := range m.data.bookmarks {
		if mark.BookID == bookID {
			delete(m.data.bookmarks, id)
		}
	}
	return nil
}

func (m *memoryBookmarkStore) Close() error {
	return nil
}

// memoryConfigStore implements store.ConfigStore using an in-memory map.
type memoryConfigStore struct {
	mu     sync.RWMutex
	config map[string]string
}

func newMemoryConfigStore() *memoryConfigStore {
	return &memoryConfigStore{
		config: map[string]string{
			"db_version": "1",
		},
	}
}

func (m *memoryConfigStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.config[key]
	if !ok {
		return "", fmt.Errorf("config key %s: %w", key, store.ErrNotFound)
	}
	return value, nil
}

func (m *memoryConfigStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config[key] = value
	return nil
}

// List returns a copy of all configuration key-value pairs.
func (m *memoryConfigStore) List() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.config))
	for k, v := range m.config {
		result[k] = v
	}
	return result, nil
}

func (m *memoryConfigStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.config[key]; !ok {
		return fmt.Errorf("config key %s: %w", key, store.ErrNotFound)
	}
	delete(m.config, key)
	return nil
}

func (m *memoryConfigStore) Close() error {
	return nil
}
