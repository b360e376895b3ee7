// Package library manages the bookshelf: importing text files into the
// library directory, listing and deleting books, reading progress,
// bookmarks and reader preferences.
package library

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/yiblet/txtreader/internal/libfs"
	"github.com/yiblet/txtreader/internal/logging"
	"github.com/yiblet/txtreader/internal/pager"
	"github.com/yiblet/txtreader/internal/store"
)

// CoverColors are the spine colors assigned to imported books.
var CoverColors = []string{"blue", "green", "red", "purple", "orange"}

// ErrBinaryContent is returned when an import does not look like text.
var ErrBinaryContent = errors.New("content looks binary, not text")

const (
	// peekSize is how much of an import is sniffed before it is stored.
	peekSize = 8192

	maxTitleLen = 255
)

// Library is the bookshelf. It is safe for concurrent use to the extent
// the underlying store is.
type Library struct {
	store    store.Store
	fs       *libfs.LibraryFS
	logger   *log.Logger
	fallback string
}

// Option customizes a Library.
type Option func(*Library)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(lib *Library) { lib.logger = l }
}

// WithFallbackEncoding sets the encoding used to open books that are not
// valid UTF-8.
func WithFallbackEncoding(name string) Option {
	return func(lib *Library) { lib.fallback = name }
}

// New creates a library over s, storing book files in lfs.
func New(s store.Store, lfs *libfs.LibraryFS, opts ...Option) *Library {
	lib := &Library{store: s, fs: lfs}
	for _, opt := range opts {
		opt(lib)
	}
	if lib.logger == nil {
		lib.logger = logging.Default()
	}
	return lib
}

// Store returns the underlying store.
func (l *Library) Store() store.Store {
	return l.store
}

// Root returns the library directory.
func (l *Library) Root() string {
	return l.fs.Root()
}

// Close releases store resources.
func (l *Library) Close() error {
	return l.store.Close()
}

// Import copies the file at path into the library and records it.
// Importing content that is already on the shelf returns the existing book.
func (l *Library) Import(ctx context.Context, path string) (*store.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return l.ImportReader(ctx, filepath.Base(path), f)
}

// ImportReader stores the content of r under name and records it. The
// title is name without its .txt extension; if name is empty the first
// line of the content is used.
func (l *Library) ImportReader(ctx context.Context, name string, r io.Reader) (*store.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	peek := make([]byte, peekSize)
	n, err := io.ReadFull(r, peek)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	peek = peek[:n]
	if isBinary(peek) {
		return nil, ErrBinaryContent
	}

	title := TitleFromFileName(name)
	if title == "" {
		title = GenerateTitle(peek)
	}
	title = TruncateTitle(title, maxTitleLen)
	if name == "" || libfs.CleanName(name) == "." {
		name = title + ".txt"
	}

	hasher := blake3.New()
	content := io.TeeReader(io.MultiReader(bytes.NewReader(peek), r), hasher)

	path, size, err := l.fs.Store(name, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store book: %w", err)
	}
	hash := hex.EncodeToString(hasher.Sum(nil))

	existing, err := l.store.Books().FindByHash(hash)
	switch {
	case err == nil:
		if existing.FilePath != path {
			if rmErr := l.fs.Remove(path); rmErr != nil {
				l.logger.Warn("failed to remove duplicate import", logging.FieldPath, path, logging.FieldError, rmErr)
			}
		}
		l.logger.Info("book already on shelf", logging.FieldBook, existing.ID, logging.FieldTitle, existing.Title)
		return existing, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("failed to check for duplicates: %w", err)
	}

	book, err := l.store.Books().Create(&store.CreateBookInput{
		ID:         uuid.NewString(),
		Title:      title,
		FilePath:   path,
		Size:       size,
		Hash:       hash,
		CoverColor: CoverColors[rand.IntN(len(CoverColors))],
		AddedAt:    time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record book: %w", err)
	}

	l.logger.Info("imported book",
		logging.FieldBook, book.ID,
		logging.FieldTitle, book.Title,
		logging.FieldLength, size)
	return book, nil
}

// Get returns a book by ID.
func (l *Library) Get(ctx context.Context, id string) (*store.Book, error) {
	return l.store.Books().Get(id)
}

// Count returns the number of books on the shelf.
func (l *Library) Count(ctx context.Context) (int, error) {
	return l.store.Books().Count()
}

// Delete removes a book's file and its record.
func (l *Library) Delete(ctx context.Context, id string) error {
	book, err := l.store.Books().Get(id)
	if err != nil {
		return err
	}

	if err := l.fs.Remove(book.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("failed to remove book file", logging.FieldPath, book.FilePath, logging.FieldError, err)
	}

	if err := l.store.Books().Delete(id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	l.logger.Info("deleted book", logging.FieldBook, id, logging.FieldTitle, book.Title)
	return nil
}

// Refresh drops books whose file no longer exists and returns them.
func (l *Library) Refresh(ctx context.Context) ([]*store.Book, error) {
	books, err := l.store.Books().List()
	if err != nil {
		return nil, err
	}

	var removed []*store.Book
	for _, book := range books {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if l.fs.Exists(book.FilePath) {
			continue
		}
		if err := l.store.Books().Delete(book.ID); err != nil {
			return removed, fmt.Errorf("failed to drop missing book: %w", err)
		}
		removed = append(removed, book)
	}

	if len(removed) > 0 {
		l.logger.Info("dropped missing books", logging.FieldCount, len(removed))
	}
	return removed, nil
}

// Open loads a book into a pager positioned at its last read location.
// A book whose file cannot be read yields an error-state pager; only an
// unknown ID is an error.
func (l *Library) Open(ctx context.Context, id string, cfg pager.Config, opts ...pager.Option) (*store.Book, *pager.Pager, error) {
	book, err := l.store.Books().Get(id)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]pager.Option{pager.WithLogger(l.logger)}, opts...)
	src := pager.FileSource{Fallback: l.fallback}
	p := pager.Open(ctx, src, book.FilePath, book.LastReadLocation, cfg, opts...)
	return book, p, nil
}

// SaveProgress records where reading stopped. It implements
// pager.ProgressSink.
func (l *Library) SaveProgress(ctx context.Context, bookID string, location int, at time.Time) error {
	if err := l.store.Books().UpdateProgress(bookID, location, at); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	l.logger.Debug("saved progress", logging.FieldBook, bookID, logging.FieldLocation, location)
	return nil
}

var _ pager.ProgressSink = (*Library)(nil)

// isBinary detects if data is binary by checking for non-printable characters.
func isBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sampleSize := min(len(data), peekSize)

	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		b := data[i]

		// Null byte is a strong indicator of binary content, except in
		// UTF-16 text, which starts with a BOM.
		if b == 0 && !hasUTF16BOM(data) {
			return true
		}

		if b < 32 && b != 0 && b != '\n' && b != '\r' && b != '\t' && b != '\f' {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(sampleSize) > 0.3
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 && ((data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF))
}
