package library

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yiblet/txtreader/internal/store"
)

// SortOption selects the shelf ordering.
type SortOption string

const (
	SortTitle    SortOption = "title"
	SortAdded    SortOption = "added"
	SortLastRead SortOption = "last_read"
	SortSize     SortOption = "size"
)

// SortOptions lists every option in menu order.
var SortOptions = []SortOption{SortTitle, SortAdded, SortLastRead, SortSize}

// ParseSortOption parses a sort option name.
func ParseSortOption(s string) (SortOption, error) {
	for _, opt := range SortOptions {
		if strings.EqualFold(s, string(opt)) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("unknown sort option %q (want title, added, last_read or size)", s)
}

// Next returns the option after o, wrapping around.
func (o SortOption) Next() SortOption {
	for i, opt := range SortOptions {
		if opt == o {
			return SortOptions[(i+1)%len(SortOptions)]
		}
	}
	return SortOptions[0]
}

// Label is a short human-readable name.
func (o SortOption) Label() string {
	switch o {
	case SortTitle:
		return "Title"
	case SortAdded:
		return "Date added"
	case SortLastRead:
		return "Last read"
	case SortSize:
		return "File size"
	}
	return string(o)
}

// ListOptions controls List.
type ListOptions struct {
	Sort      SortOption
	Ascending bool
	// Search keeps only books whose title contains it, ignoring case.
	Search string
}

// List returns the filtered and sorted shelf.
func (l *Library) List(ctx context.Context, opts ListOptions) ([]*store.Book, error) {
	books, err := l.store.Books().List()
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return FilterAndSort(books, opts), nil
}

// FilterAndSort applies opts to books. The input slice is reordered.
func FilterAndSort(books []*store.Book, opts ListOptions) []*store.Book {
	if query := strings.TrimSpace(opts.Search); query != "" {
		fold := cases.Fold()
		query = fold.String(query)
		filtered := books[:0]
		for _, book := range books {
			if strings.Contains(fold.String(book.Title), query) {
				filtered = append(filtered, book)
			}
		}
		books = filtered
	}

	less := lessFunc(opts.Sort)
	sort.SliceStable(books, func(i, j int) bool {
		a, b := books[i], books[j]
		// Unread books stay at the end in both directions.
		if opts.Sort == SortLastRead && (a.LastReadAt == nil) != (b.LastReadAt == nil) {
			return a.LastReadAt != nil
		}
		if opts.Ascending {
			return less(a, b)
		}
		return less(b, a)
	})
	return books
}

func lessFunc(opt SortOption) func(a, b *store.Book) bool {
	switch opt {
	case SortTitle:
		col := collate.New(language.Und, collate.IgnoreCase)
		return func(a, b *store.Book) bool {
			return col.CompareString(a.Title, b.Title) < 0
		}
	case SortLastRead:
		// Ascending lists the most recently read first.
		return func(a, b *store.Book) bool {
			if a.LastReadAt == nil || b.LastReadAt == nil {
				return false
			}
			return a.LastReadAt.After(*b.LastReadAt)
		}
	case SortSize:
		return func(a, b *store.Book) bool { return a.Size < b.Size }
	default:
		return func(a, b *store.Book) bool { return a.AddedAt.Before(b.AddedAt) }
	}
}
