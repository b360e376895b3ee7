package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiblet/txtreader/internal/store"
)

func ptr(t time.Time) *time.Time { return &t }

func shelf() []*store.Book {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*store.Book{
		{ID: "b", Title: "banana", Size: 300, AddedAt: base.Add(2 * time.Hour), LastReadAt: ptr(base.Add(10 * time.Hour))},
		{ID: "a", Title: "Apple", Size: 100, AddedAt: base.Add(1 * time.Hour)},
		{ID: "c", Title: "cherry pie", Size: 200, AddedAt: base.Add(3 * time.Hour), LastReadAt: ptr(base.Add(20 * time.Hour))},
		{ID: "d", Title: "Date", Size: 50, AddedAt: base},
	}
}

func ids(books []*store.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestFilterAndSort(t *testing.T) {
	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"title ascending ignores case", ListOptions{Sort: SortTitle, Ascending: true}, []string{"a", "b", "c", "d"}},
		{"title descending", ListOptions{Sort: SortTitle}, []string{"d", "c", "b", "a"}},
		{"added ascending", ListOptions{Sort: SortAdded, Ascending: true}, []string{"d", "a", "b", "c"}},
		{"added descending", ListOptions{Sort: SortAdded}, []string{"c", "b", "a", "d"}},
		{"size ascending", ListOptions{Sort: SortSize, Ascending: true}, []string{"d", "a", "c", "b"}},
		{"size descending", ListOptions{Sort: SortSize}, []string{"b", "c", "a", "d"}},
		{"last read ascending, recent first, unread last", ListOptions{Sort: SortLastRead, Ascending: true}, []string{"c", "b", "a", "d"}},
		{"last read descending keeps unread last", ListOptions{Sort: SortLastRead}, []string{"b", "c", "a", "d"}},
		{"search filters case-insensitively", ListOptions{Sort: SortTitle, Ascending: true, Search: "AN"}, []string{"b"}},
		{"search matches substring", ListOptions{Sort: SortAdded, Search: "e"}, []string{"c", "a", "d"}},
		{"search without match", ListOptions{Search: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndSort(shelf(), tt.opts)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterAndSort_CJKTitles(t *testing.T) {
	books := []*store.Book{{ID: "1", Title: "三体"}, {ID: "2", Title: "活着"}, {ID: "3", Title: "三国演义"}}
	got := FilterAndSort(books, ListOptions{Sort: SortTitle, Ascending: true, Search: "三"})
	assert.ElementsMatch(t, []string{"1", "3"}, ids(got))
}

func TestParseSortOption(t *testing.T) {
	for _, opt := range SortOptions {
		got, err := ParseSortOption(string(opt))
		require.NoError(t, err)
		assert.Equal(t, opt, got)
	}

	got, err := ParseSortOption("LAST_READ")
	require.NoError(t, err)
	assert.Equal(t, SortLastRead, got)

	_, err = ParseSortOption("color")
	assert.Error(t, err)
}

func TestSortOption_Next(t *testing.T) {
	assert.Equal(t, SortAdded, SortTitle.Next())
	assert.Equal(t, SortTitle, SortSize.Next())
	assert.Equal(t, SortTitle, SortOption("bogus").Next())
	assert.NotEmpty(t, SortLastRead.Label())
}

func TestList(t *testing.T) {
	lib := setupLibrary(t)
	ctx := context.Background()

	for _, b := range shelf() {
		_, err := lib.Store().Books().Create(&store.CreateBookInput{ID: b.ID, Title: b.Title, Size: b.Size, AddedAt: b.AddedAt})
		require.NoError(t, err)
	}

	books, err := lib.List(ctx, ListOptions{Sort: SortSize, Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a", "c", "b"}, ids(books))
}
