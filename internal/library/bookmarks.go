package library

import (
	"context"
	"fmt"

	"github.com/yiblet/txtreader/internal/logging"
	"github.com/yiblet/txtreader/internal/store"
)

// SnippetLen is the length of the text excerpt kept with a bookmark.
const SnippetLen = 80

// AddBookmark marks location in a book. content is the text at location;
// only a short snippet of it is kept.
func (l *Library) AddBookmark(ctx context.Context, bookID string, location int, content, note string) (*store.Bookmark, error) {
	mark, err := l.store.Bookmarks().Create(&store.CreateBookmarkInput{
		BookID:   bookID,
		Location: max(location, 0),
		Content:  Snippet(content, SnippetLen),
		Note:     note,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add bookmark: %w", err)
	}
	l.logger.Debug("added bookmark", logging.FieldBook, bookID, logging.FieldLocation, mark.Location)
	return mark, nil
}

// Bookmarks returns the bookmarks of a book ordered by location.
func (l *Library) Bookmarks(ctx context.Context, bookID string) ([]*store.Bookmark, error) {
	return l.store.Bookmarks().ListForBook(bookID)
}

// RemoveBookmark deletes a bookmark.
func (l *Library) RemoveBookmark(ctx context.Context, id uint) error {
	return l.store.Bookmarks().Delete(id)
}
