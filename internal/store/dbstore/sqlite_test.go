package dbstore

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/yiblet/txtreader/internal/store"
)

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	st, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	cleanup := func() {
		st.Close()
	}

	return st, cleanup
}

func createBook(t *testing.T, books store.BookStore, id, title string, addedAt time.Time) *store.Book {
	t.Helper()
	book, err := books.Create(&store.CreateBookInput{
		ID:         id,
		Title:      title,
		FilePath:   "/library/" + title + ".txt",
		Size:       1024,
		Hash:       "hash-" + id,
		CoverColor: "blue",
		AddedAt:    addedAt,
	})
	if err != nil {
		t.Fatalf("failed to create book %s: %v", id, err)
	}
	return book
}

func TestNewSQLiteStore(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	dbVersion, err := st.Config().Get("db_version")
	if err != nil {
		t.Fatalf("failed to get db_version: %v", err)
	}
	if dbVersion != "1" {
		t.Errorf("expected db_version=1, got %s", dbVersion)
	}
}

func TestNewSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "books.db")

	st, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	createBook(t, st.Books(), "a", "Persisted", time.Now())
	if err := st.Config().Set("sort_option", "title"); err != nil {
		t.Fatalf("failed to set config: %v", err)
	}
	st.Close()

	st, err = NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer st.Close()

	book, err := st.Books().Get("a")
	if err != nil {
		t.Fatalf("failed to get book after reopen: %v", err)
	}
	if book.Title != "Persisted" {
		t.Errorf("expected title Persisted, got %s", book.Title)
	}
	if v, _ := st.Config().Get("sort_option"); v != "title" {
		t.Errorf("expected sort_option=title, got %q", v)
	}
}

func TestBookStore_CreateAndGet(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	added := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	created := createBook(t, st.Books(), "book-1", "Moby Dick", added)

	if created.ID != "book-1" {
		t.Errorf("expected ID book-1, got %s", created.ID)
	}
	if created.LastReadAt != nil {
		t.Error("expected new book to have no LastReadAt")
	}

	got, err := st.Books().Get("book-1")
	if err != nil {
		t.Fatalf("failed to get book: %v", err)
	}
	if got.Title != "Moby Dick" || got.Hash != "hash-book-1" || got.CoverColor != "blue" || got.Size != 1024 {
		t.Errorf("unexpected book: %+v", got)
	}
	if !got.AddedAt.Equal(added) {
		t.Errorf("expected AddedAt %v, got %v", added, got.AddedAt)
	}
}

func TestBookStore_CreateDefaults(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	before := time.Now().Add(-time.Second)
	book, err := st.Books().Create(&store.CreateBookInput{ID: "x", Title: "Untimed", FilePath: "/x.txt"})
	if err != nil {
		t.Fatalf("failed to create book: %v", err)
	}
	if book.AddedAt.Before(before) {
		t.Errorf("expected AddedAt to default to now, got %v", book.AddedAt)
	}

	if _, err := st.Books().Create(&store.CreateBookInput{Title: "No ID"}); err == nil {
		t.Error("expected error for missing ID")
	}
	if _, err := st.Books().Create(&store.CreateBookInput{ID: "x", Title: "Dup"}); err == nil {
		t.Error("expected error for duplicate ID")
	}
}

func TestBookStore_GetNotFound(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := st.Books().Get("missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBookStore_FindByHash(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	createBook(t, st.Books(), "a", "Alpha", time.Now())

	book, err := st.Books().FindByHash("hash-a")
	if err != nil {
		t.Fatalf("FindByHash() error = %v", err)
	}
	if book.ID != "a" {
		t.Errorf("expected book a, got %s", book.ID)
	}

	if _, err := st.Books().FindByHash("nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBookStore_ListNewestFirst(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		createBook(t, st.Books(), fmt.Sprintf("b%d", i), fmt.Sprintf("Book %d", i), base.Add(time.Duration(i)*time.Hour))
	}

	books, err := st.Books().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(books) != 3 {
		t.Fatalf("expected 3 books, got %d", len(books))
	}
	want := []string{"b2", "b1", "b0"}
	for i, id := range want {
		if books[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, books[i].ID)
		}
	}

	count, err := st.Books().Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
}

func TestBookStore_UpdateProgress(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	createBook(t, st.Books(), "a", "Alpha", time.Now())

	at := time.Date(2024, 5, 5, 8, 30, 0, 0, time.UTC)
	if err := st.Books().UpdateProgress("a", 4200, at); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}

	book, err := st.Books().Get("a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if book.LastReadLocation != 4200 {
		t.Errorf("expected location 4200, got %d", book.LastReadLocation)
	}
	if book.LastReadAt == nil || !book.LastReadAt.Equal(at) {
		t.Errorf("expected LastReadAt %v, got %v", at, book.LastReadAt)
	}

	if err := st.Books().UpdateProgress("missing", 1, at); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBookStore_DeleteCascadesBookmarks(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	createBook(t, st.Books(), "a", "Alpha", time.Now())
	createBook(t, st.Books(), "b", "Beta", time.Now())

	for _, id := range []string{"a", "a", "b"} {
		if _, err := st.Bookmarks().Create(&store.CreateBookmarkInput{BookID: id, Location: 10}); err != nil {
			t.Fatalf("failed to create bookmark: %v", err)
		}
	}

	if err := st.Books().Delete("a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := st.Books().Get("a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected deleted book to be gone, got %v", err)
	}
	marks, err := st.Bookmarks().ListForBook("a")
	if err != nil {
		t.Fatalf("ListForBook() error = %v", err)
	}
	if len(marks) != 0 {
		t.Errorf("expected bookmarks of deleted book to be gone, got %d", len(marks))
	}
	marks, _ = st.Bookmarks().ListForBook("b")
	if len(marks) != 1 {
		t.Errorf("expected other book's bookmark to remain, got %d", len(marks))
	}

	if err := st.Books().Delete("a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestBookmarkStore_CreateAndList(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	createBook(t, st.Books(), "a", "Alpha", time.Now())

	for _, loc := range []int{500, 100, 300} {
		_, err := st.Bookmarks().Create(&store.CreateBookmarkInput{
			BookID:   "a",
			Location: loc,
			Content:  fmt.Sprintf("text at %d", loc),
			Note:     "note",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	marks, err := st.Bookmarks().ListForBook("a")
	if err != nil {
		t.Fatalf("ListForBook() error = %v", err)
	}
	if len(marks) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(marks))
	}
	for i, want := range []int{100, 300, 500} {
		if marks[i].Location != want {
			t.Errorf("position %d: expected location %d, got %d", i, want, marks[i].Location)
		}
		if marks[i].ID == 0 {
			t.Errorf("position %d: expected an ID", i)
		}
	}
	if marks[0].Content != "text at 100" || marks[0].Note != "note" {
		t.Errorf("unexpected bookmark: %+v", marks[0])
	}
}

func TestBookmarkStore_CreateForMissingBook(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := st.Bookmarks().Create(&store.CreateBookmarkInput{BookID: "missing", Location: 1})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBookmarkStore_Delete(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	createBook(t, st.Books(), "a", "Alpha", time.Now())
	mark, err := st.Bookmarks().Create(&store.CreateBookmarkInput{BookID: "a", Location: 5})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := st.Bookmarks().Delete(mark.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := st.Bookmarks().Delete(mark.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	for i := 0; i < 3; i++ {
		st.Bookmarks().Create(&store.CreateBookmarkInput{BookID: "a", Location: i})
	}
	if err := st.Bookmarks().DeleteForBook("a"); err != nil {
		t.Fatalf("DeleteForBook() error = %v", err)
	}
	marks, _ := st.Bookmarks().ListForBook("a")
	if len(marks) != 0 {
		t.Errorf("expected no bookmarks, got %d", len(marks))
	}
}

func TestConfigStore(t *testing.T) {
	st, cleanup := setupTestDB(t)
	defer cleanup()

	cfg := st.Config()

	if _, err := cfg.Get("text_color"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := cfg.Set("text_color", "white"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cfg.Set("text_color", "amber"); err != nil {
		t.Fatalf("Set() update error = %v", err)
	}
	v, err := cfg.Get("text_color")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if v != "amber" {
		t.Errorf("expected amber, got %s", v)
	}

	all, err := cfg.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if all["text_color"] != "amber" || all["db_version"] != "1" {
		t.Errorf("unexpected config list: %v", all)
	}

	if err := cfg.Delete("text_color"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := cfg.Delete("text_color"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
