package store

import (
	"time"
)

// Book is a text file on the shelf.
type Book struct {
	// ID is a UUID assigned at import.
	ID string

	Title  string
	Author string

	// FilePath is the absolute path of the stored copy in the library
	// directory.
	FilePath string

	// Size is the file size in bytes.
	Size int64

	// Hash is the hex-encoded BLAKE3 hash of the content, used to
	// deduplicate imports.
	Hash string

	// CoverColor names the color of the spine drawn on the shelf.
	CoverColor string

	AddedAt time.Time

	// LastReadLocation is the code-point offset where reading stopped.
	LastReadLocation int

	// LastReadAt is nil for a book that was never opened.
	LastReadAt *time.Time
}

// CreateBookInput contains the data needed to create a book record.
type CreateBookInput struct {
	ID         string
	Title      string
	Author     string
	FilePath   string
	Size       int64
	Hash       string
	CoverColor string

	// AddedAt defaults to the current time when zero.
	AddedAt time.Time
}

// Bookmark marks a location in a book.
type Bookmark struct {
	ID       uint
	BookID   string
	Location int

	// Content is a short snippet of the text at Location.
	Content string
	Note    string

	CreatedAt time.Time
}

// CreateBookmarkInput contains the data needed to create a bookmark.
type CreateBookmarkInput struct {
	BookID   string
	Location int
	Content  string
	Note     string
}
