package dbstore

import (
	"time"

	"github.com/yiblet/txtreader/internal/store"
)

// BookModel represents a book record in the database.
type BookModel struct {
	ID               string     `gorm:"primaryKey;size:36"`
	Title            string     `gorm:"size:255;not null;index"`
	Author           string     `gorm:"size:255"`
	FilePath         string     `gorm:"not null"`
	Size             int64      `gorm:"not null"`
	Hash             string     `gorm:"size:64;index"`
	CoverColor       string     `gorm:"size:16"`
	AddedAt          time.Time  `gorm:"not null;index"`
	LastReadLocation int        `gorm:"not null;default:0"`
	LastReadAt       *time.Time `gorm:"index"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime"`

	Bookmarks []BookmarkModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for BookModel
func (BookModel) TableName() string {
	return "books"
}

// ToBook converts the GORM model to a store.Book
func (m *BookModel) ToBook() *store.Book {
	return &store.Book{
		ID:               m.ID,
		Title:            m.Title,
		Author:           m.Author,
		FilePath:         m.FilePath,
		Size:             m.Size,
		Hash:             m.Hash,
		CoverColor:       m.CoverColor,
		AddedAt:          m.AddedAt,
		LastReadLocation: m.LastReadLocation,
		LastReadAt:       m.LastReadAt,
	}
}

// BookmarkModel represents a bookmark in the database.
type BookmarkModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	BookID    string    `gorm:"size:36;not null;index:idx_book_location"`
	Location  int       `gorm:"not null;index:idx_book_location"`
	Content   string    `gorm:"type:text"`
	Note      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for BookmarkModel
func (BookmarkModel) TableName() string {
	return "bookmarks"
}

// ToBookmark converts the GORM model to a store.Bookmark
func (m *BookmarkModel) ToBookmark() *store.Bookmark {
	return &store.Bookmark{
		ID:        m.ID,
		BookID:    m.BookID,
		Location:  m.Location,
		Content:   m.Content,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// ConfigItemModel represents a configuration key-value pair
type ConfigItemModel struct {
	Key       string    `gorm:"primaryKey;size:100"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ConfigItemModel
func (ConfigItemModel) TableName() string {
	return "config"
}
