package dbstore

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yiblet/txtreader/internal/store"
)

// SQLiteStore is a SQLite-backed implementation of store.Store
type SQLiteStore struct {
	db     *gorm.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite-backed store at the specified path.
// It initializes the database schema and sets up default configuration.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints in SQLite
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := db.AutoMigrate(&BookModel{}, &BookmarkModel{}, &ConfigItemModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}

	if err := s.initDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to init config: %w", err)
	}

	return s, nil
}

// Books returns the book store
func (s *SQLiteStore) Books() store.BookStore {
	return &sqliteBookStore{db: s.db}
}

// Bookmarks returns the bookmark store
func (s *SQLiteStore) Bookmarks() store.BookmarkStore {
	return &sqliteBookmarkStore{db: s.db}
}

// Config returns the config store
func (s *SQLiteStore) Config() store.ConfigStore {
	return &sqliteConfigStore{db: s.db}
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) initDefaultConfig() error {
	defaults := map[string]string{
		"db_version": "1",
	}

	configStore := s.Config()
	for key, value := range defaults {
		if _, err := configStore.Get(key); err != nil {
			if err := configStore.Set(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

type sqliteBookStore struct {
	db *gorm.DB
}

func (s *sqliteBookStore) Create(input *store.CreateBookInput) (*store.Book, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("failed to create book: missing id")
	}
	addedAt := input.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now()
	}

	model := &BookModel{
		ID:         input.ID,
		Title:      input.Title,
		Author:     input.Author,
		FilePath:   input.FilePath,
		Size:       input.Size,
		Hash:       input.Hash,
		CoverColor: input.CoverColor,
		AddedAt:    addedAt,
	}
	if err := s.db.Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return model.ToBook(), nil
}

func (s *sqliteBookStore) Get(id string) (*store.Book, error) {
	var model BookModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return model.ToBook(), nil
}

func (s *sqliteBookStore) FindByHash(hash string) (*store.Book, error) {
	var model BookModel
	if err := s.db.Where("hash = ?", hash).Order("added_at ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with hash %s: %w", hash, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	return model.ToBook(), nil
}

func (s *sqliteBookStore) List() ([]*store.Book, error) {
	var models []*BookModel
	if err := s.db.Order("added_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books := make([]*store.Book, len(models))
	for i, model := range models {
		books[i] = model.ToBook()
	}
	return books, nil
}

// Delete removes a book by ID along with its bookmarks. The foreign key
// cascades too, but the pragma only holds on the connection it ran on.
func (s *sqliteBookStore) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&BookmarkModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete bookmarks: %w", err)
		}
		result := tx.Delete(&BookModel{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete book: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("book %s: %w", id, store.ErrNotFound)
		}
		return nil
	})
}

func (s *sqliteBookStore) UpdateProgress(id string, location int, at time.Time) error {
	result := s.db.Model(&BookModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_read_location": location,
			"last_read_at":       at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *sqliteBookStore) Count() (int, error) {
	var count int64
	if err := s.db.Model(&BookModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return int(count), nil
}

func (s *sqliteBookStore) Close() error {
	return nil // parent store closes the DB
}

type sqliteBookmarkStore struct {
	db *gorm.DB
}

func (s *sqliteBookmarkStore) Create(input *store.CreateBookmarkInput) (*store.Bookmark, error) {
	var count int64
	if err := s.db.Model(&BookModel{}).Where("id = ?", input.BookID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("book %s: %w", input.BookID, store.ErrNotFound)
	}

	model := &BookmarkModel{
		BookID:   input.BookID,
		Location: input.Location,
		Content:  input.Content,
		Note:     input.Note,
	}
	if err := s.db.Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}
	return model.ToBookmark(), nil
}

func (s *sqliteBookmarkStore) ListForBook(bookID string) ([]*store.Bookmark, error) {
	var models []*BookmarkModel
	if err := s.db.Where("book_id = ?", bookID).
		Order("location ASC").
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	bookmarks := make([]*store.Bookmark, len(models))
	for i, model := range models {
		bookmarks[i] = model.ToBookmark()
	}
	return bookmarks, nil
}

func (s *sqliteBookmarkStore) Delete(id uint) error {
	result := s.db.Delete(&BookmarkModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete bookmark: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("bookmark %d: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *sqliteBookmarkStore) DeleteForBook(bookID string) error {
	if err := s.db.Where("book_id = ?", bookID).Delete(&BookmarkModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete bookmarks: %w", err)
	}
	return nil
}

func (s *sqliteBookmarkStore) Close() error {
	return nil
}

// sqliteConfigStore implements store.ConfigStore using SQLite
type sqliteConfigStore struct {
	db *gorm.DB
}

// Get retrieves a configuration value by key
func (s *sqliteConfigStore) Get(key string) (string, error) {
	var model ConfigItemModel
	if err := s.db.First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("config key %s: %w", key, store.ErrNotFound)
		}
		return "", fmt.Errorf("failed to get config: %w", err)
	}
	return model.Value, nil
}

// Set stores a configuration value (upsert)
func (s *sqliteConfigStore) Set(key, value string) error {
	model := &ConfigItemModel{
		Key:   key,
		Value: value,
	}

	result := s.db.Where("key = ?", key).
		Assign(map[string]interface{}{"value": value, "updated_at": s.db.NowFunc()}).
		FirstOrCreate(model)

	if result.Error != nil {
		return fmt.Errorf("failed to set config: %w", result.Error)
	}

	return nil
}

// List returns all configuration key-value pairs
func (s *sqliteConfigStore) List() (map[string]string, error) {
	var models []ConfigItemModel
	if err := s.db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list config: %w", err)
	}

	result := make(map[string]string, len(models))
	for _, model := range models {
		result[model.Key] = model.Value
	}

	return result, nil
}

// Delete removes a configuration key
func (s *sqliteConfigStore) Delete(key string) error {
	result := s.db.Delete(&ConfigItemModel{}, "key = ?", key)
	if result.Error != nil {
		return fmt.Errorf("failed to delete config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("config key %s: %w", key, store.ErrNotFound)
	}
	return nil
}

func (s *sqliteConfigStore) Close() error {
	return nil
}
