package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/yiblet/txtreader/internal/clipboard"
	"github.com/yiblet/txtreader/internal/clipboard/sysboard"
	"github.com/yiblet/txtreader/internal/config"
	"github.com/yiblet/txtreader/internal/libfs"
	"github.com/yiblet/txtreader/internal/library"
	"github.com/yiblet/txtreader/internal/logging"
	"github.com/yiblet/txtreader/internal/pager"
	"github.com/yiblet/txtreader/internal/store"
	"github.com/yiblet/txtreader/internal/store/dbstore"
	"github.com/yiblet/txtreader/internal/tui"
)

const shortIDLen = 8

// CLI handles the command-line interface
type CLI struct {
	config    *config.Config
	configMgr *config.ConfigManager
	library   *library.Library
	clipboard clipboard.Clipboard
	logger    *log.Logger
	closers   []io.Closer

	stdin  io.Reader
	stdout io.Writer
}

// NewWithArgs creates a CLI from the parsed arguments. It loads the
// configuration, opens the database and the library directory.
func NewWithArgs(args *Args) (*CLI, error) {
	if args == nil {
		args = &Args{}
	}

	var cm *config.ConfigManager
	if args.ConfigPath != nil {
		cm = config.NewConfigManagerWithPath(*args.ConfigPath)
	} else {
		var err error
		if cm, err = config.NewConfigManager(); err != nil {
			return nil, err
		}
	}

	cfg, err := cm.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if args.Debug {
		level = "debug"
	}

	var closers []io.Closer
	var logger *log.Logger
	if args.Interactive() {
		// The TUI owns the terminal, so logs go to a file.
		logPath, err := config.LogPath()
		if err != nil {
			return nil, err
		}
		fileLogger, closer, err := logging.NewFile(level, logPath)
		if err != nil {
			return nil, err
		}
		logger = fileLogger
		closers = append(closers, closer)
	} else {
		logger = logging.New(level, os.Stderr)
	}
	logging.SetDefault(logger)

	dbPath, err := cfg.ResolveDatabasePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	sqliteStore, err := dbstore.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create database store: %w", err)
	}

	location, err := cfg.ResolveLibraryLocation()
	if err != nil {
		sqliteStore.Close()
		return nil, err
	}
	lfs, err := libfs.New(location)
	if err != nil {
		sqliteStore.Close()
		return nil, err
	}

	lib := library.New(sqliteStore, lfs,
		library.WithLogger(logger),
		library.WithFallbackEncoding(cfg.FallbackEncoding))

	c := newCLI(cfg, cm, lib, sysboard.New(), logger)
	c.closers = closers
	return c, nil
}

func newCLI(cfg *config.Config, cm *config.ConfigManager, lib *library.Library, clip clipboard.Clipboard, logger *log.Logger) *CLI {
	return &CLI{
		config:    cfg,
		configMgr: cm,
		library:   lib,
		clipboard: clip,
		logger:    logger,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
}

// Close releases the database and the log file.
func (c *CLI) Close() error {
	var errs []error
	if err := c.library.Close(); err != nil {
		errs = append(errs, err)
	}
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Execute runs the CLI command based on parsed arguments
func (c *CLI) Execute(ctx context.Context, args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.Import != nil:
		return c.executeImport(ctx, args.Import)
	case args.List != nil:
		return c.executeList(ctx, args.List)
	case args.Delete != nil:
		return c.executeDelete(ctx, args.Delete)
	case args.Read != nil:
		book, err := c.resolveBook(ctx, args.Read.ID)
		if err != nil {
			return err
		}
		return c.launchTUI(ctx, book.ID)
	case args.Cat != nil:
		return c.executeCat(ctx, args.Cat)
	case args.Bookmarks != nil:
		return c.executeBookmarks(ctx, args.Bookmarks)
	case args.Bookmark != nil:
		return c.executeBookmark(ctx, args.Bookmark)
	case args.Config != nil:
		return c.executeConfig(args.Config)
	case args.Refresh != nil:
		return c.executeRefresh(ctx)
	default:
		// Default behavior: launch the shelf
		return c.launchTUI(ctx, "")
	}
}

// executeImport handles the 'txtreader import' command
func (c *CLI) executeImport(ctx context.Context, cmd *ImportCmd) error {
	var name string
	if cmd.Title != nil {
		name = strings.TrimSpace(*cmd.Title) + ".txt"
	}

	switch {
	case cmd.Clipboard:
		text, err := clipboard.ReadText(c.clipboard)
		if err != nil {
			return err
		}
		book, err := c.library.ImportReader(ctx, name, strings.NewReader(text))
		if err != nil {
			return fmt.Errorf("failed to import clipboard: %w", err)
		}
		fmt.Fprintf(c.stdout, "Imported: %s [%s]\n", book.Title, shortID(book.ID))
		return nil

	case len(cmd.Files) > 0:
		for _, filename := range cmd.Files {
			book, err := c.library.Import(ctx, filename)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", filename, err)
			}
			fmt.Fprintf(c.stdout, "Imported from %s: %s [%s]\n", filename, book.Title, shortID(book.ID))
		}
		return nil

	default:
		book, err := c.library.ImportReader(ctx, name, c.stdin)
		if err != nil {
			return fmt.Errorf("failed to import from stdin: %w", err)
		}
		fmt.Fprintf(c.stdout, "Imported: %s [%s]\n", book.Title, shortID(book.ID))
		return nil
	}
}

// executeList handles the 'txtreader list' command
func (c *CLI) executeList(ctx context.Context, cmd *ListCmd) error {
	prefs, err := c.library.LoadPreferences()
	if err != nil {
		return err
	}

	opts := library.ListOptions{
		Sort:      prefs.SortOption,
		Ascending: prefs.SortAscending,
		Search:    cmd.Search,
	}
	if cmd.Sort != nil {
		if opts.Sort, err = library.ParseSortOption(*cmd.Sort); err != nil {
			return err
		}
	}
	if cmd.Asc {
		opts.Ascending = true
	}
	if cmd.Desc {
		opts.Ascending = false
	}

	books, err := c.library.List(ctx, opts)
	if err != nil {
		return err
	}

	if len(books) == 0 {
		if cmd.Search != "" {
			fmt.Fprintf(c.stdout, "No books match %q.\n", cmd.Search)
			return nil
		}
		fmt.Fprintln(c.stdout, "The shelf is empty!")
		fmt.Fprintln(c.stdout)
		fmt.Fprintln(c.stdout, "To add books:")
		fmt.Fprintln(c.stdout, "  txtreader import novel.txt")
		fmt.Fprintln(c.stdout, "  txtreader import -c  # from clipboard")
		return nil
	}

	rows := make([][]string, 0, len(books))
	for _, book := range books {
		rows = append(rows, []string{
			shortID(book.ID),
			library.TruncateTitle(book.Title, 40),
			c.pageReached(book),
			humanize.Bytes(uint64(max(book.Size, 0))),
			humanize.Time(book.AddedAt),
			lastRead(book),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "PAGE", "SIZE", "ADDED", "LAST READ").
		Rows(rows...)
	fmt.Fprintln(c.stdout, t.Render())
	return nil
}

// executeDelete handles the 'txtreader delete' command
func (c *CLI) executeDelete(ctx context.Context, cmd *DeleteCmd) error {
	book, err := c.resolveBook(ctx, cmd.ID)
	if err != nil {
		return err
	}

	// Prompt for confirmation unless --force is used
	if !cmd.Force {
		fmt.Fprintf(c.stdout, "Delete %q and its file? [y/N]: ", book.Title)
		var response string
		fmt.Fscanln(c.stdin, &response)
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(c.stdout, "Cancelled.")
			return nil
		}
	}

	if err := c.library.Delete(ctx, book.ID); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Deleted: %s\n", book.Title)
	return nil
}

// executeCat handles the 'txtreader cat' command
func (c *CLI) executeCat(ctx context.Context, cmd *CatCmd) error {
	book, err := c.resolveBook(ctx, cmd.ID)
	if err != nil {
		return err
	}

	_, p, err := c.library.Open(ctx, book.ID, c.config.PagerConfig())
	if err != nil {
		return err
	}
	if p.Failed() {
		return fmt.Errorf("failed to open %s: %w", book.Title, p.Err())
	}

	if cmd.Page != nil {
		if *cmd.Page > p.PageCount() {
			return fmt.Errorf("page %d out of range (%s has %d pages)", *cmd.Page, book.Title, p.PageCount())
		}
		p.JumpToLocation((*cmd.Page - 1) * p.Config().PageSize)
	}

	page := p.CurrentPage()
	fmt.Fprint(c.stdout, page)
	if !strings.HasSuffix(page, "\n") {
		fmt.Fprintln(c.stdout)
	}
	c.logger.Debug("printed page",
		logging.FieldBook, book.ID,
		logging.FieldLocation, p.Location(),
		logging.FieldProgress, pager.FormatProgress(p.Progress()))
	return nil
}

// executeBookmarks handles the 'txtreader bookmarks' command
func (c *CLI) executeBookmarks(ctx context.Context, cmd *BookmarksCmd) error {
	book, err := c.resolveBook(ctx, cmd.ID)
	if err != nil {
		return err
	}

	marks, err := c.library.Bookmarks(ctx, book.ID)
	if err != nil {
		return err
	}
	if len(marks) == 0 {
		fmt.Fprintf(c.stdout, "No bookmarks in %s.\n", book.Title)
		return nil
	}

	pageSize := c.config.PagerConfig().PageSize
	rows := make([][]string, 0, len(marks))
	for _, mark := range marks {
		rows = append(rows, []string{
			fmt.Sprintf("%d", mark.ID),
			fmt.Sprintf("%d", mark.Location),
			fmt.Sprintf("%d", mark.Location/pageSize+1),
			mark.Content,
			mark.Note,
			humanize.Time(mark.CreatedAt),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "LOCATION", "PAGE", "TEXT", "NOTE", "CREATED").
		Rows(rows...)
	fmt.Fprintln(c.stdout, book.Title)
	fmt.Fprintln(c.stdout, t.Render())
	return nil
}

// executeBookmark handles the 'txtreader bookmark' command
func (c *CLI) executeBookmark(ctx context.Context, cmd *BookmarkCmd) error {
	switch {
	case cmd.Add != nil:
		book, err := c.resolveBook(ctx, cmd.Add.ID)
		if err != nil {
			return err
		}

		_, p, err := c.library.Open(ctx, book.ID, c.config.PagerConfig())
		if err != nil {
			return err
		}
		if !p.Failed() && cmd.Add.Location > p.Len() {
			return fmt.Errorf("location %d is past the end of %s (%d characters)", cmd.Add.Location, book.Title, p.Len())
		}

		mark, err := c.library.AddBookmark(ctx, book.ID, cmd.Add.Location,
			p.ExtractPage(cmd.Add.Location, library.SnippetLen), cmd.Add.Note)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "Added bookmark %d at %d in %s\n", mark.ID, mark.Location, book.Title)
		return nil

	case cmd.Rm != nil:
		if err := c.library.RemoveBookmark(ctx, cmd.Rm.ID); err != nil {
			return fmt.Errorf("failed to remove bookmark %d: %w", cmd.Rm.ID, err)
		}
		fmt.Fprintf(c.stdout, "Removed bookmark %d\n", cmd.Rm.ID)
		return nil

	default:
		return fmt.Errorf("no bookmark subcommand specified")
	}
}

// executeConfig handles the 'txtreader config' command
func (c *CLI) executeConfig(cmd *ConfigCmd) error {
	switch {
	case cmd.Get != nil:
		value, err := c.configMgr.Get(cmd.Get.Key)
		if err != nil {
			return fmt.Errorf("failed to get config value: %w", err)
		}
		fmt.Fprintln(c.stdout, value)
		return nil

	case cmd.Set != nil:
		if err := c.configMgr.Update(cmd.Set.Key, cmd.Set.Value); err != nil {
			return fmt.Errorf("failed to set config value: %w", err)
		}
		c.logger.Debug("updated config", logging.FieldKey, cmd.Set.Key)
		fmt.Fprintf(c.stdout, "Set %s = %s\n", cmd.Set.Key, cmd.Set.Value)
		return nil

	case cmd.List != nil:
		values, err := c.configMgr.List()
		if err != nil {
			return fmt.Errorf("failed to list config values: %w", err)
		}
		fmt.Fprintf(c.stdout, "Configuration (%s):\n", c.configMgr.GetConfigPath())
		for _, key := range config.Keys() {
			fmt.Fprintf(c.stdout, "  %s = %s\n", key, values[key])
		}
		return nil

	default:
		return fmt.Errorf("no config subcommand specified")
	}
}

// executeRefresh handles the 'txtreader refresh' command
func (c *CLI) executeRefresh(ctx context.Context) error {
	removed, err := c.library.Refresh(ctx)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Fprintln(c.stdout, "All books are present.")
		return nil
	}
	for _, book := range removed {
		fmt.Fprintf(c.stdout, "Removed missing book: %s (%s)\n", book.Title, book.FilePath)
	}
	return nil
}

// launchTUI starts the interactive shelf, or the reader when bookID is set.
func (c *CLI) launchTUI(ctx context.Context, bookID string) error {
	return tui.Run(ctx, tui.Options{
		Library:   c.library,
		Clipboard: c.clipboard,
		Pager:     c.config.PagerConfig(),
		Logger:    c.logger,
		BookID:    bookID,
	})
}

// resolveBook finds a book by full ID or by a unique ID prefix.
func (c *CLI) resolveBook(ctx context.Context, ref string) (*store.Book, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("book ID is required")
	}

	book, err := c.library.Get(ctx, ref)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	books, err := c.library.List(ctx, library.ListOptions{Sort: library.SortAdded})
	if err != nil {
		return nil, err
	}
	var matches []*store.Book
	for _, b := range books {
		if strings.HasPrefix(strings.ToLower(b.ID), strings.ToLower(ref)) {
			matches = append(matches, b)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no book matches %q: %w", ref, store.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("book ID %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func (c *CLI) pageReached(book *store.Book) string {
	if book.LastReadAt == nil {
		return "-"
	}
	return fmt.Sprintf("%d", book.LastReadLocation/c.config.PagerConfig().PageSize+1)
}

func lastRead(book *store.Book) string {
	if book.LastReadAt == nil {
		return "never"
	}
	return humanize.Time(*book.LastReadAt)
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
