package cli

import (
	"fmt"

	"github.com/yiblet/txtreader/internal/library"
)

// Args represents the top-level command structure
type Args struct {
	ConfigPath *string `arg:"--config" help:"Config file (default: ~/.config/txtreader/config.yaml)"`
	Debug      bool    `arg:"--debug" help:"Enable debug logging"`

	Import    *ImportCmd    `arg:"subcommand:import" help:"Add text files to the library"`
	List      *ListCmd      `arg:"subcommand:list" help:"List the books on the shelf"`
	Delete    *DeleteCmd    `arg:"subcommand:delete" help:"Remove a book and its file"`
	Read      *ReadCmd      `arg:"subcommand:read" help:"Open a book in the reader"`
	Cat       *CatCmd       `arg:"subcommand:cat" help:"Print a page of a book"`
	Bookmarks *BookmarksCmd `arg:"subcommand:bookmarks" help:"List the bookmarks of a book"`
	Bookmark  *BookmarkCmd  `arg:"subcommand:bookmark" help:"Add or remove a bookmark"`
	Config    *ConfigCmd    `arg:"subcommand:config" help:"Show or change configuration"`
	Refresh   *RefreshCmd   `arg:"subcommand:refresh" help:"Drop books whose file is gone"`
}

// ImportCmd represents 'txtreader import'. With no files and no -c the
// content is read from stdin.
type ImportCmd struct {
	Files     []string `arg:"positional" help:"Text files to import"`
	Clipboard bool     `arg:"-c,--clipboard" help:"Import the clipboard text"`
	Title     *string  `arg:"-t,--title" help:"Title for stdin or clipboard imports"`
}

// ListCmd represents 'txtreader list'
type ListCmd struct {
	Sort   *string `arg:"-s,--sort" help:"Sort by title, added, last_read or size (default: saved preference)"`
	Asc    bool    `arg:"--asc" help:"Sort ascending"`
	Desc   bool    `arg:"--desc" help:"Sort descending"`
	Search string  `arg:"--search" help:"Only show titles containing this text"`
}

// DeleteCmd represents 'txtreader delete'
type DeleteCmd struct {
	ID    string `arg:"positional,required" help:"Book ID (a unique prefix is enough)"`
	Force bool   `arg:"-f,--force" help:"Do not ask for confirmation"`
}

// ReadCmd represents 'txtreader read'
type ReadCmd struct {
	ID string `arg:"positional,required" help:"Book ID (a unique prefix is enough)"`
}

// CatCmd represents 'txtreader cat'
type CatCmd struct {
	ID   string `arg:"positional,required" help:"Book ID (a unique prefix is enough)"`
	Page *int   `arg:"-p,--page" help:"Page number, starting at 1 (default: the page where reading stopped)"`
}

// BookmarksCmd represents 'txtreader bookmarks'
type BookmarksCmd struct {
	ID string `arg:"positional,required" help:"Book ID (a unique prefix is enough)"`
}

// BookmarkCmd represents 'txtreader bookmark'
type BookmarkCmd struct {
	Add *BookmarkAddCmd `arg:"subcommand:add" help:"Bookmark a location"`
	Rm  *BookmarkRmCmd  `arg:"subcommand:rm" help:"Remove a bookmark"`
}

// BookmarkAddCmd represents 'txtreader bookmark add'
type BookmarkAddCmd struct {
	ID       string `arg:"positional,required" help:"Book ID (a unique prefix is enough)"`
	Location int    `arg:"positional,required" help:"Character offset in the book"`
	Note     string `arg:"-n,--note" help:"Note to keep with the bookmark"`
}

// BookmarkRmCmd represents 'txtreader bookmark rm'
type BookmarkRmCmd struct {
	ID uint `arg:"positional,required" help:"Bookmark ID"`
}

// ConfigCmd represents 'txtreader config'
type ConfigCmd struct {
	Get  *ConfigGetCmd  `arg:"subcommand:get" help:"Get a configuration value"`
	Set  *ConfigSetCmd  `arg:"subcommand:set" help:"Set a configuration value"`
	List *ConfigListCmd `arg:"subcommand:list" help:"List all configuration values"`
}

// ConfigGetCmd represents 'txtreader config get'
type ConfigGetCmd struct {
	Key string `arg:"positional,required" help:"Configuration key"`
}

// ConfigSetCmd represents 'txtreader config set'
type ConfigSetCmd struct {
	Key   string `arg:"positional,required" help:"Configuration key"`
	Value string `arg:"positional,required" help:"Configuration value"`
}

// ConfigListCmd represents 'txtreader config list'
type ConfigListCmd struct{}

// RefreshCmd represents 'txtreader refresh'
type RefreshCmd struct{}

// Description returns the program description
func (Args) Description() string {
	return "txtreader - a terminal reader and bookshelf for plain text books"
}

// Version returns the program version
func (Args) Version() string {
	return "txtreader 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  txtreader                          # Open the bookshelf
  txtreader import novel.txt         # Add a book
  cat story.txt | txtreader import -t "A Story"
  txtreader import -c                # Add the clipboard text as a book
  txtreader list --sort last_read    # Most recently read first
  txtreader read 3f2a                # Open a book by ID prefix
  txtreader cat 3f2a --page 2        # Print the second page
  txtreader config set page_size 1500`
}

// Interactive reports whether the command takes over the terminal.
func (args *Args) Interactive() bool {
	return args.Read != nil || !args.hasCommand()
}

func (args *Args) hasCommand() bool {
	return args.Import != nil || args.List != nil || args.Delete != nil ||
		args.Read != nil || args.Cat != nil || args.Bookmarks != nil ||
		args.Bookmark != nil || args.Config != nil || args.Refresh != nil
}

// Validate performs validation on the parsed arguments
func (args *Args) Validate() error {
	switch {
	case args.Import != nil:
		return args.Import.Validate()
	case args.List != nil:
		return args.List.Validate()
	case args.Cat != nil:
		return args.Cat.Validate()
	case args.Bookmark != nil:
		return args.Bookmark.Validate()
	case args.Config != nil:
		return args.Config.Validate()
	}
	return nil
}

// Validate validates import command arguments
func (c *ImportCmd) Validate() error {
	if len(c.Files) > 0 && c.Clipboard {
		return fmt.Errorf("cannot specify both files and clipboard input")
	}
	if len(c.Files) > 0 && c.Title != nil {
		return fmt.Errorf("--title only applies to stdin or clipboard imports")
	}
	return nil
}

// Validate validates list command arguments
func (c *ListCmd) Validate() error {
	if c.Asc && c.Desc {
		return fmt.Errorf("cannot specify both --asc and --desc")
	}
	if c.Sort != nil {
		if _, err := library.ParseSortOption(*c.Sort); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates cat command arguments
func (c *CatCmd) Validate() error {
	if c.Page != nil && *c.Page < 1 {
		return fmt.Errorf("page must be at least 1")
	}
	return nil
}

// Validate validates bookmark command arguments
func (c *BookmarkCmd) Validate() error {
	if c.Add == nil && c.Rm == nil {
		return fmt.Errorf("no bookmark subcommand specified")
	}
	if c.Add != nil && c.Add.Location < 0 {
		return fmt.Errorf("location must be non-negative")
	}
	return nil
}

// Validate validates config command arguments
func (c *ConfigCmd) Validate() error {
	if c.Get == nil && c.Set == nil && c.List == nil {
		return fmt.Errorf("no config subcommand specified")
	}
	return nil
}
