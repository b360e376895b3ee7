// Package tui is the interactive bookshelf and reader.
package tui

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/yiblet/txtreader/internal/clipboard"
	"github.com/yiblet/txtreader/internal/library"
	"github.com/yiblet/txtreader/internal/logging"
	"github.com/yiblet/txtreader/internal/pager"
	"github.com/yiblet/txtreader/internal/store"
)

// Screen is the top-level view being shown
type Screen int

const (
	ShelfScreen Screen = iota
	ReaderScreen
)

// UIMode represents the current modal state of the application
type UIMode int

const (
	NormalMode UIMode = iota
	SearchMode
	HelpMode
	DeleteMode
	ErrorMode
	BookmarksMode
	TOCMode
)

const flashDuration = 2 * time.Second

// Options configures Run.
type Options struct {
	Library   *library.Library
	Clipboard clipboard.Clipboard
	Pager     pager.Config
	Logger    *log.Logger
	// BookID opens this book straight away instead of the shelf.
	BookID string
	// Clock drives the scroll throttle of opened books; nil means the
	// wall clock.
	Clock pager.Clock
}

// AppModel orchestrates all sub-models
type AppModel struct {
	Width       int
	Height      int
	Screen      Screen
	CurrentMode UIMode

	// Sub-models
	Shelf  ShelfModel
	Search SearchModel
	Modal  ModalModel
	Picker PickerModel
	Reader *ReaderModel // nil while on the shelf

	// Books is the shelf as shown: filtered by the search and sorted.
	Books    []*store.Book
	allBooks []*store.Book
	Prefs    library.Preferences

	// Flash message for temporary notifications
	FlashMessage string
	FlashExpiry  time.Time
	flashID      int

	ctx       context.Context
	library   *library.Library
	clipboard clipboard.Clipboard
	pagerCfg  pager.Config
	clock     pager.Clock
	logger    *log.Logger
	startBook string
}

// NewAppModel creates a new app model with all sub-models
func NewAppModel(ctx context.Context, opts Options) *AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	prefs, err := opts.Library.LoadPreferences()
	if err != nil {
		logger.Warn("using default preferences", logging.FieldError, err)
	}

	// Default dimensions that will be properly set on first resize
	defaultWidth := 80
	defaultHeight := 24

	return &AppModel{
		Width:       defaultWidth,
		Height:      defaultHeight,
		Screen:      ShelfScreen,
		CurrentMode: NormalMode,
		Shelf:       NewShelfModel(defaultWidth, defaultHeight),
		Search:      NewSearchModel(),
		Modal:       NewModalModel(),
		Prefs:       prefs,
		ctx:         logging.WithLogger(ctx, logger),
		library:     opts.Library,
		clipboard:   opts.Clipboard,
		pagerCfg:    opts.Pager,
		clock:       opts.Clock,
		logger:      logger,
		startBook:   opts.BookID,
	}
}

// Run shows the TUI until the user quits or ctx is cancelled. Reading
// progress of an open book is saved on the way out.
func Run(ctx context.Context, opts Options) error {
	app := NewAppModel(ctx, opts)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()

	app.closeReader(context.WithoutCancel(ctx))
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Init loads the shelf and, when asked to, the starting book
func (a *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{loadShelfCmd(a.ctx, a.library)}
	if a.startBook != "" {
		cmds = append(cmds, a.openBook(a.startBook))
	}
	return tea.Batch(cmds...)
}

// Update handles app-level messages and routes to appropriate sub-models
func (a *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleWindowResize(m)
	case tea.KeyMsg:
		return a.handleKeyPress(m)
	case booksLoadedMsg:
		if m.err != nil {
			a.logger.Error("failed to load shelf", logging.FieldError, m.err)
			return a, a.setFlashMessage(fmt.Sprintf("Error loading books: %v", m.err), flashDuration)
		}
		a.allBooks = m.books
		a.applyFilter()
		return a, nil
	case bookOpenedMsg:
		return a.handleBookOpened(m)
	case appendDoneMsg:
		if a.Reader == nil || a.Reader.Pager != m.pager {
			return a, nil
		}
		return a, a.handleScroll(a.Reader.ApplyAppend(m.result))
	case scrollFlushMsg:
		if a.Reader == nil || a.Reader.Pager != m.pager {
			return a, nil
		}
		return a, a.handleScroll(a.Reader.Flush(m.token))
	case flashExpiredMsg:
		// Only the latest flash clears the line
		if m.id == a.flashID {
			a.FlashMessage = ""
			a.FlashExpiry = time.Time{}
		}
		return a, nil
	}

	return a, nil
}

// handleWindowResize processes window resize events
func (a *AppModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.Width = max(msg.Width, 30)
	a.Height = max(msg.Height, 10)

	a.Shelf.Update(ResizeShelfMsg{Width: a.Width, Height: a.Height})
	if a.Reader != nil {
		a.Reader.SetSize(a.Width, a.Height)
	}
	return a, nil
}

func (a *AppModel) handleBookOpened(msg bookOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Error("failed to open book", logging.FieldError, msg.err)
		a.Modal.Update(ShowError("Cannot Open Book", msg.err))
		a.CurrentMode = ErrorMode
		return a, nil
	}

	reader, res := NewReaderModel(msg.book, msg.pager, msg.chapters, msg.bookmarks, a.Prefs, a.Width, a.Height)
	a.Reader = &reader
	a.Screen = ReaderScreen
	a.CurrentMode = NormalMode
	a.logger.Info("opened book",
		logging.FieldBook, msg.book.ID,
		logging.FieldTitle, msg.book.Title,
		logging.FieldLocation, msg.pager.Location())
	return a, a.handleScroll(res)
}

// openBook loads a book off the update loop.
func (a *AppModel) openBook(id string) tea.Cmd {
	var opts []pager.Option
	if a.clock != nil {
		opts = append(opts, pager.WithClock(a.clock))
	}
	return openBookCmd(a.ctx, a.library, id, a.pagerCfg, opts...)
}

// handleScroll schedules the follow-up work of a scroll event of the open
// reader: loading more text and re-evaluating a throttled event.
func (a *AppModel) handleScroll(res pager.ScrollResult) tea.Cmd {
	if a.Reader == nil {
		return nil
	}
	p := a.Reader.Pager
	var cmds []tea.Cmd
	if res.Append != nil {
		cmds = append(cmds, appendCmd(a.ctx, p, res.Append))
	}
	if res.Deferred != 0 {
		cmds = append(cmds, flushScrollCmd(p, res.Deferred, res.Delay))
	}
	return tea.Batch(cmds...)
}

// handleKeyPress processes key press events using mode-first architecture
func (a *AppModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// MODE-FIRST ARCHITECTURE: Check current mode before processing any keys
	switch a.CurrentMode {
	case SearchMode:
		return a.handleSearchModeKeys(msg)
	case HelpMode:
		return a.handleHelpModeKeys(key)
	case DeleteMode:
		return a.handleDeleteModeKeys(key)
	case ErrorMode:
		return a.handleErrorModeKeys(key)
	case BookmarksMode, TOCMode:
		return a.handlePickerModeKeys(key)
	}

	if a.Screen == ReaderScreen && a.Reader != nil {
		return a.handleReaderKeys(key)
	}
	return a.handleShelfKeys(key)
}

// handleSearchModeKeys processes keys when in search mode. The shelf is
// filtered as the query is typed.
func (a *AppModel) handleSearchModeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.Search.Update(CancelSearchMsg{})
		a.CurrentMode = NormalMode
		a.applyFilter()
		return a, nil
	case "enter":
		a.Search.Update(ExecuteSearchMsg{})
		a.CurrentMode = NormalMode
		return a, nil
	}

	cmd := a.Search.HandleKey(msg)
	a.applyFilter()
	return a, cmd
}

// handleHelpModeKeys processes keys when in help mode
func (a *AppModel) handleHelpModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "z", "?", "esc", "q":
		a.CurrentMode = NormalMode
	}
	return a, nil
}

// handleErrorModeKeys dismisses an error modal on any key
func (a *AppModel) handleErrorModeKeys(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		return a, tea.Quit
	}
	a.Modal.Update(HideModalMsg{})
	a.CurrentMode = NormalMode
	return a, nil
}

// handleDeleteModeKeys processes keys when in delete confirmation mode
func (a *AppModel) handleDeleteModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "y", "Y":
		book := a.selectedBook()
		if book == nil {
			a.Modal.Update(HideModalMsg{})
			a.CurrentMode = NormalMode
			return a, nil
		}

		if err := a.library.Delete(a.ctx, book.ID); err != nil {
			a.logger.Error("failed to delete book", logging.FieldBook, book.ID, logging.FieldError, err)
			a.Modal.Update(ShowError("Delete Error", err))
			a.CurrentMode = ErrorMode
			return a, nil
		}

		for i, b := range a.allBooks {
			if b.ID == book.ID {
				a.allBooks = append(a.allBooks[:i], a.allBooks[i+1:]...)
				break
			}
		}
		a.applyFilter()

		a.Modal.Update(HideModalMsg{})
		a.CurrentMode = NormalMode
		return a, a.setFlashMessage(fmt.Sprintf("Deleted %q", library.TruncateTitle(book.Title, 40)), flashDuration)
	case "n", "N", "esc":
		a.Modal.Update(HideModalMsg{})
		a.CurrentMode = NormalMode
	}
	return a, nil
}

// handleShelfKeys processes keys on the shelf in normal mode
func (a *AppModel) handleShelfKeys(key string) (tea.Model, tea.Cmd) {
	maxIndex := len(a.Books) - 1

	switch key {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "esc":
		if a.Search.Query() == "" {
			return a, tea.Quit
		}
		a.Search.Update(ClearSearchMsg{})
		a.applyFilter()
	case "z", "?":
		a.CurrentMode = HelpMode
	case "up", "k":
		a.Shelf.Update(NavigateUpMsg{})
	case "down", "j":
		a.Shelf.Update(NavigateDownMsg{MaxIndex: maxIndex})
	case "g", "home":
		a.Shelf.Update(GoToTopMsg{})
	case "G", "end":
		a.Shelf.Update(GoToBottomMsg{MaxIndex: maxIndex})
	case "/":
		a.CurrentMode = SearchMode
		return a, a.Search.Update(StartSearchMsg{})
	case "s":
		a.Prefs.SortOption = a.Prefs.SortOption.Next()
		a.savePrefs()
		a.applyFilter()
		return a, a.setFlashMessage("Sort: "+a.Prefs.SortOption.Label(), flashDuration)
	case "r":
		a.Prefs.SortAscending = !a.Prefs.SortAscending
		a.savePrefs()
		a.applyFilter()
	case "d":
		if book := a.selectedBook(); book != nil {
			a.CurrentMode = DeleteMode
			a.Modal.Update(ShowDeleteConfirmation(book))
		}
	case "enter":
		if book := a.selectedBook(); book != nil {
			return a, a.openBook(book.ID)
		}
	}
	return a, nil
}

// handleReaderKeys processes keys in the reader in normal mode
func (a *AppModel) handleReaderKeys(key string) (tea.Model, tea.Cmd) {
	r := a.Reader
	continuous := r.Pager.Mode() == pager.ModeContinuous

	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "q", "esc":
		a.closeReader(a.ctx)
		a.Screen = ShelfScreen
		return a, loadShelfCmd(a.ctx, a.library)
	case "z", "?":
		a.CurrentMode = HelpMode
		return a, nil
	}

	if r.Pager.Failed() {
		return a, nil
	}

	switch key {
	case "down", "j":
		return a, a.handleScroll(r.Scroll(1))
	case "up", "k":
		return a, a.handleScroll(r.Scroll(-1))
	case "g", "home":
		return a, a.handleScroll(r.ScrollTo(0))
	case "G", "end":
		return a, a.handleScroll(r.ScrollTo(r.Viewport.TotalLineCount()))
	case "right", "l", " ", "pgdown":
		if continuous {
			return a, a.handleScroll(r.Scroll(r.Viewport.Height))
		}
		r.NextPage()
	case "left", "h", "pgup":
		if continuous {
			return a, a.handleScroll(r.Scroll(-r.Viewport.Height))
		}
		r.PreviousPage()
	case "m":
		res := r.ToggleMode()
		a.Prefs.PageTurn = r.Prefs.PageTurn
		a.savePrefs()
		label := "Paginated"
		if a.Prefs.PageTurn == pager.ModeContinuous {
			label = "Continuous scrolling"
		}
		return a, tea.Batch(a.handleScroll(res), a.setFlashMessage(label, flashDuration))
	case "b":
		return a, a.addBookmark()
	case "B":
		a.Picker = NewPickerModel("Bookmarks", "No bookmarks yet. Press b to add one.", bookmarkItems(r))
		a.CurrentMode = BookmarksMode
	case "t":
		a.Picker = NewPickerModel("Contents", "No chapters found in this book.", chapterItems(r))
		a.Picker.Select(r.ChapterIndex())
		a.CurrentMode = TOCMode
	case "y":
		return a, a.copyToClipboard()
	case "c":
		a.Prefs.TextColor = nextColor(TextColors, a.Prefs.TextColor)
		return a, a.applyPrefs("Text color: " + a.Prefs.TextColor)
	case "C":
		a.Prefs.BackgroundColor = nextColor(BackgroundColors, a.Prefs.BackgroundColor)
		return a, a.applyPrefs("Background: " + a.Prefs.BackgroundColor)
	case "+", "=":
		a.Prefs.TextWidth += 10
		return a, a.applyPrefs("")
	case "-":
		a.Prefs.TextWidth -= 10
		return a, a.applyPrefs("")
	case "]":
		a.Prefs.LineSpacing++
		return a, a.applyPrefs("")
	case "[":
		a.Prefs.LineSpacing--
		return a, a.applyPrefs("")
	}
	return a, nil
}

// handlePickerModeKeys processes keys in the bookmark and contents lists
func (a *AppModel) handlePickerModeKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "esc", "q", "B", "t":
		a.CurrentMode = NormalMode
	case "up", "k":
		a.Picker.MoveUp()
	case "down", "j":
		a.Picker.MoveDown()
	case "enter":
		item, ok := a.Picker.Selected()
		a.CurrentMode = NormalMode
		if ok && a.Reader != nil {
			return a, a.handleScroll(a.Reader.JumpTo(item.Location))
		}
	case "d":
		if a.CurrentMode != BookmarksMode {
			return a, nil
		}
		return a, a.removeBookmark()
	}
	return a, nil
}

// applyPrefs normalizes and saves the display preferences and redraws the
// reader with them.
func (a *AppModel) applyPrefs(flash string) tea.Cmd {
	a.Prefs = a.Prefs.Normalize()
	if a.Reader != nil {
		a.Reader.SetPrefs(a.Prefs)
	}
	a.savePrefs()
	if flash == "" {
		flash = fmt.Sprintf("Width %d · spacing %d", a.Prefs.TextWidth, a.Prefs.LineSpacing)
	}
	return a.setFlashMessage(flash, flashDuration)
}

func (a *AppModel) savePrefs() {
	if err := a.library.SavePreferences(a.Prefs); err != nil {
		a.logger.Warn("failed to save preferences", logging.FieldError, err)
	}
}

// applyFilter rebuilds Books from the full shelf and keeps the cursor on
// the list.
func (a *AppModel) applyFilter() {
	a.Books = library.FilterAndSort(slices.Clone(a.allBooks), library.ListOptions{
		Sort:      a.Prefs.SortOption,
		Ascending: a.Prefs.SortAscending,
		Search:    a.Search.Query(),
	})
	a.Shelf.Update(JumpToIndexMsg{Index: a.Shelf.Cursor, MaxIndex: len(a.Books) - 1})
}

func (a *AppModel) selectedBook() *store.Book {
	if a.Shelf.Cursor < 0 || a.Shelf.Cursor >= len(a.Books) {
		return nil
	}
	return a.Books[a.Shelf.Cursor]
}

// closeReader hands the reading position to the library and drops the
// reader.
func (a *AppModel) closeReader(ctx context.Context) {
	if a.Reader == nil {
		return
	}
	book := a.Reader.Book
	if err := a.Reader.Pager.Close(ctx, a.library, book.ID); err != nil {
		a.logger.Error("failed to save progress", logging.FieldBook, book.ID, logging.FieldError, err)
	}
	a.Reader = nil
}

func (a *AppModel) addBookmark() tea.Cmd {
	r := a.Reader
	location := r.Location()
	content := r.Pager.ExtractPage(location, library.SnippetLen)

	mark, err := a.library.AddBookmark(a.ctx, r.Book.ID, location, content, "")
	if err != nil {
		a.logger.Error("failed to add bookmark", logging.FieldBook, r.Book.ID, logging.FieldError, err)
		return a.setFlashMessage(fmt.Sprintf("Error adding bookmark: %v", err), flashDuration)
	}

	r.Bookmarks = append(r.Bookmarks, mark)
	sort.SliceStable(r.Bookmarks, func(i, j int) bool {
		return r.Bookmarks[i].Location < r.Bookmarks[j].Location
	})
	progress := pager.CalculateProgress(location, r.Pager.Len())
	return a.setFlashMessage("Bookmark added at "+pager.FormatProgress(progress), flashDuration)
}

func (a *AppModel) removeBookmark() tea.Cmd {
	item, ok := a.Picker.Selected()
	if !ok || a.Reader == nil {
		return nil
	}
	if err := a.library.RemoveBookmark(a.ctx, item.ID); err != nil {
		a.logger.Error("failed to remove bookmark", logging.FieldError, err)
		return a.setFlashMessage(fmt.Sprintf("Error removing bookmark: %v", err), flashDuration)
	}

	a.Picker.Remove()
	marks := a.Reader.Bookmarks[:0]
	for _, m := range a.Reader.Bookmarks {
		if m.ID != item.ID {
			marks = append(marks, m)
		}
	}
	a.Reader.Bookmarks = marks
	return a.setFlashMessage("Bookmark removed", flashDuration)
}

func bookmarkItems(r *ReaderModel) []PickerItem {
	items := make([]PickerItem, 0, len(r.Bookmarks))
	for _, m := range r.Bookmarks {
		progress := pager.CalculateProgress(m.Location, r.Pager.Len())
		items = append(items, PickerItem{
			Label:    fmt.Sprintf("%4s  %s", pager.FormatProgress(progress), m.Content),
			Detail:   m.Note,
			Location: m.Location,
			ID:       m.ID,
		})
	}
	return items
}

func chapterItems(r *ReaderModel) []PickerItem {
	items := make([]PickerItem, 0, len(r.Chapters))
	for _, c := range r.Chapters {
		items = append(items, PickerItem{
			Label:    c.Title,
			Detail:   pager.FormatProgress(pager.CalculateProgress(c.Start, r.Pager.Len())),
			Location: c.Start,
		})
	}
	return items
}

// setFlashMessage sets a flash message that will disappear after the specified duration
func (a *AppModel) setFlashMessage(message string, duration time.Duration) tea.Cmd {
	a.flashID++
	id := a.flashID
	a.FlashMessage = message
	a.FlashExpiry = time.Now().Add(duration)
	return tea.Tick(duration, func(t time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}

// copyToClipboard copies the text on screen to the clipboard
func (a *AppModel) copyToClipboard() tea.Cmd {
	if a.clipboard == nil {
		return a.setFlashMessage("Clipboard not available", flashDuration)
	}
	text := a.Reader.VisibleText()
	if err := clipboard.WriteText(a.clipboard, text); err != nil {
		return a.setFlashMessage(fmt.Sprintf("Error copying: %v", err), flashDuration)
	}
	return a.setFlashMessage(fmt.Sprintf("Copied %d characters to clipboard", len([]rune(text))), flashDuration)
}

// View method for tea.Model compatibility
func (a *AppModel) View() string {
	return AppView(*a)
}

// AppView renders the complete application using pure functions
func AppView(model AppModel) string {
	if model.Width == 0 {
		return "Initializing..."
	}

	if model.CurrentMode == HelpMode {
		return renderHelpView(model) + "\n" + renderStatusLine(model)
	}

	var body string
	if model.Screen == ReaderScreen && model.Reader != nil {
		body = ReaderView(*model.Reader)
	} else {
		shelf := ShelfView(model.Shelf, model.Books, model.Prefs, model.Search, model.pagerCfg.PageSize)
		body = lipgloss.NewStyle().Height(model.Height - 1).Render(shelf)
	}
	view := body + "\n" + renderStatusLine(model)

	switch model.CurrentMode {
	case DeleteMode, ErrorMode:
		return ModalView(model.Modal, view, model.Width, model.Height)
	case BookmarksMode, TOCMode:
		options := "enter jump · esc close"
		if model.CurrentMode == BookmarksMode {
			options = "enter jump · d delete · esc close"
		}
		picker := ModalModel{
			Active:  true,
			Kind:    ListModal,
			Title:   model.Picker.Title,
			Content: PickerView(model.Picker, 54, max(model.Height-14, 3)),
			Options: options,
			Width:   60,
		}
		return ModalView(picker, view, model.Width, model.Height)
	}
	return view
}

// renderStatusLine renders the bottom status line (pure function)
func renderStatusLine(model AppModel) string {
	// Prioritize flash message if active and not expired
	if model.FlashMessage != "" && time.Now().Before(model.FlashExpiry) {
		return flashStyle.Width(model.Width).Render(truncateWidth(model.FlashMessage, model.Width))
	}

	var statusLine string
	switch {
	case model.CurrentMode == HelpMode:
		statusLine = "Help - press z to return, ctrl+c to quit"
	case model.CurrentMode == SearchMode:
		statusLine = "Type to filter titles (enter to keep, esc to cancel)"
	case model.Screen == ReaderScreen && model.Reader != nil && model.Reader.Pager.Mode() == pager.ModeContinuous:
		statusLine = "j/k scroll · space page · m paginate · b bookmark · t contents · z help · q shelf"
	case model.Screen == ReaderScreen:
		statusLine = "h/l page · j/k scroll · m continuous · b bookmark · t contents · z help · q shelf"
	default:
		statusLine = "enter read · / search · s sort · r reverse · d delete · z help · q quit"
	}
	return dimStyle.Width(model.Width).Render(truncateWidth(statusLine, model.Width))
}

// renderHelpView renders the help content as a single pane (pure function)
func renderHelpView(model AppModel) string {
	helpContent := `txtreader - a bookshelf for plain text

SHELF:
  j, k        Move down / up
  g, G        Go to top / bottom
  enter       Read the selected book
  /           Filter by title (esc clears the filter)
  s           Cycle sort: title, date added, last read, file size
  r           Reverse the sort order
  d           Delete the selected book

READER:
  h, l        Previous / next page (scroll a screen when continuous)
  space       Next page
  j, k        Scroll a line
  g, G        Top / bottom of the page or the loaded text
  m           Toggle paginated and continuous reading
  b           Bookmark the current position
  B           List bookmarks (enter jumps, d deletes)
  t           Table of contents
  y           Copy the text on screen
  c, C        Cycle text / background color
  +, -        Wider / narrower text
  ], [        More / less line spacing
  q, esc      Back to the shelf (your place is saved)

GLOBAL:
  z, ?        Toggle this help screen
  ctrl+c      Quit`

	helpStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(max(model.Width-4, 10)).
		Height(max(model.Height-4, 1))

	return helpStyle.Render(strings.TrimSpace(helpContent))
}
