package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/yiblet/txtreader/internal/library"
	"github.com/yiblet/txtreader/internal/store"
)

// ShelfMsg represents messages that the shelf component handles
type ShelfMsg interface {
	isShelfMsg()
}

// Shelf message implementations
type NavigateUpMsg struct{}

func (NavigateUpMsg) isShelfMsg() {}

type NavigateDownMsg struct {
	MaxIndex int // Maximum valid index for bounds checking
}

func (NavigateDownMsg) isShelfMsg() {}

type GoToTopMsg struct{}

func (GoToTopMsg) isShelfMsg() {}

type GoToBottomMsg struct {
	MaxIndex int
}

func (GoToBottomMsg) isShelfMsg() {}

type JumpToIndexMsg struct {
	Index    int
	MaxIndex int
}

func (JumpToIndexMsg) isShelfMsg() {}

type ResizeShelfMsg struct {
	Width  int
	Height int
}

func (ResizeShelfMsg) isShelfMsg() {}

// shelfChrome is the number of rows taken by the header, the search line
// and the status line.
const shelfChrome = 5

// ShelfModel holds the state of the book list
type ShelfModel struct {
	Cursor int // Index of the highlighted book
	Offset int // Index of the first visible book
	Width  int
	Height int
}

// NewShelfModel creates a shelf model with the given size
func NewShelfModel(width, height int) ShelfModel {
	return ShelfModel{Width: width, Height: height}
}

// Update applies a shelf message
func (s *ShelfModel) Update(msg ShelfMsg) error {
	switch m := msg.(type) {
	case NavigateUpMsg:
		if s.Cursor > 0 {
			s.Cursor--
		}
	case NavigateDownMsg:
		if s.Cursor < m.MaxIndex {
			s.Cursor++
		}
	case GoToTopMsg:
		s.Cursor = 0
	case GoToBottomMsg:
		s.Cursor = max(m.MaxIndex, 0)
	case JumpToIndexMsg:
		s.Cursor = min(max(m.Index, 0), max(m.MaxIndex, 0))
	case ResizeShelfMsg:
		s.Width = m.Width
		s.Height = m.Height
	}
	s.scrollToCursor()
	return nil
}

// VisibleRows returns how many books fit on screen.
func (s *ShelfModel) VisibleRows() int {
	return max(s.Height-shelfChrome, 1)
}

func (s *ShelfModel) scrollToCursor() {
	rows := s.VisibleRows()
	if s.Cursor < s.Offset {
		s.Offset = s.Cursor
	}
	if s.Cursor >= s.Offset+rows {
		s.Offset = s.Cursor - rows + 1
	}
	s.Offset = max(s.Offset, 0)
}

// ShelfView renders the shelf as a pure function
func ShelfView(model ShelfModel, books []*store.Book, prefs library.Preferences, search SearchModel, pageSize int) string {
	var b strings.Builder

	direction := "↓"
	if prefs.SortAscending {
		direction = "↑"
	}
	header := fmt.Sprintf("Bookshelf · %s · Sort: %s %s",
		bookCount(len(books)), prefs.SortOption.Label(), direction)
	b.WriteString(titleStyle.Render(truncateWidth(header, model.Width)) + "\n")

	switch {
	case search.IsActive():
		b.WriteString(search.View() + "\n\n")
	case search.Query() != "":
		b.WriteString(dimStyle.Render(fmt.Sprintf("Filter: %q (/ to change, esc to clear)", search.Query())) + "\n\n")
	default:
		b.WriteString("\n")
	}

	if len(books) == 0 {
		if search.Query() != "" {
			b.WriteString(dimStyle.Render(fmt.Sprintf("No books match %q.", search.Query())))
		} else {
			b.WriteString(dimStyle.Render("The shelf is empty. Add books with: txtreader import FILE"))
		}
		return b.String()
	}

	end := min(model.Offset+model.VisibleRows(), len(books))
	for i := model.Offset; i < end; i++ {
		b.WriteString(shelfRow(books[i], model.Width, pageSize, i == model.Cursor) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func shelfRow(book *store.Book, width, pageSize int, selected bool) string {
	meta := fmt.Sprintf("%-8s %9s  %s", pageLabel(book, pageSize), humanize.Bytes(uint64(max(book.Size, 0))), lastReadLabel(book))
	titleWidth := max(width-runewidth.StringWidth(meta)-4, 10)
	title := runewidth.FillRight(truncateWidth(book.Title, titleWidth), titleWidth)

	line := title + "  " + meta
	if selected {
		line = selectedStyle.Render(line)
	}
	return spineStyle(book.CoverColor).Render("▌") + " " + line
}

// pageLabel is the page where reading stopped, or "new".
func pageLabel(book *store.Book, pageSize int) string {
	if book.LastReadAt == nil || pageSize <= 0 {
		return "new"
	}
	return fmt.Sprintf("p. %d", book.LastReadLocation/pageSize+1)
}

func lastReadLabel(book *store.Book) string {
	if book.LastReadAt == nil {
		return "added " + humanize.Time(book.AddedAt)
	}
	return "read " + humanize.Time(*book.LastReadAt)
}

func bookCount(n int) string {
	if n == 1 {
		return "1 book"
	}
	return fmt.Sprintf("%d books", n)
}
