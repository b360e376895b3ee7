package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/yiblet/txtreader/internal/library"
	"github.com/yiblet/txtreader/internal/pager"
	"github.com/yiblet/txtreader/internal/store"
)

// readerChrome is the number of rows around the text: the header, a blank
// line, the footer and the status line.
const readerChrome = 4

// ReaderModel shows one book through a pager. The viewport holds the
// wrapped text: the current page when paginated, the loaded prefix of the
// book when continuous.
type ReaderModel struct {
	Book      *store.Book
	Pager     *pager.Pager
	Chapters  []pager.Chapter
	Bookmarks []*store.Bookmark
	Prefs     library.Preferences
	Viewport  viewport.Model
	Width     int
	Height    int

	lines  []string
	starts []int // document offset of each line in lines

	// pendingJump is a location past the loaded text that the view should
	// move to once enough of the book is appended, or -1.
	pendingJump int
}

// NewReaderModel creates a reader showing p in the mode chosen in prefs.
// The returned result carries any append the mode switch needs.
func NewReaderModel(book *store.Book, p *pager.Pager, chapters []pager.Chapter, bookmarks []*store.Bookmark, prefs library.Preferences, width, height int) (ReaderModel, pager.ScrollResult) {
	r := ReaderModel{
		Book:        book,
		Pager:       p,
		Chapters:    chapters,
		Bookmarks:   bookmarks,
		Prefs:       prefs,
		Viewport:    viewport.New(width, max(height-readerChrome, 1)),
		Width:       width,
		Height:      height,
		pendingJump: -1,
	}
	r.Viewport.MouseWheelEnabled = false

	var res pager.ScrollResult
	if prefs.PageTurn == pager.ModeContinuous && !p.Failed() {
		p.SwitchToContinuous()
		res = r.jump(p.Location())
	}
	r.reflow(p.Location())
	return r, res
}

// textWidth is the wrap width: the preferred width, narrowed to the window.
func (r *ReaderModel) textWidth() int {
	return max(min(r.Prefs.TextWidth, r.Width-4), 1)
}

// reflow rewraps the displayed text and scrolls so that the line holding
// anchor is at the top.
func (r *ReaderModel) reflow(anchor int) {
	content, base := r.content()

	r.lines = r.lines[:0]
	r.starts = r.starts[:0]
	for _, line := range WrapLines(content, r.textWidth()) {
		r.lines = append(r.lines, line.Text)
		r.starts = append(r.starts, base+line.Start)
		for range r.Prefs.LineSpacing {
			r.lines = append(r.lines, "")
			r.starts = append(r.starts, base+line.Start)
		}
	}

	r.Viewport.Width = r.textWidth()
	r.Viewport.Height = max(r.Height-readerChrome, 1)
	r.Viewport.Style = pageStyle(r.Prefs.TextColor, r.Prefs.BackgroundColor)
	r.Viewport.SetContent(strings.Join(r.lines, "\n"))
	r.Viewport.SetYOffset(r.lineAt(anchor))
}

func (r *ReaderModel) content() (string, int) {
	switch {
	case r.Pager.Failed():
		return r.Pager.ErrorMessage(), 0
	case r.Pager.Mode() == pager.ModeContinuous:
		return r.Pager.DisplayedContent(), 0
	default:
		return r.Pager.CurrentPage(), r.Pager.Location()
	}
}

// lineAt returns the last line starting at or before location.
func (r *ReaderModel) lineAt(location int) int {
	i := sort.Search(len(r.starts), func(i int) bool { return r.starts[i] > location })
	return max(i-1, 0)
}

// topLocation is the document offset of the first visible line.
func (r *ReaderModel) topLocation() int {
	if r.Pager.Failed() {
		return 0
	}
	if r.Viewport.YOffset < len(r.starts) {
		return r.starts[r.Viewport.YOffset]
	}
	return r.Pager.Location()
}

// SetSize resizes the reader, keeping the top line's text in view.
func (r *ReaderModel) SetSize(width, height int) {
	anchor := r.topLocation()
	r.Width = width
	r.Height = height
	r.reflow(anchor)
}

// SetPrefs applies new display preferences.
func (r *ReaderModel) SetPrefs(prefs library.Preferences) {
	anchor := r.topLocation()
	r.Prefs = prefs
	r.reflow(anchor)
}

// Scroll moves the text by n lines. In continuous mode the new position is
// fed to the pager's scroll pipeline.
func (r *ReaderModel) Scroll(n int) pager.ScrollResult {
	r.Viewport.SetYOffset(r.Viewport.YOffset + n)
	return r.scrolled()
}

// ScrollTo moves the first visible line to line.
func (r *ReaderModel) ScrollTo(line int) pager.ScrollResult {
	r.Viewport.SetYOffset(line)
	return r.scrolled()
}

func (r *ReaderModel) scrolled() pager.ScrollResult {
	if r.Pager.Mode() != pager.ModeContinuous || r.Pager.Failed() {
		return pager.ScrollResult{}
	}
	r.Pager.SetLocation(r.topLocation())
	hidden := r.Viewport.TotalLineCount() - r.Viewport.VisibleLineCount()
	if hidden <= 0 {
		// All loaded text is on screen, so its end is in view.
		return r.Pager.OnScroll(-1, 1)
	}
	return r.Pager.OnScroll(-float64(r.Viewport.YOffset), float64(hidden))
}

// Flush evaluates a throttled scroll event.
func (r *ReaderModel) Flush(token pager.ScrollToken) pager.ScrollResult {
	return r.Pager.FlushScroll(token)
}

// ApplyAppend merges a finished append and redraws. When a jump is still
// waiting for text, the result carries the next append it needs.
func (r *ReaderModel) ApplyAppend(res pager.AppendResult) pager.ScrollResult {
	if !r.Pager.ApplyAppend(res) {
		return r.retryJump()
	}

	if r.pendingJump >= 0 && r.pendingJump < r.Pager.DisplayedLen() {
		target := r.pendingJump
		r.pendingJump = -1
		r.reflow(target)
		r.Pager.SetLocation(target)
		return pager.ScrollResult{}
	}
	r.reflow(r.topLocation())
	return r.retryJump()
}

func (r *ReaderModel) retryJump() pager.ScrollResult {
	if r.pendingJump < 0 || r.Pager.LoadingMore() {
		return pager.ScrollResult{}
	}
	if r.Pager.DisplayedLen() >= r.Pager.Len() {
		r.pendingJump = -1
		return pager.ScrollResult{}
	}
	return r.jump(r.pendingJump)
}

// JumpTo moves the reader to location, e.g. a chapter or a bookmark.
func (r *ReaderModel) JumpTo(location int) pager.ScrollResult {
	if r.Pager.Failed() {
		return pager.ScrollResult{}
	}
	res := r.jump(location)
	r.reflow(r.Pager.Location())
	return res
}

func (r *ReaderModel) jump(location int) pager.ScrollResult {
	res := r.Pager.JumpToLocation(location)
	r.pendingJump = -1
	if r.Pager.Mode() == pager.ModeContinuous && r.Pager.Location() >= r.Pager.DisplayedLen() {
		r.pendingJump = r.Pager.Location()
	}
	return res
}

// NextPage turns to the next page in paginated mode.
func (r *ReaderModel) NextPage() {
	r.Pager.NextPage()
	r.reflow(r.Pager.Location())
}

// PreviousPage turns back a page in paginated mode.
func (r *ReaderModel) PreviousPage() {
	r.Pager.PreviousPage()
	r.reflow(r.Pager.Location())
}

// ToggleMode switches between paginated and continuous presentation,
// keeping the current location.
func (r *ReaderModel) ToggleMode() pager.ScrollResult {
	if r.Pager.Failed() {
		return pager.ScrollResult{}
	}

	location := r.topLocation()
	if r.Pager.Mode() == pager.ModeContinuous {
		r.pendingJump = -1
		r.Pager.SetLocation(location)
		r.Pager.SwitchToPaginated()
		r.Prefs.PageTurn = pager.ModePaginated
		r.reflow(location)
		return pager.ScrollResult{}
	}

	r.Pager.SwitchToContinuous()
	r.Prefs.PageTurn = pager.ModeContinuous
	res := r.jump(location)
	r.reflow(location)
	return res
}

// VisibleText is the text to copy: the page when paginated, the lines on
// screen when continuous.
func (r *ReaderModel) VisibleText() string {
	if r.Pager.Mode() == pager.ModePaginated {
		return r.Pager.CurrentPage()
	}
	start := min(r.Viewport.YOffset, len(r.lines))
	end := min(start+r.Viewport.Height, len(r.lines))
	return strings.Join(r.lines[start:end], "\n")
}

// Location is the read position shown on screen.
func (r *ReaderModel) Location() int {
	return r.topLocation()
}

// ChapterIndex returns the chapter at the current location, or -1.
func (r *ReaderModel) ChapterIndex() int {
	return pager.ChapterAt(r.Chapters, r.Location())
}

// ReaderView renders the reader as a pure function
func ReaderView(model ReaderModel) string {
	var b strings.Builder

	header := model.Book.Title
	if i := model.ChapterIndex(); i >= 0 {
		header += " · " + model.Chapters[i].Title
	}
	b.WriteString(titleStyle.Render(truncateWidth(header, model.Width)) + "\n\n")

	if model.Pager.Failed() {
		lines := WrapText(model.Pager.ErrorMessage(), max(model.Width-4, 1))
		b.WriteString(errorStyle.Render(strings.Join(lines, "\n")) + "\n")
		b.WriteString(strings.Repeat("\n", max(model.Height-readerChrome-len(lines), 0)))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(model.Width, lipgloss.Center, model.Viewport.View()) + "\n")
	}

	b.WriteString(readerFooter(model))
	return b.String()
}

func readerFooter(model ReaderModel) string {
	if model.Pager.Failed() {
		return dimStyle.Render("q back to the shelf")
	}

	progress := model.Pager.CurrentProgress()
	var right string
	if model.Pager.Mode() == pager.ModePaginated {
		right = fmt.Sprintf("Page %d/%d", model.Pager.PageIndex()+1, max(model.Pager.PageCount(), 1))
	} else {
		right = "continuous"
		if model.Pager.LoadingMore() {
			right += " · loading…"
		}
	}

	left := renderProgressBar(20, progress) + " " + pager.FormatProgress(progress)
	gap := max(model.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + dimStyle.Render(right)
}

// renderProgressBar draws progress in [0, 1] as a bar of width cells.
func renderProgressBar(width int, progress float64) string {
	width = max(width, 3)
	progress = min(max(progress, 0), 1)

	const (
		empty    = "░"
		filled   = "█"
		partials = "▏▎▍▌▋▊▉"
	)

	cells := progress * float64(width)
	full := int(cells)

	var bar strings.Builder
	bar.WriteString(strings.Repeat(filled, full))
	if full < width {
		if eighths := int((cells - float64(full)) * 8); eighths > 0 {
			bar.WriteString(string([]rune(partials)[min(eighths, 7)-1]))
			full++
		}
	}
	bar.WriteString(strings.Repeat(empty, width-full))
	return bar.String()
}
