package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yiblet/txtreader/internal/library"
	"github.com/yiblet/txtreader/internal/logging"
	"github.com/yiblet/txtreader/internal/pager"
	"github.com/yiblet/txtreader/internal/store"
)

// booksLoadedMsg carries the full shelf, unfiltered.
type booksLoadedMsg struct {
	books []*store.Book
	err   error
}

// bookOpenedMsg carries a book ready to read. pager is an error-state pager
// when the file could not be decoded.
type bookOpenedMsg struct {
	book      *store.Book
	pager     *pager.Pager
	chapters  []pager.Chapter
	bookmarks []*store.Bookmark
	err       error
}

// appendDoneMsg returns the result of an append job to the update loop,
// which is the only place it may be applied. pager is the pager that
// started the job; the result is dropped if that book is no longer open.
type appendDoneMsg struct {
	pager  *pager.Pager
	result pager.AppendResult
}

// scrollFlushMsg fires when a throttled scroll event of pager is due.
type scrollFlushMsg struct {
	pager *pager.Pager
	token pager.ScrollToken
}

type flashExpiredMsg struct {
	id int
}

func loadShelfCmd(ctx context.Context, lib *library.Library) tea.Cmd {
	return func() tea.Msg {
		books, err := lib.List(ctx, library.ListOptions{Sort: library.SortAdded})
		return booksLoadedMsg{books: books, err: err}
	}
}

func openBookCmd(ctx context.Context, lib *library.Library, id string, cfg pager.Config, opts ...pager.Option) tea.Cmd {
	return func() tea.Msg {
		book, p, err := lib.Open(ctx, id, cfg, opts...)
		if err != nil {
			return bookOpenedMsg{err: err}
		}
		msg := bookOpenedMsg{book: book, pager: p}
		if !p.Failed() {
			msg.chapters = pager.DetectChapters(p.Document())
		}
		// The book still opens without its bookmarks.
		msg.bookmarks, err = lib.Bookmarks(ctx, book.ID)
		if err != nil {
			logging.FromContext(ctx).Warn("failed to load bookmarks",
				logging.FieldBook, book.ID,
				logging.FieldError, err)
		}
		return msg
	}
}

func appendCmd(ctx context.Context, p *pager.Pager, job *pager.AppendJob) tea.Cmd {
	if job == nil {
		return nil
	}
	return func() tea.Msg {
		return appendDoneMsg{pager: p, result: job.Run(ctx)}
	}
}

func flushScrollCmd(p *pager.Pager, token pager.ScrollToken, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return scrollFlushMsg{pager: p, token: token}
	})
}
