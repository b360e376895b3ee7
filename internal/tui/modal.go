package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/yiblet/txtreader/internal/store"
)

// ModalKind picks the frame of a modal.
type ModalKind int

const (
	ConfirmModal ModalKind = iota
	ErrorModal
	ListModal // bookmarks and contents
)

func (k ModalKind) borderColor() lipgloss.Color {
	if k == ListModal {
		return lipgloss.Color("62")
	}
	return lipgloss.Color("9")
}

// ModalMsg represents messages that the modal component handles
type ModalMsg interface {
	isModalMsg()
}

type ShowModalMsg struct {
	Kind    ModalKind
	Title   string
	Content string
	Options string
}

func (ShowModalMsg) isModalMsg() {}

type HideModalMsg struct{}

func (HideModalMsg) isModalMsg() {}

// ModalModel is a dialog drawn over the shelf or the reader.
type ModalModel struct {
	Active  bool
	Kind    ModalKind
	Title   string
	Content string
	Options string
	// Width is the preferred inner width; narrow windows shrink it.
	Width int
}

func NewModalModel() ModalModel {
	return ModalModel{Width: 60}
}

// Update handles modal messages
func (m *ModalModel) Update(msg ModalMsg) error {
	switch msg := msg.(type) {
	case ShowModalMsg:
		m.Active = true
		m.Kind = msg.Kind
		m.Title = msg.Title
		m.Content = msg.Content
		m.Options = msg.Options
	case HideModalMsg:
		m.Active = false
		m.Title = ""
		m.Content = ""
		m.Options = ""
	}
	return nil
}

// ModalView draws the modal centered over background, a screen of the
// given size. Inactive modals leave the background as is.
func ModalView(model ModalModel, background string, width, height int) string {
	if !model.Active {
		return background
	}
	return overlay(background, renderModal(model, width, height), width, height)
}

func renderModal(model ModalModel, width, height int) string {
	sections := []string{titleStyle.Render(model.Title)}
	if model.Content != "" {
		sections = append(sections, model.Content)
	}
	if model.Options != "" {
		sections = append(sections, dimStyle.Render(model.Options))
	}

	// Border and padding take four columns and four rows.
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.Kind.borderColor()).
		Padding(1, 2).
		Width(max(min(model.Width, width-4), 8)).
		Align(lipgloss.Center).
		Render(strings.Join(sections, "\n\n"))

	lines := strings.Split(box, "\n")
	if len(lines) > height {
		lines = lines[:max(height, 1)]
	}
	return strings.Join(lines, "\n")
}

// overlay places box centered on background. Rows of box wider than the
// screen are clipped, and a wide character cut by either edge of the box is
// replaced by a space so every row keeps its width.
func overlay(background, box string, width, height int) string {
	rows := strings.Split(background, "\n")
	lines := strings.Split(box, "\n")

	top := max((height-len(lines))/2, 0)
	left := max((width-ansi.StringWidth(lines[0]))/2, 0)

	for i, line := range lines {
		y := top + i
		if y >= len(rows) {
			break
		}
		row := rows[y]
		line = ansi.Truncate(line, max(width-left, 0), "")
		end := left + ansi.StringWidth(line)

		before := ansi.Truncate(row, left, "")
		if pad := left - ansi.StringWidth(before); pad > 0 {
			before += strings.Repeat(" ", pad)
		}

		var after string
		if rest := ansi.StringWidth(row) - end; rest > 0 {
			after = ansi.TruncateLeft(row, end, "")
			if ansi.StringWidth(after) > rest {
				after = " " + ansi.TruncateLeft(row, end+1, "")
			}
		}
		rows[y] = before + line + after
	}
	return strings.Join(rows, "\n")
}

// ShowDeleteConfirmation creates a delete confirmation modal for a book
func ShowDeleteConfirmation(book *store.Book) ShowModalMsg {
	return ShowModalMsg{
		Kind:  ConfirmModal,
		Title: "Delete Book?",
		Content: fmt.Sprintf("%s\n%s, added %s\n\nThe book file and its bookmarks will be removed.",
			truncateWidth(book.Title, 50), humanize.Bytes(uint64(max(book.Size, 0))), humanize.Time(book.AddedAt)),
		Options: "[Y] Yes, delete    [N] No, cancel",
	}
}

// ShowError creates a modal reporting err
func ShowError(title string, err error) ShowModalMsg {
	return ShowModalMsg{
		Kind:    ErrorModal,
		Title:   title,
		Content: err.Error(),
		Options: "Press any key to continue",
	}
}
