package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// PickerItem is one entry of a picker list.
type PickerItem struct {
	Label    string
	Detail   string
	Location int
	// ID identifies the underlying record, e.g. a bookmark ID. Zero for
	// entries that cannot be deleted.
	ID uint
}

// PickerModel is a small modal list used for bookmarks and the table of
// contents.
type PickerModel struct {
	Title  string
	Empty  string
	Items  []PickerItem
	Cursor int
}

// NewPickerModel creates a picker with the cursor on the first item.
func NewPickerModel(title, empty string, items []PickerItem) PickerModel {
	return PickerModel{Title: title, Empty: empty, Items: items}
}

func (p *PickerModel) MoveUp() {
	if p.Cursor > 0 {
		p.Cursor--
	}
}

func (p *PickerModel) MoveDown() {
	if p.Cursor < len(p.Items)-1 {
		p.Cursor++
	}
}

// Select puts the cursor on index, clamped to the list.
func (p *PickerModel) Select(index int) {
	p.Cursor = min(max(index, 0), max(len(p.Items)-1, 0))
}

// Selected returns the highlighted item.
func (p PickerModel) Selected() (PickerItem, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return PickerItem{}, false
	}
	return p.Items[p.Cursor], true
}

// Remove drops the highlighted item and keeps the cursor in range.
func (p *PickerModel) Remove() {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return
	}
	p.Items = append(p.Items[:p.Cursor], p.Items[p.Cursor+1:]...)
	p.Cursor = min(p.Cursor, max(len(p.Items)-1, 0))
}

// PickerView renders the picker as the body of a modal.
func PickerView(model PickerModel, width, rows int) string {
	if len(model.Items) == 0 {
		return dimStyle.Render(model.Empty)
	}
	rows = max(rows, 1)

	offset := max(model.Cursor-rows+1, 0)

	var b strings.Builder
	end := min(offset+rows, len(model.Items))
	for i := offset; i < end; i++ {
		item := model.Items[i]
		line := item.Label
		if item.Detail != "" {
			line += "  " + item.Detail
		}
		line = runewidth.FillRight(truncateWidth(line, width-2), width-2)
		if i == model.Cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	if len(model.Items) > rows {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d", model.Cursor+1, len(model.Items))))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
