package library

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yiblet/txtreader/internal/pager"
)

// Config store keys for runtime preferences.
const (
	KeySortOption      = "sort_option"
	KeySortAscending   = "sort_ascending"
	KeyTextColor       = "text_color"
	KeyBackgroundColor = "background_color"
	KeyLineSpacing     = "line_spacing"
	KeyTextWidth       = "text_width"
	KeyPageTurn        = "page_turn"
)

// Limits for the display preferences.
const (
	MinLineSpacing = 0
	MaxLineSpacing = 3
	MinTextWidth   = 20
	MaxTextWidth   = 200
)

// Preferences are the shelf and reader settings the user changes from
// inside the TUI.
type Preferences struct {
	SortOption      SortOption
	SortAscending   bool
	TextColor       string
	BackgroundColor string
	// LineSpacing is the number of blank lines between wrapped lines.
	LineSpacing int
	// TextWidth is the wrap width in terminal cells.
	TextWidth int
	PageTurn  pager.Mode
}

// DefaultPreferences returns the settings used before anything is saved.
func DefaultPreferences() Preferences {
	return Preferences{
		SortOption:      SortAdded,
		SortAscending:   false,
		TextColor:       "default",
		BackgroundColor: "default",
		LineSpacing:     0,
		TextWidth:       80,
		PageTurn:        pager.ModePaginated,
	}
}

// Normalize clamps numeric settings into range and fills blanks.
func (p Preferences) Normalize() Preferences {
	def := DefaultPreferences()
	if _, err := ParseSortOption(string(p.SortOption)); err != nil {
		p.SortOption = def.SortOption
	}
	if p.TextColor == "" {
		p.TextColor = def.TextColor
	}
	if p.BackgroundColor == "" {
		p.BackgroundColor = def.BackgroundColor
	}
	p.LineSpacing = min(max(p.LineSpacing, MinLineSpacing), MaxLineSpacing)
	if p.TextWidth == 0 {
		p.TextWidth = def.TextWidth
	}
	p.TextWidth = min(max(p.TextWidth, MinTextWidth), MaxTextWidth)
	if p.PageTurn != pager.ModeContinuous {
		p.PageTurn = pager.ModePaginated
	}
	return p
}

// LoadPreferences reads preferences from the config store. Missing or
// malformed values fall back to their defaults.
func (l *Library) LoadPreferences() (Preferences, error) {
	values, err := l.store.Config().List()
	if err != nil {
		return DefaultPreferences(), fmt.Errorf("failed to load preferences: %w", err)
	}
	return preferencesFromMap(values), nil
}

// SavePreferences writes preferences to the config store.
func (l *Library) SavePreferences(p Preferences) error {
	p = p.Normalize()
	pageTurn := "paginated"
	if p.PageTurn == pager.ModeContinuous {
		pageTurn = "continuous"
	}

	values := map[string]string{
		KeySortOption:      string(p.SortOption),
		KeySortAscending:   strconv.FormatBool(p.SortAscending),
		KeyTextColor:       p.TextColor,
		KeyBackgroundColor: p.BackgroundColor,
		KeyLineSpacing:     strconv.Itoa(p.LineSpacing),
		KeyTextWidth:       strconv.Itoa(p.TextWidth),
		KeyPageTurn:        pageTurn,
	}

	var errs []error
	for key, value := range values {
		if err := l.store.Config().Set(key, value); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

func preferencesFromMap(values map[string]string) Preferences {
	p := DefaultPreferences()

	if v, ok := values[KeySortOption]; ok {
		if opt, err := ParseSortOption(v); err == nil {
			p.SortOption = opt
		}
	}
	if v, ok := values[KeySortAscending]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			p.SortAscending = b
		}
	}
	if v := values[KeyTextColor]; v != "" {
		p.TextColor = v
	}
	if v := values[KeyBackgroundColor]; v != "" {
		p.BackgroundColor = v
	}
	if v, ok := values[KeyLineSpacing]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.LineSpacing = n
		}
	}
	if v, ok := values[KeyTextWidth]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.TextWidth = n
		}
	}
	if values[KeyPageTurn] == "continuous" {
		p.PageTurn = pager.ModeContinuous
	}
	return p.Normalize()
}
