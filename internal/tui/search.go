package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchMsg represents messages that the search component handles
type SearchMsg interface {
	isSearchMsg()
}

// Search message implementations
type StartSearchMsg struct{}

func (StartSearchMsg) isSearchMsg() {}

type ExecuteSearchMsg struct{}

func (ExecuteSearchMsg) isSearchMsg() {}

type CancelSearchMsg struct{}

func (CancelSearchMsg) isSearchMsg() {}

type ClearSearchMsg struct{}

func (ClearSearchMsg) isSearchMsg() {}

// SearchModel filters the shelf by title. While active, the query follows
// the input as it is typed; cancelling restores the previous query.
type SearchModel struct {
	input    textinput.Model
	active   bool
	previous string
}

// NewSearchModel creates an inactive search model
func NewSearchModel() SearchModel {
	input := textinput.New()
	input.Placeholder = "Search titles..."
	input.Prompt = "/"
	input.CharLimit = 100
	return SearchModel{input: input}
}

// Update applies a search message
func (s *SearchModel) Update(msg SearchMsg) tea.Cmd {
	switch msg.(type) {
	case StartSearchMsg:
		s.active = true
		s.previous = s.input.Value()
		s.input.CursorEnd()
		return s.input.Focus()
	case ExecuteSearchMsg:
		s.active = false
		s.input.Blur()
	case CancelSearchMsg:
		s.active = false
		s.input.SetValue(s.previous)
		s.input.Blur()
	case ClearSearchMsg:
		s.active = false
		s.previous = ""
		s.input.SetValue("")
		s.input.Blur()
	}
	return nil
}

// HandleKey passes a key to the text input while the search is active.
func (s *SearchModel) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if !s.active {
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// IsActive reports whether the search input has focus
func (s SearchModel) IsActive() bool {
	return s.active
}

// Query returns the current filter text
func (s SearchModel) Query() string {
	return s.input.Value()
}

// View renders the search input
func (s SearchModel) View() string {
	return s.input.View()
}
