package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchBar is the search field with its match counter
type SearchBar struct {
	input    textinput.Model
	isActive bool
	width    int
	counter  string
	stale    bool
}

// NewSearchBar creates a new search bar component
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 200
	ti.Width = 50

	return &SearchBar{
		input:   ti,
		counter: "0/0",
	}
}

// SetActive sets whether the search bar is the active pane
func (s *SearchBar) SetActive(active bool) tea.Cmd {
	s.isActive = active
	if active {
		return s.input.Focus()
	}
	s.input.Blur()
	return nil
}

// Active reports whether the search bar has focus
func (s *SearchBar) Active() bool {
	return s.isActive
}

// SetWidth sets the width for the search bar
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.fitInput()
}

// fitInput leaves room for borders, padding, the icon and the badge so
// the bar stays on one row whatever the counter shows
func (s *SearchBar) fitInput() {
	s.input.Width = max(10, s.width-13-lipgloss.Width(s.counterView()))
}

// SetCounter updates the "current/total" badge
func (s *SearchBar) SetCounter(counter string, stale bool) {
	s.counter = counter
	s.stale = stale
	s.fitInput()
}

// Counter returns the badge text
func (s *SearchBar) Counter() string {
	return s.counter
}

// Value returns the current search text
func (s *SearchBar) Value() string {
	return s.input.Value()
}

// Update handles tea messages for the search bar
func (s *SearchBar) Update(msg tea.Msg) (*SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the search bar
func (s *SearchBar) View() string {
	borderColor := ColorInactive
	if s.isActive {
		borderColor = ColorActive
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(max(1, s.width-2)).
		Padding(0, 1)

	var searchIcon string
	if s.isActive {
		searchIcon = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true).
			Padding(0, 1).
			Render("⌕")
	} else {
		// same width as the active icon
		searchIcon = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal)).
			Bold(true).
			Render(" ⌕ ")
	}

	content := lipgloss.JoinHorizontal(lipgloss.Center, searchIcon, " ", s.input.View())

	gap := s.width - 6 - lipgloss.Width(content) - lipgloss.Width(s.counterView())
	if gap < 1 {
		gap = 1
	}
	content = lipgloss.JoinHorizontal(lipgloss.Center, content, lipgloss.NewStyle().Width(gap).Render(""), s.counterView())

	return searchStyle.Render(content)
}

func (s *SearchBar) counterView() string {
	if s.stale {
		return StaleCounterStyle.Render(s.counter + " *")
	}
	return CounterStyle.Render(s.counter)
}

// Reset clears the search input and the counter
func (s *SearchBar) Reset() {
	s.input.SetValue("")
	s.counter = "0/0"
	s.stale = false
	s.fitInput()
}
