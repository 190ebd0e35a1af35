package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSearchBar_BadgeKeepsOneRow(t *testing.T) {
	tests := []struct {
		name    string
		counter string
		stale   bool
		want    string
	}{
		{"empty", "0/0", false, "0/0"},
		{"stale", "1/1", true, "1/1 *"},
		{"two digit", "10/12", false, "10/12"},
		{"wide and stale", "100/120", true, "100/120 *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSearchBar()
			s.SetWidth(40)
			s.SetActive(true)
			s.input.SetValue("needle")

			s.SetCounter(tt.counter, tt.stale)

			view := s.View()
			assert.Equal(t, searchBarHeight, lipgloss.Height(view))
			assert.Contains(t, view, tt.want)
			assert.Equal(t, 40, lipgloss.Width(view))
		})
	}
}

func TestSearchBar_Reset(t *testing.T) {
	s := NewSearchBar()
	s.SetWidth(40)
	s.input.SetValue("x")
	s.SetCounter("3/7", true)

	s.Reset()
	assert.Empty(t, s.Value())
	assert.Equal(t, "0/0", s.Counter())
	assert.NotContains(t, s.View(), "*")
	assert.Equal(t, searchBarHeight, lipgloss.Height(s.View()))
}
