package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

type doneMsg string

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmation_YesNo(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"yes", runeKey("y"), doneMsg("confirmed")},
		{"upper yes", runeKey("Y"), doneMsg("confirmed")},
		{"no", runeKey("n"), doneMsg("cancelled")},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, doneMsg("cancelled")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmation()
			m.ShowConfirm("Discard?", "Leave without inserting?", true,
				func() tea.Cmd { return func() tea.Msg { return doneMsg("confirmed") } },
				func() tea.Cmd { return func() tea.Msg { return doneMsg("cancelled") } },
			)
			assert.True(t, m.Active())

			cmd := m.Update(tt.key)
			assert.False(t, m.Active())
			if assert.NotNil(t, cmd) {
				assert.Equal(t, tt.want, cmd())
			}
		})
	}
}

func TestConfirmation_SwallowsOtherKeys(t *testing.T) {
	m := NewConfirmation()
	m.ShowConfirm("Discard?", "Leave?", false, nil, nil)

	assert.Nil(t, m.Update(runeKey("x")))
	assert.Nil(t, m.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.True(t, m.Active())
}

func TestConfirmation_AlertNeedsAcknowledgement(t *testing.T) {
	dismissed := 0
	m := NewConfirmation()
	m.ShowAlert("Warning", "Nothing to insert!", func() tea.Cmd {
		dismissed++
		return nil
	})

	assert.Equal(t, DialogAlert, m.Kind())
	assert.Equal(t, "Nothing to insert!", m.Message())

	// y/n mean nothing to an alert
	m.Update(runeKey("y"))
	m.Update(runeKey("n"))
	assert.True(t, m.Active())
	assert.Equal(t, 0, dismissed)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Active())
	assert.Equal(t, 1, dismissed)
}

func TestConfirmation_View(t *testing.T) {
	m := NewConfirmation()
	assert.Empty(t, m.View())

	m.ShowAlert("Warning", "Nothing to insert!", nil)
	view := m.View()
	assert.Contains(t, view, "Warning")
	assert.Contains(t, view, "Nothing to insert!")
	assert.Contains(t, view, "OK")

	m.ShowConfirm("Discard?", "Leave?", true, nil, nil)
	view = m.View()
	assert.Contains(t, view, "[Y]es")
	assert.Contains(t, view, "(yes / no)")
}

func TestConfirmation_Width(t *testing.T) {
	m := NewConfirmation()
	m.SetWidth(40)
	m.ShowAlert("Warning", "Nothing to insert!", nil)
	narrow := lipgloss.Width(m.View())

	m.SetWidth(60)
	wide := lipgloss.Width(m.View())
	assert.Equal(t, 20, wide-narrow)

	m.Show(DialogConfig{Title: "Fixed", Message: "x", Kind: DialogAlert, Width: 30}, nil, nil)
	assert.Equal(t, 32, lipgloss.Width(m.View()), "width plus the border")
}
