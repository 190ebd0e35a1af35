package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/pluqqy/htmlpane/pkg/buffer"
)

const (
	searchBarHeight = 3
	statusHeight    = 1
	paneChrome      = 3 // border plus title row
)

// SetSize updates the terminal dimensions
func (e *Editor) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.layout()
}

func (e *Editor) layout() {
	e.help.Width = e.width
	helpHeight := lipgloss.Height(e.help.View(e.keys))

	bodyHeight := max(paneChrome+1, e.height-searchBarHeight-statusHeight-helpHeight)

	e.leftWidth = max(20, e.width/2)
	rightWidth := max(20, e.width-e.leftWidth)

	e.dialog.SetWidth(min(60, max(40, e.width-4)))
	e.search.SetWidth(e.leftWidth)
	e.textarea.SetWidth(max(10, e.leftWidth-2))
	e.textarea.SetHeight(max(1, bodyHeight-paneChrome))
	e.pane.SetSize(max(1, rightWidth-4), max(1, bodyHeight+searchBarHeight-paneChrome))
}

// View implements tea.Model
func (e *Editor) View() string {
	if e.quitting {
		return ""
	}

	if e.dialog.Active() {
		return lipgloss.Place(e.width, e.height, lipgloss.Center, lipgloss.Center, e.dialog.View())
	}

	left := lipgloss.JoinVertical(lipgloss.Left, e.search.View(), e.editorView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, e.previewView())

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		e.statusView(),
		e.help.View(e.keys),
	)
}

func (e *Editor) editorView() string {
	active := e.focus == focusEditor
	title := HeaderPaddingStyle.Render(GetActiveHeaderStyle(active).Render("HTML"))

	return GetPaneBorderStyle(active).
		Width(max(1, e.leftWidth-2)).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, e.textarea.View()))
}

func (e *Editor) previewView() string {
	title := HeaderPaddingStyle.Render(GetActiveHeaderStyle(false).Render("PREVIEW"))
	if e.ctrl.RenderError() != nil {
		title += ErrorStyle.Render(" ×")
	}

	rightWidth := max(20, e.width-e.leftWidth)
	content := HeaderPaddingStyle.Render(e.pane.View())

	return InactiveBorderStyle.
		Width(max(1, rightWidth-2)).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (e *Editor) statusView() string {
	var text string
	if msg, statusType, ok := e.status.Current(); ok {
		text = GetStatusStyle(statusType).Render(msg)
	} else {
		text = DescriptionStyle.Render(e.positionSummary())
	}

	if e.width > 0 {
		text = truncate.StringWithTail(text, uint(e.width), "…")
	}
	return text
}

func (e *Editor) positionSummary() string {
	value := e.textarea.Value()
	li := e.textarea.LineInfo()

	parts := []string{
		fmt.Sprintf("Ln %d, Col %d", e.textarea.Line()+1, li.StartColumn+li.ColumnOffset+1),
		fmt.Sprintf("%d lines", buffer.CountLines(value)),
		fmt.Sprintf("%d bytes", len(value)),
	}
	if state := e.ctrl.SearchState(); state.Current >= 0 {
		parts = append(parts, fmt.Sprintf("match %s from line %d", state.Counter(), e.scrollLine+1))
	}
	return strings.Join(parts, " · ")
}
