package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DialogKind selects which answers a dialog accepts
type DialogKind int

const (
	DialogConfirm DialogKind = iota // yes / no
	DialogAlert                     // single OK, blocks until dismissed
)

// DialogConfig holds the configuration for a dialog
type DialogConfig struct {
	Title       string
	Message     string
	Warning     string // optional, shown in orange
	Kind        DialogKind
	Destructive bool   // Yes is red, No is green
	YesLabel    string // default "Yes"
	NoLabel     string // default "No"
	OKLabel     string // default "OK"
	Width       int
}

// ConfirmationModel handles modal prompts. While active it consumes
// every key event.
type ConfirmationModel struct {
	active    bool
	config    DialogConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
	width     int
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// SetWidth sets the width used by dialogs that do not set their own
func (m *ConfirmationModel) SetWidth(width int) {
	m.width = width
}

// Show activates the dialog with the given configuration
func (m *ConfirmationModel) Show(config DialogConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
	if m.config.OKLabel == "" {
		m.config.OKLabel = "OK"
	}
}

// ShowConfirm asks a yes/no question
func (m *ConfirmationModel) ShowConfirm(title, message string, destructive bool, onConfirm, onCancel func() tea.Cmd) {
	m.Show(DialogConfig{
		Title:       title,
		Message:     message,
		Kind:        DialogConfirm,
		Destructive: destructive,
	}, onConfirm, onCancel)
}

// ShowAlert shows a message that must be acknowledged
func (m *ConfirmationModel) ShowAlert(title, message string, onDismiss func() tea.Cmd) {
	m.Show(DialogConfig{
		Title:   title,
		Message: message,
		Kind:    DialogAlert,
	}, onDismiss, onDismiss)
}

// Active returns whether the dialog is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Kind returns the kind of the current dialog
func (m *ConfirmationModel) Kind() DialogKind {
	return m.config.Kind
}

// Message returns the message of the current dialog
func (m *ConfirmationModel) Message() string {
	return m.config.Message
}

// Update handles key events for the dialog. Keys that are not an
// answer are swallowed.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	if m.config.Kind == DialogAlert {
		switch msg.String() {
		case "enter", "esc", " ", "o", "O":
			m.active = false
			if m.onConfirm != nil {
				return m.onConfirm()
			}
		}
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
		return nil

	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
		return nil
	}

	return nil
}

// View renders the dialog
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))

	width := m.config.Width
	if width == 0 {
		width = m.width
	}
	if width == 0 {
		width = 50
	}
	contentWidth := width - 6 // border and padding
	center := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center)

	var content strings.Builder

	if m.config.Title != "" {
		content.WriteString(center.Render(headerStyle.Render(m.config.Title)))
		content.WriteString("\n\n")
	}

	if m.config.Message != "" {
		content.WriteString(center.Render(m.config.Message))
		content.WriteString("\n")
	}

	if m.config.Warning != "" {
		content.WriteString("\n")
		content.WriteString(center.Render(WarningStyle.Render(m.config.Warning)))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(center.Render(m.options()))

	return DialogStyle.Width(width).Render(content.String())
}

func (m *ConfirmationModel) options() string {
	if m.config.Kind == DialogAlert {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true).
			Render("[Enter] " + m.config.OKLabel)
	}

	yesColor, noColor := ColorSuccess, ColorDanger
	if m.config.Destructive {
		yesColor, noColor = ColorDanger, ColorSuccess
	}
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(yesColor)).Bold(true).Render("[Y]es")
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(noColor)).Bold(true).Render("[N]o")
	labels := fmt.Sprintf("(%s / %s)",
		strings.ToLower(m.config.YesLabel),
		strings.ToLower(m.config.NoLabel))
	return yes + "  " + no + "  " + DescriptionStyle.Render(labels)
}
