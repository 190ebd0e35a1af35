package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens an editor in the alternate screen and blocks until the
// session is committed or cancelled
func Run(opts Options, programOpts ...tea.ProgramOption) (Result, error) {
	editor, err := NewEditor(opts)
	if err != nil {
		return Result{}, err
	}
	// a killed program leaves the session open
	defer editor.Close()

	programOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)
	p := tea.NewProgram(editor, programOpts...)
	if _, err := p.Run(); err != nil {
		return Result{}, fmt.Errorf("failed to start the terminal user interface: %w", err)
	}

	return editor.Result(), nil
}
