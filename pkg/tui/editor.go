package tui

import (
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/htmlpane/pkg/buffer"
	"github.com/pluqqy/htmlpane/pkg/models"
	"github.com/pluqqy/htmlpane/pkg/preview"
	"github.com/pluqqy/htmlpane/pkg/session"
)

type focusArea int

const (
	focusEditor focusArea = iota
	focusSearch
)

// caret moves are bounded so a wrapped line can never stall the loop
const maxCaretSteps = 1 << 16

// Options configures an Editor
type Options struct {
	Initial  string
	Settings *models.Settings
	OnCommit session.CommitFunc
	Logger   *log.Logger
}

// Result reports how an editing session ended
type Result struct {
	Committed bool
	Fragment  string
}

// Editor is the interactive editing session: a raw markup buffer, a
// search bar and a live preview. It is the Surface of its session.
type Editor struct {
	ctrl     *session.Controller
	settings *models.Settings
	logger   *log.Logger

	textarea textarea.Model
	search   *SearchBar
	pane     *PreviewPane
	dialog   *ConfirmationModel
	status   *StatusLine
	keys     KeyMap
	help     help.Model

	focus      focusArea
	width      int
	height     int
	leftWidth  int
	scrollLine int
	caretLine  int
	caretCol   int
	changed    bool
	quitting   bool
	result     Result
	startup    tea.Cmd
}

// NewEditor creates an editor and opens its session
func NewEditor(opts Options) (*Editor, error) {
	settings := opts.Settings
	if settings == nil {
		settings = models.DefaultSettings()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	ta := textarea.New()
	ta.Placeholder = "Enter HTML code..."
	ta.ShowLineNumbers = settings.UI.ShowLineNumbers
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(opts.Initial)
	ta.Focus()

	e := &Editor{
		settings: settings,
		logger:   logger,
		textarea: ta,
		search:   NewSearchBar(),
		pane:     NewPreviewPane(),
		dialog:   NewConfirmation(),
		status:   NewStatusLine(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}

	e.ctrl = session.New(session.Config{
		Surface:        e,
		Targets:        e.previewTargets,
		MaxBytes:       settings.Preview.MaxBytes,
		ContextLines:   settings.Search.ContextLines,
		StaleRecompute: settings.Search.RecomputeStale,
		Logger:         logger,
	})

	// the buffer mirrors the textarea, which expands tabs and drops CRs
	initial := e.textarea.Value()
	if initial != opts.Initial {
		logger.Printf("editor: initial content normalized (%d -> %d bytes)", len(opts.Initial), len(initial))
		e.startup = e.status.Warning("Tabs were expanded and carriage returns dropped")
	}

	onCommit := func(frag string) {
		e.result = Result{Committed: true, Fragment: frag}
		if opts.OnCommit != nil {
			opts.OnCommit(frag)
		}
	}
	if err := e.ctrl.Open(initial, onCommit); err != nil {
		return nil, fmt.Errorf("failed to open editing session: %w", err)
	}

	e.SetSize(80, 24)
	e.syncRenderStatus()
	return e, nil
}

func (e *Editor) previewTargets() (preview.Target, error) {
	if e.settings.Preview.File == "" {
		return e.pane, nil
	}
	file := preview.NewFileTarget(e.settings.Preview.File)
	file.RemoveOnClose = e.settings.Preview.RemoveOnClose
	return preview.Tee{e.pane, file}, nil
}

// Init implements tea.Model
func (e *Editor) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, e.startup)
}

// Update implements tea.Model
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.SetSize(msg.Width, msg.Height)
		return e, nil

	case ClearStatusMsg:
		e.status.Expire()
		return e, nil

	case tea.KeyMsg:
		return e, e.handleKey(msg)
	}

	if e.focus == focusSearch {
		_, cmd := e.search.Update(msg)
		return e, cmd
	}
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return e, cmd
}

func (e *Editor) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, e.keys.Quit) {
		return e.cancel()
	}

	// an open dialog blocks everything else
	if e.dialog.Active() {
		return e.dialog.Update(msg)
	}

	switch {
	case key.Matches(msg, e.keys.Commit):
		return e.commit()

	case key.Matches(msg, e.keys.Cancel):
		if e.focus == focusSearch {
			return e.focusTextarea()
		}
		return e.requestCancel()

	case key.Matches(msg, e.keys.ToggleSearch):
		if e.focus == focusSearch {
			return e.focusTextarea()
		}
		return e.focusSearchBar()

	case key.Matches(msg, e.keys.NextMatch):
		return e.navigate(e.ctrl.NextMatch)

	case key.Matches(msg, e.keys.PrevMatch):
		return e.navigate(e.ctrl.PrevMatch)

	case key.Matches(msg, e.keys.ClearSearch):
		return e.clearSearch()

	case key.Matches(msg, e.keys.PreviewUp):
		e.pane.ScrollUp()
		return nil

	case key.Matches(msg, e.keys.PreviewDown):
		e.pane.ScrollDown()
		return nil

	case key.Matches(msg, e.keys.Help):
		e.help.ShowAll = !e.help.ShowAll
		e.layout()
		return nil
	}

	if e.focus == focusSearch {
		if msg.Type == tea.KeyEnter {
			return e.navigate(e.ctrl.NextMatch)
		}
		return e.updateSearch(msg)
	}
	return e.updateTextarea(msg)
}

func (e *Editor) updateTextarea(msg tea.KeyMsg) tea.Cmd {
	before := e.textarea.Value()

	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)

	after := e.textarea.Value()
	if after == before {
		return cmd
	}

	if err := e.ctrl.Edit(after); err != nil {
		return tea.Batch(cmd, e.status.Error(err.Error()))
	}
	e.changed = true
	e.syncCounter()
	return tea.Batch(cmd, e.syncRenderStatus())
}

func (e *Editor) updateSearch(msg tea.KeyMsg) tea.Cmd {
	before := e.search.Value()
	_, cmd := e.search.Update(msg)

	term := e.search.Value()
	if term == before {
		return cmd
	}

	state, err := e.ctrl.Search(term)
	if err != nil {
		return tea.Batch(cmd, e.status.Error(err.Error()))
	}
	e.syncCounter()
	if state.Term != "" && len(state.Matches) == 0 {
		return tea.Batch(cmd, e.status.Info(fmt.Sprintf("No matches for %q", state.Term)))
	}
	return cmd
}

func (e *Editor) navigate(step func() error) tea.Cmd {
	if err := step(); err != nil {
		return e.status.Error(err.Error())
	}
	e.syncCounter()
	return nil
}

func (e *Editor) clearSearch() tea.Cmd {
	if err := e.ctrl.ClearSearch(); err != nil {
		return e.status.Error(err.Error())
	}
	e.search.Reset()
	e.syncCounter()
	return textarea.Blink
}

func (e *Editor) focusSearchBar() tea.Cmd {
	e.focus = focusSearch
	e.textarea.Blur()
	return e.search.SetActive(true)
}

func (e *Editor) focusTextarea() tea.Cmd {
	e.Focus()
	return textarea.Blink
}

func (e *Editor) commit() tea.Cmd {
	frag, err := e.ctrl.Commit()
	if errors.Is(err, session.ErrEmptyCommit) {
		// the session already raised the warning dialog
		return nil
	}
	if err != nil {
		return e.status.Error(err.Error())
	}

	e.result = Result{Committed: true, Fragment: frag}
	e.quitting = true
	return tea.Quit
}

func (e *Editor) requestCancel() tea.Cmd {
	if !e.changed || !e.settings.UI.ConfirmCancel {
		return e.cancel()
	}
	e.dialog.ShowConfirm("Discard changes?", "Close the editor without inserting anything?", true, e.cancel, nil)
	return nil
}

func (e *Editor) cancel() tea.Cmd {
	e.ctrl.Cancel()
	e.quitting = true
	return tea.Quit
}

func (e *Editor) syncCounter() {
	e.search.SetCounter(e.ctrl.Counter(), e.ctrl.Stale())
}

// syncRenderStatus pins a render failure to the status line until a
// later render succeeds
func (e *Editor) syncRenderStatus() tea.Cmd {
	if err := e.ctrl.RenderError(); err != nil {
		e.status.Pin(StatusTypeError, "Preview: "+err.Error())
		return nil
	}
	if e.status.Unpin() {
		return e.status.Success("Preview recovered")
	}
	return nil
}

// Select places the caret at the start of a match. The textarea cannot
// paint a range, so end is not shown.
func (e *Editor) Select(start, end int) {
	e.caretLine, e.caretCol = buffer.Position(e.textarea.Value(), start)
	e.moveCaret(e.caretLine, e.caretCol)
	e.repositionTextarea()
}

// ScrollTo makes line the first visible row, as far as the buffer
// length allows, and leaves the caret where Select put it
func (e *Editor) ScrollTo(line int) {
	e.scrollLine = line

	// the textarea only scrolls as far as needed to reveal its caret:
	// go past the end, come back up to line, then return to the match
	e.moveCaret(e.textarea.LineCount()-1, 0)
	e.repositionTextarea()
	e.moveCaret(line, 0)
	e.repositionTextarea()
	e.moveCaret(e.caretLine, e.caretCol)
	e.repositionTextarea()
}

// Focus gives keyboard focus back to the buffer
func (e *Editor) Focus() {
	e.focus = focusEditor
	e.search.SetActive(false)
	e.textarea.Focus()
}

// Warn shows a blocking alert until the user dismisses it
func (e *Editor) Warn(message string) {
	e.logger.Printf("editor: warning shown: %s", message)
	e.dialog.ShowAlert("⚠ Warning", message, nil)
}

func (e *Editor) moveCaret(line, col int) {
	line = max(0, min(line, e.textarea.LineCount()-1))
	for i := 0; e.textarea.Line() > line && i < maxCaretSteps; i++ {
		e.textarea.CursorUp()
	}
	for i := 0; e.textarea.Line() < line && i < maxCaretSteps; i++ {
		e.textarea.CursorDown()
	}
	e.textarea.SetCursor(col)
}

// repositionTextarea lets the textarea scroll its viewport to the caret.
// It only does so while handling a message, only when focused, and only
// within the content its last View handed to the viewport.
func (e *Editor) repositionTextarea() {
	focused := e.textarea.Focused()
	if !focused {
		e.textarea.Focus()
	}
	_ = e.textarea.View()
	e.textarea, _ = e.textarea.Update(nil)
	if !focused {
		e.textarea.Blur()
	}
}

// Result returns how the session ended
func (e *Editor) Result() Result {
	return e.result
}

// Close cancels the session if it is still open
func (e *Editor) Close() {
	if e.ctrl.IsOpen() {
		e.ctrl.Cancel()
	}
}
