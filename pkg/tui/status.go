package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusType selects the icon and color of a status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

var statusIcons = map[StatusType]string{
	StatusTypeSuccess: "✓",
	StatusTypeWarning: "⚠",
	StatusTypeError:   "×",
	StatusTypeInfo:    "ℹ",
}

// ClearStatusMsg is sent when a flashed message may have expired
type ClearStatusMsg struct{}

type statusEntry struct {
	text  string
	kind  StatusType
	until time.Time // zero for pinned entries
}

func (s statusEntry) render() string {
	return statusIcons[s.kind] + " " + s.text
}

// StatusLine holds the message shown under the panes. A flashed message
// hides the pinned one until it expires; the pinned one stays until
// unpinned.
type StatusLine struct {
	flash    *statusEntry
	pinned   *statusEntry
	duration time.Duration
	now      func() time.Time
}

// NewStatusLine creates an empty status line
func NewStatusLine() *StatusLine {
	return &StatusLine{
		duration: 2 * time.Second,
		now:      time.Now,
	}
}

// Flash shows text for a short while. The returned command tells the
// editor when to redraw without it.
func (s *StatusLine) Flash(kind StatusType, text string) tea.Cmd {
	s.flash = &statusEntry{text: text, kind: kind, until: s.now().Add(s.duration)}
	return tea.Tick(s.duration, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

func (s *StatusLine) Success(text string) tea.Cmd { return s.Flash(StatusTypeSuccess, text) }
func (s *StatusLine) Warning(text string) tea.Cmd { return s.Flash(StatusTypeWarning, text) }
func (s *StatusLine) Error(text string) tea.Cmd   { return s.Flash(StatusTypeError, text) }
func (s *StatusLine) Info(text string) tea.Cmd    { return s.Flash(StatusTypeInfo, text) }

// Pin keeps text on the line until Unpin
func (s *StatusLine) Pin(kind StatusType, text string) {
	s.pinned = &statusEntry{text: text, kind: kind}
}

// Unpin drops the pinned message and reports whether there was one
func (s *StatusLine) Unpin() bool {
	had := s.pinned != nil
	s.pinned = nil
	return had
}

// Pinned reports whether a message is pinned
func (s *StatusLine) Pinned() bool {
	return s.pinned != nil
}

// Expire drops an expired flash and reports whether one is still showing
func (s *StatusLine) Expire() bool {
	if s.flash == nil {
		return false
	}
	if s.now().After(s.flash.until) {
		s.flash = nil
		return false
	}
	return true
}

// Current returns the text to show, its type, and false when the line
// is free for the cursor summary
func (s *StatusLine) Current() (string, StatusType, bool) {
	if s.Expire() {
		return s.flash.render(), s.flash.kind, true
	}
	if s.pinned != nil {
		return s.pinned.render(), s.pinned.kind, true
	}
	return "", StatusTypeInfo, false
}
