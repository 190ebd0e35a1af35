// Package search implements literal text search over a buffer snapshot
// with a circular cursor over the matches.
package search

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/pluqqy/htmlpane/pkg/buffer"
)

// DefaultContextLines is how many lines are kept visible above an active match
const DefaultContextLines = 3

// Match is a half-open byte range [Start, End) into the snapshot it was found in
type Match struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// State is the outcome of the last search
type State struct {
	Term    string
	Matches []Match
	// Current is the active match index, -1 when there is none
	Current int
	// Revision is the buffer revision the matches were computed against
	Revision uint64
}

// View is the text view that shows the buffer. Activating a match moves
// its selection and scroll position.
type View interface {
	Select(start, end int)
	ScrollTo(line int)
	Focus()
}

// Engine owns the search state for one buffer view
type Engine struct {
	state        State
	text         string
	view         View
	contextLines int
}

// Option configures an Engine
type Option func(*Engine)

// WithContextLines sets the number of lines kept above an active match
func WithContextLines(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.contextLines = n
		}
	}
}

// NewEngine creates an engine driving the given view. A nil view is allowed.
func NewEngine(view View, opts ...Option) *Engine {
	e := &Engine{
		state:        State{Current: -1},
		view:         view,
		contextLines: DefaultContextLines,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindAll returns every occurrence of term in text, in ascending order.
// The scan resumes one character after each hit, so overlapping
// occurrences are all reported.
func FindAll(text, term string) []Match {
	if term == "" {
		return nil
	}

	var matches []Match
	from := 0
	for from <= len(text) {
		idx := strings.Index(text[from:], term)
		if idx < 0 {
			break
		}
		start := from + idx
		matches = append(matches, Match{Start: start, End: start + len(term)})

		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return matches
}

// Search replaces the current state with the matches of term in snap.
// The term is trimmed; an empty term leaves no active search.
func (e *Engine) Search(snap buffer.Snapshot, term string) State {
	term = strings.TrimSpace(term)
	e.state = State{Term: term, Current: -1, Revision: snap.Revision}
	e.text = snap.Text

	if term == "" {
		return e.State()
	}

	e.state.Matches = FindAll(snap.Text, term)
	log.Printf("search: %q found %d matches", term, len(e.state.Matches))

	if len(e.state.Matches) > 0 {
		e.activate(0)
	}
	return e.State()
}

// Next moves to the following match, wrapping to the first
func (e *Engine) Next() {
	n := len(e.state.Matches)
	if n == 0 {
		return
	}
	e.activate((e.state.Current + 1) % n)
}

// Prev moves to the preceding match, wrapping to the last
func (e *Engine) Prev() {
	n := len(e.state.Matches)
	if n == 0 {
		return
	}
	e.activate((e.state.Current - 1 + n) % n)
}

// Seek activates the match at index, clamped to the last match
func (e *Engine) Seek(index int) {
	n := len(e.state.Matches)
	if n == 0 || index < 0 {
		return
	}
	e.activate(min(index, n-1))
}

// Clear drops the term and matches and hands focus back to the view
func (e *Engine) Clear() {
	e.state = State{Current: -1}
	e.text = ""
	if e.view != nil {
		e.view.Select(0, 0)
		e.view.Focus()
	}
}

// State returns a copy of the current state
func (e *Engine) State() State {
	s := e.state
	s.Matches = append([]Match(nil), e.state.Matches...)
	return s
}

// Current returns the active match
func (e *Engine) Current() (Match, bool) {
	if e.state.Current < 0 || e.state.Current >= len(e.state.Matches) {
		return Match{}, false
	}
	return e.state.Matches[e.state.Current], true
}

// Counter renders the position as "current/total", or "0/0" with no matches
func (e *Engine) Counter() string {
	return e.state.Counter()
}

// Stale reports whether the matches were computed against another revision
func (e *Engine) Stale(revision uint64) bool {
	return e.state.Term != "" && e.state.Revision != revision
}

// Counter renders the position as "current/total", or "0/0" with no matches
func (s State) Counter() string {
	if len(s.Matches) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", s.Current+1, len(s.Matches))
}

func (e *Engine) activate(index int) {
	if index < 0 || index >= len(e.state.Matches) {
		return
	}
	e.state.Current = index
	if e.view == nil {
		return
	}

	m := e.state.Matches[index]
	e.view.Select(m.Start, m.End)

	line, _ := buffer.Position(e.text, m.Start)
	e.view.ScrollTo(max(0, line-e.contextLines))
}
