package testhelpers

// Selection is a recorded [Start, End) selection
type Selection struct {
	Start int
	End   int
}

// RecordingSurface is a session.Surface that remembers every call
type RecordingSurface struct {
	Selections []Selection
	Scrolls    []int
	Focused    int
	Warnings   []string
}

// NewRecordingSurface creates an empty recording surface
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{}
}

// Select records a selection
func (s *RecordingSurface) Select(start, end int) {
	s.Selections = append(s.Selections, Selection{Start: start, End: end})
}

// ScrollTo records a scroll request
func (s *RecordingSurface) ScrollTo(line int) {
	s.Scrolls = append(s.Scrolls, line)
}

// Focus counts focus requests
func (s *RecordingSurface) Focus() {
	s.Focused++
}

// Warn records a blocking warning
func (s *RecordingSurface) Warn(message string) {
	s.Warnings = append(s.Warnings, message)
}

// LastSelection returns the most recent selection, or {-1, -1}
func (s *RecordingSurface) LastSelection() Selection {
	if len(s.Selections) == 0 {
		return Selection{Start: -1, End: -1}
	}
	return s.Selections[len(s.Selections)-1]
}

// CommitRecorder collects fragments handed to a commit callback
type CommitRecorder struct {
	Fragments []string
}

// Func returns the callback to pass to session.Open
func (r *CommitRecorder) Func() func(string) {
	return func(fragment string) {
		r.Fragments = append(r.Fragments, fragment)
	}
}

// Calls returns how many times the callback ran
func (r *CommitRecorder) Calls() int {
	return len(r.Fragments)
}
