// Package session ties the buffer, preview renderer, search engine and
// fragment wrapper together behind an open/commit lifecycle.
//
// A Controller is confined to a single goroutine (the UI event loop).
// Every method runs to completion before returning.
package session

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/pluqqy/htmlpane/pkg/buffer"
	"github.com/pluqqy/htmlpane/pkg/fragment"
	"github.com/pluqqy/htmlpane/pkg/preview"
	"github.com/pluqqy/htmlpane/pkg/search"
)

// EmptyCommitWarning is shown when committing a blank buffer
const EmptyCommitWarning = "Nothing to insert!"

var (
	ErrClosed      = errors.New("session is closed")
	ErrAlreadyOpen = errors.New("session is already open")
	ErrEmptyCommit = errors.New("nothing to commit")
)

// CommitFunc receives the fragment produced on a successful commit
type CommitFunc func(fragment string)

// Surface is the UI hosting the session: the buffer view plus a way
// to put a blocking message in front of the user.
type Surface interface {
	search.View
	Warn(message string)
}

// TargetFactory provides a fresh render target for each opened session
type TargetFactory func() (preview.Target, error)

// Status is the lifecycle state of a Controller
type Status int

const (
	StatusClosed Status = iota
	StatusOpen
)

func (s Status) String() string {
	if s == StatusOpen {
		return "open"
	}
	return "closed"
}

// Config wires a Controller to its collaborators
type Config struct {
	Surface  Surface
	Targets  TargetFactory
	Wrapper  fragment.Wrapper
	MaxBytes int
	// ContextLines is kept above an activated match; zero scrolls the
	// match to the top and a negative value selects the default
	ContextLines int
	// StaleRecompute re-runs the last search on navigation when the
	// buffer changed since it was computed
	StaleRecompute bool
	Logger         *log.Logger
}

// Controller drives one editing session at a time
type Controller struct {
	cfg    Config
	status Status

	buf      *buffer.Buffer
	target   preview.Target
	renderer *preview.Renderer
	engine   *search.Engine
	onCommit CommitFunc
}

// New creates a closed controller
func New(cfg Config) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Targets == nil {
		cfg.Targets = func() (preview.Target, error) {
			return preview.NewMemoryTarget(), nil
		}
	}
	return &Controller{cfg: cfg}
}

// Open seeds the buffer, acquires a render target and renders once
func (c *Controller) Open(initial string, onCommit CommitFunc) error {
	if c.status == StatusOpen {
		return ErrAlreadyOpen
	}

	target, err := c.cfg.Targets()
	if err != nil {
		return fmt.Errorf("failed to create preview target: %w", err)
	}

	c.buf = buffer.New(initial)
	c.target = target
	c.renderer = preview.NewRenderer(target,
		preview.WithMaxBytes(c.cfg.MaxBytes),
		preview.WithLogger(c.cfg.Logger),
	)

	var view search.View
	if c.cfg.Surface != nil {
		view = c.cfg.Surface
	}
	c.engine = search.NewEngine(view, search.WithContextLines(c.cfg.ContextLines))
	c.onCommit = onCommit
	c.status = StatusOpen

	c.cfg.Logger.Printf("session: opened with %d bytes", len(initial))
	c.renderer.Refresh(c.buf.Text())
	return nil
}

// Status returns the lifecycle state
func (c *Controller) Status() Status {
	return c.status
}

// IsOpen checks if the session accepts events
func (c *Controller) IsOpen() bool {
	return c.status == StatusOpen
}

// Edit replaces the buffer content and re-renders the preview
func (c *Controller) Edit(text string) error {
	if !c.IsOpen() {
		return ErrClosed
	}
	c.buf.Set(text)
	c.renderer.Refresh(c.buf.Text())
	return nil
}

// Text returns the buffer content
func (c *Controller) Text() string {
	if !c.IsOpen() {
		return ""
	}
	return c.buf.Text()
}

// Revision returns the buffer revision
func (c *Controller) Revision() uint64 {
	if !c.IsOpen() {
		return 0
	}
	return c.buf.Revision()
}

// Target returns the render target of the open session
func (c *Controller) Target() preview.Target {
	return c.target
}

// RenderError returns the failure of the latest refresh, if any
func (c *Controller) RenderError() error {
	if !c.IsOpen() {
		return nil
	}
	return c.renderer.LastError()
}

// Search runs a new search over the current buffer
func (c *Controller) Search(term string) (search.State, error) {
	if !c.IsOpen() {
		return search.State{Current: -1}, ErrClosed
	}
	return c.engine.Search(c.buf.Snapshot(), term), nil
}

// NextMatch activates the following match
func (c *Controller) NextMatch() error {
	if !c.IsOpen() {
		return ErrClosed
	}
	c.refreshStale()
	c.engine.Next()
	return nil
}

// PrevMatch activates the preceding match
func (c *Controller) PrevMatch() error {
	if !c.IsOpen() {
		return ErrClosed
	}
	c.refreshStale()
	c.engine.Prev()
	return nil
}

// ClearSearch drops the active search
func (c *Controller) ClearSearch() error {
	if !c.IsOpen() {
		return ErrClosed
	}
	c.engine.Clear()
	return nil
}

// SearchState returns the current search state
func (c *Controller) SearchState() search.State {
	if !c.IsOpen() {
		return search.State{Current: -1}
	}
	return c.engine.State()
}

// Counter returns the search counter text
func (c *Controller) Counter() string {
	if !c.IsOpen() {
		return "0/0"
	}
	return c.engine.Counter()
}

// Stale reports whether the search results predate the latest edit
func (c *Controller) Stale() bool {
	if !c.IsOpen() {
		return false
	}
	return c.engine.Stale(c.buf.Revision())
}

// Commit wraps the buffer and hands it to the commit callback, then closes.
// A blank buffer is refused with a warning and the session stays open.
func (c *Controller) Commit() (string, error) {
	if !c.IsOpen() {
		return "", ErrClosed
	}

	if c.buf.IsBlank() {
		if c.cfg.Surface != nil {
			c.cfg.Surface.Warn(EmptyCommitWarning)
		}
		return "", ErrEmptyCommit
	}

	frag := c.cfg.Wrapper.Wrap(c.buf.Trimmed())
	if c.onCommit != nil {
		c.onCommit(frag)
	} else {
		c.cfg.Logger.Printf("session: commit without callback, nothing delivered")
	}

	c.close()
	return frag, nil
}

// Cancel closes the session without committing
func (c *Controller) Cancel() {
	if !c.IsOpen() {
		return
	}
	c.cfg.Logger.Printf("session: cancelled")
	c.close()
}

// refreshStale recomputes a search whose matches point into an older revision
func (c *Controller) refreshStale() {
	if !c.cfg.StaleRecompute || !c.engine.Stale(c.buf.Revision()) {
		return
	}
	state := c.engine.State()
	c.cfg.Logger.Printf("session: search for %q is stale, recomputing", state.Term)
	c.engine.Search(c.buf.Snapshot(), state.Term)

	// continue from roughly where the cursor was
	if state.Current > 0 {
		c.engine.Seek(state.Current)
	}
}

func (c *Controller) close() {
	if closer, ok := c.target.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			c.cfg.Logger.Printf("session: failed to close preview target: %v", err)
		}
	}
	c.buf = nil
	c.target = nil
	c.renderer = nil
	c.engine = nil
	c.onCommit = nil
	c.status = StatusClosed
}
