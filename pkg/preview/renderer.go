// Package preview renders the buffer into an isolated document.
//
// Every Refresh rebuilds the whole document and hands it to a Target,
// which replaces whatever it held before. Failures never escape Refresh:
// they are logged and shown as a diagnostic inside the target instead.
package preview

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/pluqqy/htmlpane/pkg/fragment"
)

// Placeholder is shown when there is nothing to render
const Placeholder = `<p style="color:#999;padding:20px;">Enter HTML code...</p>`

var (
	ErrTooLarge    = errors.New("content exceeds preview size limit")
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")
)

// Target is an isolated document context. Replace discards the previous
// document entirely.
type Target interface {
	Replace(doc string) error
}

// Renderer writes the buffer into its target on every refresh
type Renderer struct {
	target   Target
	maxBytes int
	logger   *log.Logger
	lastErr  error
}

// Option configures a Renderer
type Option func(*Renderer)

// WithMaxBytes rejects content larger than n bytes. Zero means no limit.
func WithMaxBytes(n int) Option {
	return func(r *Renderer) {
		r.maxBytes = n
	}
}

// WithLogger sets where render failures are logged
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// NewRenderer creates a renderer for the given target
func NewRenderer(target Target, opts ...Option) *Renderer {
	r := &Renderer{
		target: target,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard, "", 0)
	}
	return r
}

// Refresh re-renders content into the target
func (r *Renderer) Refresh(content string) {
	defer func() {
		if p := recover(); p != nil {
			r.fail(fmt.Errorf("render panic: %v", p))
		}
	}()

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		if err := r.target.Replace(Placeholder); err != nil {
			r.fail(err)
			return
		}
		r.lastErr = nil
		return
	}

	doc, err := r.compose(trimmed)
	if err != nil {
		r.fail(err)
		return
	}

	if err := r.target.Replace(doc); err != nil {
		r.fail(fmt.Errorf("failed to write preview: %w", err))
		return
	}
	r.lastErr = nil
}

// LastError returns the failure from the most recent refresh, if any
func (r *Renderer) LastError() error {
	return r.lastErr
}

func (r *Renderer) compose(content string) (string, error) {
	if r.maxBytes > 0 && len(content) > r.maxBytes {
		return "", fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(content), r.maxBytes)
	}
	if !utf8.ValidString(content) {
		return "", ErrInvalidUTF8
	}
	return Document(content), nil
}

// fail records err and shows it inside the target
func (r *Renderer) fail(err error) {
	r.lastErr = err
	r.logger.Printf("preview: %v", err)

	defer func() {
		if p := recover(); p != nil {
			r.logger.Printf("preview: diagnostic panicked: %v", p)
		}
	}()
	if werr := r.target.Replace(Diagnostic("Error: " + err.Error())); werr != nil {
		r.logger.Printf("preview: failed to show diagnostic: %v", werr)
	}
}

// Document wraps content in the fixed preview skeleton
func Document(content string) string {
	return fragment.ComposeDocument(content)
}

// Diagnostic renders an error message for display in the target
func Diagnostic(message string) string {
	return `<div style="color:#ef4444;padding:20px;font-family:monospace;">` +
		"\n  ⚠️ " + fragment.Escape(message) + "\n</div>"
}
