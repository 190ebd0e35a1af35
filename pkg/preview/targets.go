package preview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MemoryTarget keeps the rendered document in memory
type MemoryTarget struct {
	doc    string
	writes int
}

// NewMemoryTarget creates an empty in-memory target
func NewMemoryTarget() *MemoryTarget {
	return &MemoryTarget{}
}

// Replace swaps in a new document
func (m *MemoryTarget) Replace(doc string) error {
	m.doc = doc
	m.writes++
	return nil
}

// Document returns the current document
func (m *MemoryTarget) Document() string {
	return m.doc
}

// Writes returns how many times the document was replaced
func (m *MemoryTarget) Writes() int {
	return m.writes
}

// Close drops the document
func (m *MemoryTarget) Close() error {
	m.doc = ""
	return nil
}

// FileTarget rewrites an .html file on every replace so it can be
// opened (and reloaded) in a browser. Writes go through a temp file
// and a rename, so readers never see a half-written document.
type FileTarget struct {
	Path string
	// RemoveOnClose deletes the file when the session ends
	RemoveOnClose bool
}

// NewFileTarget creates a target writing to path
func NewFileTarget(path string) *FileTarget {
	return &FileTarget{Path: path}
}

// Replace atomically writes doc to the target file
func (f *FileTarget) Replace(doc string) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create preview directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".htmlpane-preview-*")
	if err != nil {
		return fmt.Errorf("failed to create temp preview file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write preview file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write preview file: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace preview file %s: %w", f.Path, err)
	}
	return nil
}

// Close removes the preview file if RemoveOnClose is set
func (f *FileTarget) Close() error {
	if !f.RemoveOnClose {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove preview file: %w", err)
	}
	return nil
}

// Tee fans one document out to several targets
type Tee []Target

// Replace writes doc to every target, collecting failures
func (t Tee) Replace(doc string) error {
	var errs []error
	for _, target := range t {
		if err := target.Replace(doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every target that can be closed
func (t Tee) Close() error {
	var errs []error
	for _, target := range t {
		if c, ok := target.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
