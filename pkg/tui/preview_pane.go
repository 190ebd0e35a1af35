package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/muesli/reflow/wordwrap"
)

// PreviewPane is the preview target shown inside the editor. It keeps
// the latest rendered document and presents it word-wrapped in a
// scrollable viewport.
type PreviewPane struct {
	viewport viewport.Model
	document string
	writes   int
	width    int
}

// NewPreviewPane creates an empty preview pane
func NewPreviewPane() *PreviewPane {
	return &PreviewPane{
		viewport: viewport.New(0, 0),
	}
}

// Replace swaps in a freshly rendered document
func (p *PreviewPane) Replace(doc string) error {
	p.document = doc
	p.writes++
	p.layout()
	return nil
}

// Document returns the current document
func (p *PreviewPane) Document() string {
	return p.document
}

// Writes returns how many times the document was replaced
func (p *PreviewPane) Writes() int {
	return p.writes
}

// SetSize resizes the viewport and re-wraps the document
func (p *PreviewPane) SetSize(width, height int) {
	p.width = max(1, width)
	p.viewport.Width = p.width
	p.viewport.Height = max(1, height)
	p.layout()
}

// ScrollUp moves the preview one page up
func (p *PreviewPane) ScrollUp() {
	p.viewport.ViewUp()
}

// ScrollDown moves the preview one page down
func (p *PreviewPane) ScrollDown() {
	p.viewport.ViewDown()
}

// YOffset returns the first visible preview line
func (p *PreviewPane) YOffset() int {
	return p.viewport.YOffset
}

// View renders the visible part of the preview
func (p *PreviewPane) View() string {
	return p.viewport.View()
}

// Close drops the document
func (p *PreviewPane) Close() error {
	p.document = ""
	p.viewport.SetContent("")
	return nil
}

func (p *PreviewPane) layout() {
	content := strings.ReplaceAll(p.document, "\t", "    ")
	if p.width > 0 {
		content = wordwrap.String(content, p.width)
	}
	offset := p.viewport.YOffset
	p.viewport.SetContent(content)
	p.viewport.SetYOffset(offset)
}
