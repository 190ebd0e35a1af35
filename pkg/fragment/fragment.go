// Package fragment turns raw markup into an embeddable, isolated frame.
//
// The produced fragment is a container element holding a sandboxed iframe
// whose srcdoc attribute carries the escaped document. Scripts still run
// inside the frame; this package isolates, it does not sanitize.
package fragment

import (
	"fmt"
	"math/rand"
	"strings"
)

const (
	// IDPrefix starts every frame identifier
	IDPrefix = "html-preview-"
	// IDLength is the number of random characters after the prefix
	IDLength = 7
	// Sandbox grants scripts and same-origin access inside the frame
	Sandbox = "allow-scripts allow-same-origin"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Wrapper builds fragments. The zero value uses NewID.
type Wrapper struct {
	// NewID returns the identifier for the next fragment
	NewID func() string
}

// Wrap builds a fragment using a random identifier
func Wrap(content string) string {
	return Wrapper{}.Wrap(content)
}

// Wrap escapes the composed document and places it in a sandboxed frame
func (w Wrapper) Wrap(content string) string {
	newID := w.NewID
	if newID == nil {
		newID = NewID
	}
	id := newID()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div data-html-preview-container="%s" style="width:100%%;height:100%%;overflow:auto;">`, id)
	sb.WriteString("\n  <iframe\n")
	fmt.Fprintf(&sb, "    id=\"%s\"\n", id)
	sb.WriteString("    data-html-preview-iframe=\"true\"\n")
	sb.WriteString("    style=\"width:100%;height:100%;border:none;display:block;\"\n")
	fmt.Fprintf(&sb, "    sandbox=\"%s\"\n", Sandbox)
	fmt.Fprintf(&sb, "    srcdoc=\"%s\"\n", Escape(Document(content)))
	sb.WriteString("  ></iframe>\n</div>")
	return sb.String()
}

// Escape replaces & < > " ' with entities so the result is safe
// inside a double- or single-quoted attribute value
func Escape(s string) string {
	return escaper.Replace(s)
}

// ResetRule is the style rule every composed document starts with
const ResetRule = "* { margin: 0; padding: 0; box-sizing: border-box; }"

const frameBodyRule = "body { background: #fff; font-family: system-ui, sans-serif; }"

// Document composes the standalone document shipped inside the frame
func Document(content string) string {
	return ComposeDocument(content, frameBodyRule)
}

// ComposeDocument places content in the document skeleton: charset and
// viewport meta, then ResetRule followed by rules.
func ComposeDocument(content string, rules ...string) string {
	var sb strings.Builder
	sb.WriteString(docHead)
	for _, rule := range append([]string{ResetRule}, rules...) {
		sb.WriteString("    " + rule + "\n")
	}
	sb.WriteString(docBodyOpen)
	sb.WriteString(content)
	sb.WriteString(docTail)
	return sb.String()
}

const docHead = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
`

const docBodyOpen = `  </style>
</head>
<body>
`

const docTail = `
</body>
</html>`

// NewID returns a fresh frame identifier. Collisions are unlikely, not impossible.
func NewID() string {
	b := make([]byte, IDLength)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return IDPrefix + string(b)
}
