package fragment

import (
	"errors"
	"html"
	"regexp"
	"strings"
)

var (
	ErrNotFragment = errors.New("input is not an html preview fragment")
	ErrMissingBody = errors.New("fragment document has no body")
)

var (
	frameIDPattern = regexp.MustCompile(`<iframe[^>]*\sid="([^"]*)"`)
	srcdocPattern  = regexp.MustCompile(`\ssrcdoc="([^"]*)"`)
)

// Embedded is what Unwrap recovers from a fragment
type Embedded struct {
	ID      string
	Content string
}

// Unwrap extracts the identifier and the original content from a fragment
// produced by Wrap, so an existing embed can be reopened for editing.
func Unwrap(fragment string) (Embedded, error) {
	if !strings.Contains(fragment, "data-html-preview-container=") {
		return Embedded{}, ErrNotFragment
	}

	idMatch := frameIDPattern.FindStringSubmatch(fragment)
	docMatch := srcdocPattern.FindStringSubmatch(fragment)
	if idMatch == nil || docMatch == nil {
		return Embedded{}, ErrNotFragment
	}

	doc := html.UnescapeString(docMatch[1])
	open := strings.Index(doc, "<body>")
	end := strings.LastIndex(doc, "</body>")
	if open < 0 || end < open {
		return Embedded{}, ErrMissingBody
	}

	content := doc[open+len("<body>") : end]
	content = strings.TrimPrefix(content, "\n")
	content = strings.TrimSuffix(content, "\n")

	return Embedded{ID: idMatch[1], Content: content}, nil
}
