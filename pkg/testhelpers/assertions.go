package testhelpers

import (
	"regexp"
	"strings"
	"testing"
)

var srcdocAttr = regexp.MustCompile(`srcdoc="([^"]*)"`)

// SrcdocValue returns the raw srcdoc attribute of a fragment
func SrcdocValue(t *testing.T, fragment string) string {
	t.Helper()

	m := srcdocAttr.FindStringSubmatch(fragment)
	if m == nil {
		t.Fatalf("fragment has no srcdoc attribute: %q", fragment)
	}
	return m[1]
}

// AssertIsolatedFragment checks that fragment is a sandboxed frame
// embedding the escaped form of content
func AssertIsolatedFragment(t *testing.T, fragment, escapedContent string) {
	t.Helper()

	if !strings.Contains(fragment, "data-html-preview-container=") {
		t.Errorf("fragment has no container element: %q", fragment)
	}
	if !strings.Contains(fragment, `sandbox="allow-scripts allow-same-origin"`) {
		t.Errorf("fragment frame is not sandboxed: %q", fragment)
	}

	value := SrcdocValue(t, fragment)
	if !strings.Contains(value, escapedContent) {
		t.Errorf("srcdoc does not embed %q", escapedContent)
	}
	for _, reserved := range []string{"<", ">", `"`, "'"} {
		if strings.Contains(value, reserved) {
			t.Errorf("srcdoc contains unescaped %q", reserved)
		}
	}
}
