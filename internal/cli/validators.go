package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pluqqy/htmlpane/pkg/files"
)

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if path == "" || path == files.StdinMarker {
		return nil
	}
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateSearchTerm rejects terms that are empty once trimmed
func ValidateSearchTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return fmt.Errorf("search term cannot be empty")
	}
	return nil
}
