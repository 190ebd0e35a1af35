package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StdinMarker names standard input where a file path is expected
const StdinMarker = "-"

// ReadSource reads markup from path, or from in when path is "" or "-"
func ReadSource(path string, in io.Reader) (string, error) {
	if path == "" || path == StdinMarker {
		if in == nil {
			return "", nil
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile writes content to path, creating parent directories
func WriteFile(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
