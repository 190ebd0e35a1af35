package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/htmlpane/pkg/models"
)

const (
	SettingsYAML = ".htmlpane.yaml"
	SettingsTOML = ".htmlpane.toml"
	AppDir       = "htmlpane"
)

// ErrUnknownFormat is returned for settings files that are neither yaml nor toml
var ErrUnknownFormat = errors.New("unknown settings format")

// SettingsPaths lists where settings are looked up, in order
func SettingsPaths() []string {
	paths := []string{SettingsYAML, SettingsTOML}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, AppDir, "config.yaml"),
			filepath.Join(dir, AppDir, "config.toml"),
		)
	}
	return paths
}

// FindSettings returns the first settings file that exists, or ""
func FindSettings() string {
	for _, p := range SettingsPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// ReadSettings loads settings from path. An empty path searches the
// default locations and falls back to the defaults when none exists.
func ReadSettings(path string) (*models.Settings, error) {
	if path == "" {
		path = FindSettings()
		if path == "" {
			return models.DefaultSettings(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	// Start from defaults so missing keys keep sensible values
	settings := models.DefaultSettings()
	switch settingsFormat(path) {
	case "toml":
		if err := toml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if settings.Search.ContextLines < 0 {
		settings.Search.ContextLines = 0
	}
	if settings.Preview.MaxBytes < 0 {
		settings.Preview.MaxBytes = 0
	}
	return settings, nil
}

// WriteSettings saves settings to path in the format implied by its extension
func WriteSettings(path string, settings *models.Settings) error {
	var (
		data []byte
		err  error
	)
	switch settingsFormat(path) {
	case "toml":
		data, err = toml.Marshal(settings)
	case "yaml":
		data, err = yaml.Marshal(settings)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

func settingsFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}
