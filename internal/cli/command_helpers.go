package cli

import (
	"io"
	"log"
	"os"

	"github.com/pluqqy/htmlpane/pkg/files"
	"github.com/pluqqy/htmlpane/pkg/models"
)

// CommandContext carries the settings shared by every command
type CommandContext struct {
	SettingsPath string
	Settings     *models.Settings
}

// NewCommandContext creates a context that will read settings from path
// (or the default locations when path is empty)
func NewCommandContext(settingsPath string) *CommandContext {
	return &CommandContext{
		SettingsPath: settingsPath,
	}
}

// LoadSettings reads the settings once and caches them
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := files.ReadSettings(c.SettingsPath)
	if err != nil {
		return nil, err
	}

	c.Settings = settings
	return settings, nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	settings, err := c.LoadSettings()
	if err != nil {
		PrintWarning("Using default settings: %v", err)
		settings = models.DefaultSettings()
		c.Settings = settings
	}
	return settings
}

// SetupLogging sends the standard logger to path so the terminal UI
// keeps stdout to itself. It returns a func that closes the file.
func SetupLogging(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() { logFile.Close() }
}
