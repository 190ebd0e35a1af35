package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pluqqy/htmlpane/internal/cli"
	"github.com/pluqqy/htmlpane/pkg/files"
	"github.com/pluqqy/htmlpane/pkg/models"
)

var (
	initFormat string
	initGlobal bool
	initForce  bool
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default values",
		Long: `Write the default settings to ./.htmlpane.yaml (or .toml) so they can
be edited. With --global the file goes to the user config directory and
applies everywhere a project file does not.

Examples:
  # Project settings as YAML
  htmlpane init

  # User-wide settings as TOML
  htmlpane init --global --format toml`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if initFormat != "yaml" && initFormat != "toml" {
				return fmt.Errorf("invalid settings format: %s (must be: yaml or toml)", initFormat)
			}
			return nil
		},
		RunE: runInit,
	}

	cmd.Flags().StringVar(&initFormat, "format", "yaml", "Settings file format (yaml, toml)")
	cmd.Flags().BoolVar(&initGlobal, "global", false, "Write to the user config directory")
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing settings file")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := initSettingsPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		ok, err := cli.Confirm(fmt.Sprintf("%s already exists. Overwrite?", path), false)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			cli.PrintInfo("Kept existing settings")
			return nil
		}
	}

	if err := files.WriteSettings(path, models.DefaultSettings()); err != nil {
		return err
	}

	cli.PrintSuccess("Created %s", path)
	return nil
}

func initSettingsPath() (string, error) {
	if !initGlobal {
		if initFormat == "toml" {
			return files.SettingsTOML, nil
		}
		return files.SettingsYAML, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, files.AppDir, "config."+initFormat), nil
}
