package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pluqqy/htmlpane/internal/cli"
	"github.com/pluqqy/htmlpane/pkg/preview"
)

var (
	previewToFile string
)

// NewPreviewCommand creates the preview command
func NewPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render markup once into a preview document",
		Long: `Render markup into the standalone document the live preview shows.

Blank input renders the placeholder. Problems such as oversized input
render an error block instead of failing.

Examples:
  # Print the preview document
  htmlpane preview card.html

  # Write it where a browser can open it
  htmlpane preview card.html --file /tmp/card.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPreview,
	}

	cmd.Flags().StringVar(&previewToFile, "file", "", "Write the preview document to this file instead of stdout")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	settings := commandContext(cmd).LoadSettingsWithDefault()

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	memory := preview.NewMemoryTarget()
	var target preview.Target = memory
	if previewToFile != "" {
		target = preview.Tee{memory, preview.NewFileTarget(previewToFile)}
	}

	renderer := preview.NewRenderer(target, preview.WithMaxBytes(settings.Preview.MaxBytes))
	renderer.Refresh(input)

	if err := renderer.LastError(); err != nil {
		cli.PrintWarning("Preview shows an error: %v", err)
	}

	if previewToFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), memory.Document())
		return nil
	}

	if _, err := os.Stat(previewToFile); err != nil {
		return fmt.Errorf("failed to write preview to %s: %w", previewToFile, renderer.LastError())
	}
	cli.PrintSuccess("Preview written to %s", previewToFile)
	return nil
}
