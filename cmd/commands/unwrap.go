package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/htmlpane/internal/cli"
	"github.com/pluqqy/htmlpane/pkg/fragment"
	"github.com/pluqqy/htmlpane/pkg/models"
)

// NewUnwrapCommand creates the unwrap command
func NewUnwrapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unwrap [file]",
		Short: "Print the markup embedded in a fragment",
		Long: `Recover the original markup from a fragment produced by htmlpane.

Examples:
  # Print the embedded markup
  htmlpane unwrap card.fragment.html

  # Show the frame id as well
  htmlpane unwrap card.fragment.html -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUnwrap,
	}
}

func runUnwrap(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	embedded, err := fragment.Unwrap(input)
	if err != nil {
		return fmt.Errorf("failed to unwrap fragment: %w", err)
	}

	if format == string(cli.FormatText) {
		fmt.Fprintln(cmd.OutOrStdout(), embedded.Content)
		return nil
	}

	return cli.OutputResults(cmd.OutOrStdout(), format, models.FragmentInfo{
		ID:      embedded.ID,
		Content: embedded.Content,
	})
}
